package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the "config" cobra command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and command
line overrides are applied. The YAML output can be saved as a config
file.

Examples:
  countrylist config > ~/.config/countrylist/config.yaml
  countrylist config --data-dir /tmp/countries --json`,

		// No positional arguments are required for the config command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd.OutOrStdout())
		},
	}
}

// runConfig prints the merged configuration. It does not touch the store
// or the catalog, so it works even when the catalog cannot be loaded.
func runConfig(stdout io.Writer) error {
	// Step 1: Load the config file and apply command line overrides.
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Step 2: Output the configuration in the appropriate format.
	if IsJSONOutput() {
		return writeJSON(stdout, cfg)
	}

	out, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(stdout, string(out))
	return err
}
