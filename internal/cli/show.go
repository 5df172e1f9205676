package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the "show" cobra command.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show details of one country",
		Long: `Show every detail of the catalog country with the given two-letter
code. The code is case-insensitive.

Examples:
  countrylist show in
  countrylist show GB --json`,

		// Exactly one country code is required.
		Args: cobra.ExactArgs(1),

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}
}

// runShow looks the code up in the catalog. Unknown codes exit with
// ExitCountryNotFound, malformed ones with ExitInvalidArgument.
func runShow(ctx context.Context, stdout, stderr io.Writer, arg string) error {
	// Step 1: Load configuration, store and catalog.
	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}

	// Step 2: Resolve the code against the catalog, not the saved list.
	country, err := a.lookup(arg)
	if err != nil {
		return err
	}
	saved := a.manager.IsSaved(country.Code())

	// Step 3: Output the details in the appropriate format.
	if IsJSONOutput() {
		return writeJSON(stdout, toCountryJSON(country, saved))
	}
	printCountryDetail(stdout, country, saved)
	return nil
}
