// Package cli: list.go implements the "countrylist list" command.
//
// The list command prints the whole catalog in its original order as a
// text table or a JSON array, depending on the --json flag. Saved
// countries are marked.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// NewListCommand creates the "list" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every country in the catalog",
		Long: `List every country in the catalog with its code, capital and region.

Countries in your saved list are marked with "*".

Examples:
  countrylist list
  countrylist list --json`,

		// No positional arguments are required for the list command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	return cmd
}

// runList is the main logic function for the list command.
// It loads the catalog and prints it in catalog order.
func runList(ctx context.Context, stdout, stderr io.Writer) error {
	// Step 1: Load configuration, store and catalog. A catalog that fails
	// to load surfaces as ExitCatalogUnavailable.
	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}

	// Step 2: Take a copy of the catalog in its original order.
	countries := a.manager.Countries()
	VerboseLog("Catalog has %d countries", len(countries))

	// Step 3: Output results in the appropriate format.
	return printCountryList(stdout, countries, a.manager.IsSaved)
}

// printCountryList outputs countries in text or JSON format, depending on
// the global --json flag. It is shared by list and search.
func printCountryList(w io.Writer, countries []model.Country, isSaved func(string) bool) error {
	if IsJSONOutput() {
		return writeJSON(w, struct {
			Countries []countryJSON `json:"countries"`
		}{toCountriesJSON(countries, isSaved)})
	}

	if len(countries) == 0 {
		fmt.Fprintln(w, "No countries found.")
		return nil
	}
	printCountryTable(w, countries, isSaved)
	return nil
}
