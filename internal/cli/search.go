package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewSearchCommand creates the "search" cobra command.
func NewSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search countries by name or capital",
		Long: `Search the catalog for countries whose name or capital contains the
query, ignoring case. Results keep catalog order. An empty query
("") matches every country.

Examples:
  countrylist search lon
  countrylist search "united" --json`,

		// Exactly one query is required; pass "" to match everything.
		Args: cobra.ExactArgs(1),

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}
}

// runSearch filters the catalog by name or capital and prints the matches.
// The query is passed through verbatim, without trimming.
func runSearch(ctx context.Context, stdout, stderr io.Writer, query string) error {
	// Step 1: Load configuration, store and catalog.
	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}

	// Step 2: Apply the search filter.
	results := a.manager.Search(query)
	VerboseLog("Query %q matched %d of %d countries", query, len(results), len(a.manager.Countries()))

	// Step 3: With no match, text output offers the closest name instead
	// of an empty table. JSON output stays an empty array.
	if !IsJSONOutput() && len(results) == 0 {
		fmt.Fprintf(stdout, "No countries match %q.\n", query)
		if c, ok := suggestCountry(a.manager.Countries(), query); ok {
			fmt.Fprintf(stdout, "Did you mean %s (%s)?\n", c.Name, c.Code())
		}
		return nil
	}

	// Step 4: Output results in the appropriate format.
	return printCountryList(stdout, results, a.manager.IsSaved)
}
