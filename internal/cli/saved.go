// Package cli: saved.go implements the "countrylist saved" command.
//
// When the saved list is empty and seed.auto is enabled, the command first
// seeds it with the user's home country, the way the list is populated on
// first launch.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/countrylist/internal/model"
	"github.com/shinji-kodama/countrylist/internal/savedlist"
)

// savedFlags holds the flag values for the saved command.
type savedFlags struct {
	// noSeed disables auto-seeding for this invocation.
	noSeed bool
}

// NewSavedCommand creates the "saved" cobra command.
func NewSavedCommand() *cobra.Command {
	flags := &savedFlags{}

	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Show your saved countries",
		Long: `Show the countries in your saved list, in the order they were added.

The list holds at most five countries. If it is empty, it is seeded
with your home country first (disable with --no-seed or seed.auto).

Examples:
  countrylist saved
  countrylist saved --no-seed --json`,

		// No positional arguments are required for the saved command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSaved(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noSeed, "no-seed", false, "Do not seed an empty list")
	return cmd
}

// runSaved prints the saved list, seeding it first when it is empty and
// seeding is enabled.
func runSaved(ctx context.Context, stdout, stderr io.Writer, flags *savedFlags) error {
	// Step 1: Load configuration, store and catalog.
	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}

	// Step 2: Seed an empty list. The seeded country is reported so the
	// user knows where the entry came from.
	var seeded *model.Country
	if a.cfg.Seed.Auto && !flags.noSeed && len(a.manager.SavedCountries()) == 0 {
		if c, ok := a.seed(ctx); ok {
			seeded = &c
		}
	}

	// Step 3: Output results in the appropriate format.
	return printSavedResult(stdout, a.manager.SavedCountries(), seeded)
}

// printSavedResult outputs the saved list and, when seeding just happened,
// the seeded country.
func printSavedResult(w io.Writer, saved []model.Country, seeded *model.Country) error {
	always := func(string) bool { return true }

	if IsJSONOutput() {
		result := struct {
			Saved    []countryJSON `json:"saved"`
			Count    int           `json:"count"`
			Capacity int           `json:"capacity"`
			Seeded   string        `json:"seeded,omitempty"`
		}{
			Saved:    toCountriesJSON(saved, always),
			Count:    len(saved),
			Capacity: savedlist.Capacity,
		}
		if seeded != nil {
			result.Seeded = seeded.Code()
		}
		return writeJSON(w, result)
	}

	if seeded != nil {
		fmt.Fprintf(w, "Added your home country %s (%s) to the saved list.\n\n", seeded.Name, seeded.Code())
	}
	if len(saved) == 0 {
		fmt.Fprintln(w, "No saved countries. Add one with: countrylist add <code>")
		return nil
	}

	fmt.Fprintf(w, "Saved countries (%s):\n", FormatSavedCount(len(saved)))
	for i, c := range saved {
		fmt.Fprintf(w, "  %d. %-26s %-3s %s\n", i+1, c.Name, c.Code(), c.DisplayCapital())
	}
	return nil
}
