// Package cli: seed.go implements the "countrylist seed" command.
//
// Seeding is the first-run flow that puts the user's home country into an
// empty saved list. The saved command runs the same flow automatically;
// this command runs it on demand and reports what happened, including the
// coarse geohash cell of the configured fix so the location can be checked
// without printing raw coordinates.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/countrylist/internal/location"
	"github.com/shinji-kodama/countrylist/internal/model"
)

// seedResultJSON is the JSON output structure of the seed command.
type seedResultJSON struct {
	// Seeded reports whether a country was added.
	Seeded bool `json:"seeded"`

	// Code and Name identify the added country. Empty when Seeded is false.
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`

	// Cell is the geohash cell of the configured location fix, or empty
	// when location is disabled or has no fix.
	Cell string `json:"cell,omitempty"`

	// Saved is the number of saved countries after seeding.
	Saved int `json:"saved"`
}

// NewSeedCommand creates the "seed" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed an empty saved list with your home country",
		Long: `Detect your home country and add it to the saved list, if the list is
empty. The country comes from the configured location fix; when location
is disabled, has no fix, or the lookup does not answer within
seed.timeout, location.default_country is used instead.

Examples:
  countrylist seed
  countrylist seed --verbose`,

		// Seeding takes no positional arguments.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// runSeed loads the catalog, runs the seeding flow and prints the outcome.
func runSeed(ctx context.Context, stdout, stderr io.Writer) error {
	// Step 1: Load configuration, store and catalog.
	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}

	// Step 2: Report where the lookup will start from, coarsely.
	cell := ""
	if a.cfg.Location.Enabled {
		if fix := a.cfg.Location.Fix(); fix != nil {
			cell = location.Cell(*fix)
			VerboseLog("Location fix in geohash cell %s", cell)
		}
	}

	// Step 3: Seed. This is a no-op on a non-empty list.
	country, ok := a.seed(ctx)

	// Step 4: Output results in the appropriate format.
	result := seedResultJSON{
		Seeded: ok,
		Cell:   cell,
		Saved:  len(a.manager.SavedCountries()),
	}
	if ok {
		result.Code = country.Code()
		result.Name = country.Name
	}
	return printSeedResult(stdout, result, country)
}

// printSeedResult outputs the seed result in text or JSON format.
func printSeedResult(w io.Writer, result seedResultJSON, country model.Country) error {
	if IsJSONOutput() {
		return writeJSON(w, result)
	}

	if !result.Seeded {
		if result.Saved > 0 {
			fmt.Fprintf(w, "Saved list already has %d countries; nothing to seed.\n", result.Saved)
		} else {
			fmt.Fprintln(w, "Home country is not in the catalog; nothing seeded.")
		}
		return nil
	}

	fmt.Fprintf(w, "Added your home country %s (%s) to the saved list.\n", country.Name, country.Code())
	if result.Cell != "" {
		fmt.Fprintf(w, "  Location cell: %s\n", result.Cell)
	}
	return nil
}
