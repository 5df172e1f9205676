// Package cli: remove.go implements the "countrylist remove" command.
//
// Remove works from the saved list rather than the catalog, so a saved
// country can be removed even when the catalog in use no longer has it.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/countrylist/internal/model"
)

// NewRemoveCommand creates the "remove" cobra command.
func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <code>",
		Short: "Remove a country from your saved list",
		Long: `Remove the country with the given code from your saved list.

Removing a country that is not saved does nothing and is not an error.

Examples:
  countrylist remove jp
  countrylist remove GB --json`,

		// Exactly one country code is required.
		Args: cobra.ExactArgs(1),

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}
}

func runRemove(ctx context.Context, stdout, stderr io.Writer, arg string) error {
	// Step 1: Validate the argument before touching any state.
	code, err := requireCode(arg)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}

	// Step 2: Prefer the saved record for output; identity is the code
	// alone, so a bare record removes the same entries.
	country := model.Country{Alpha2Code: code}
	for _, c := range a.manager.SavedCountries() {
		if c.HasCode(code) {
			country = c
			break
		}
	}
	removed := a.manager.IsSaved(code)

	// Step 3: Remove. The list is persisted even when nothing matched.
	a.manager.Remove(country)
	VerboseLog("Remove %s: removed=%t", code, removed)

	return printMutationResult(stdout, "remove", country, removed, len(a.manager.SavedCountries()))
}
