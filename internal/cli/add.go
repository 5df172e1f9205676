package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/countrylist/internal/model"
	"github.com/shinji-kodama/countrylist/internal/savedlist"
)

// NewAddCommand creates the "add" cobra command.
func NewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <code>",
		Short: "Add a country to your saved list",
		Long: `Add the catalog country with the given code to your saved list.

Adding a country that is already saved does nothing. The list holds at
most five countries; remove one before adding another.

Examples:
  countrylist add jp
  countrylist add GB --json`,

		// Exactly one country code is required.
		Args: cobra.ExactArgs(1),

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0])
		},
	}
}

// runAdd resolves the code against the catalog and adds the country.
//
// The saved list itself treats both "full" and "already saved" as silent
// no-ops, so CanAdd is consulted first to tell the user what happened.
// A full list is an error; an already saved country is not.
func runAdd(ctx context.Context, stdout, stderr io.Writer, arg string) error {
	a, err := newApp(ctx, stderr)
	if err != nil {
		return err
	}

	// Step 1: Resolve the code against the catalog.
	country, err := a.lookup(arg)
	if err != nil {
		return err
	}

	// Step 2: Explain a no-op before attempting it.
	reason := a.manager.CanAdd(country)
	if errors.Is(reason, savedlist.ErrListFull) {
		return model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("saved list is full (%s); remove a country first", FormatSavedCount(savedlist.Capacity)))
	}

	// Step 3: Add. This is a no-op when the country is already saved.
	added := reason == nil
	a.manager.Add(country)
	VerboseLog("Add %s: added=%t", country.Code(), added)

	return printMutationResult(stdout, "add", country, added, len(a.manager.SavedCountries()))
}

// printMutationResult outputs the outcome of add or remove.
func printMutationResult(w io.Writer, action string, country model.Country, changed bool, savedCount int) error {
	if IsJSONOutput() {
		return writeJSON(w, map[string]interface{}{
			"action":  action,
			"code":    country.Code(),
			"name":    country.Name,
			"changed": changed,
			"saved":   savedCount,
		})
	}

	name := country.Name
	if name == "" {
		name = country.Code()
	}

	switch {
	case action == "add" && changed:
		fmt.Fprintf(w, "Added %s (%s) to your saved list (%s).\n", name, country.Code(), FormatSavedCount(savedCount))
	case action == "add":
		fmt.Fprintf(w, "%s (%s) is already in your saved list.\n", name, country.Code())
	case changed:
		fmt.Fprintf(w, "Removed %s (%s) from your saved list (%s).\n", name, country.Code(), FormatSavedCount(savedCount))
	default:
		fmt.Fprintf(w, "%s is not in your saved list.\n", country.Code())
	}
	return nil
}
