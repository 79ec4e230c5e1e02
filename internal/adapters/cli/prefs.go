package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/prefs"
)

// NewPrefsCommand creates the prefs command with subcommands
func NewPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage local preferences",
		Long: `Manage the locally stored commander identity and display preferences.

Examples:
  colonial prefs show
  colonial prefs set-cmdr Jameson --large 784 --medium 400
  colonial prefs set-sort economy
  colonial prefs set-market-sort distance --asc`,
	}

	cmd.AddCommand(newPrefsShowCommand())
	cmd.AddCommand(newPrefsSetCmdrCommand())
	cmd.AddCommand(newPrefsSetSortCommand())
	cmd.AddCommand(newPrefsSetMarketSortCommand())
	cmd.AddCommand(newPrefsForgetCommand())

	return cmd
}

type prefsView struct {
	Commander prefs.Commander `json:"commander"`
	UI        prefs.UI        `json:"ui"`
	Drafts    []string        `json:"drafts"`
}

// newPrefsShowCommand creates the prefs show subcommand
func newPrefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show saved preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				var view prefsView
				var err error
				if view.Commander, err = app.Prefs.Commander(ctx); err != nil {
					return err
				}
				if view.UI, err = app.Prefs.UI(ctx); err != nil {
					return err
				}
				if view.Drafts, err = app.Prefs.Drafts(ctx); err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(os.Stdout, view)
				}

				fmt.Println("Commander:")
				fmt.Printf("  Name:          %s\n", padOrDash(view.Commander.Name))
				fmt.Printf("  Large hold:    %d\n", view.Commander.LargeMax)
				fmt.Printf("  Medium hold:   %d\n", view.Commander.MediumMax)
				fmt.Println()
				fmt.Println("Display:")
				fmt.Printf("  Cargo sort:    %s\n", view.UI.CargoSort)
				fmt.Printf("  Hide FC cols:  %t\n", view.UI.HideFCColumns)
				fmt.Printf("  Hide done:     %t\n", view.UI.HideDoneRows)
				fmt.Printf("  Theme:         %s\n", view.UI.Theme)
				fmt.Printf("  Market sort:   %s (ascending: %t)\n", view.UI.MarketColumn, view.UI.MarketAscending)
				if len(view.Drafts) > 0 {
					fmt.Println()
					fmt.Printf("Unsent drafts: %v\n", view.Drafts)
				}
				return nil
			})
		},
	}
}

// newPrefsSetCmdrCommand creates the prefs set-cmdr subcommand
func newPrefsSetCmdrCommand() *cobra.Command {
	var large, medium int

	cmd := &cobra.Command{
		Use:   "set-cmdr <name>",
		Short: "Save the commander name and ship cargo capacities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				if err := app.Prefs.SetCommander(ctx, prefs.Commander{
					Name:      args[0],
					LargeMax:  large,
					MediumMax: medium,
				}); err != nil {
					return err
				}
				fmt.Printf("✓ Commander set to %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&large, "large", 0, "Cargo capacity of your large-pad hauler")
	cmd.Flags().IntVar(&medium, "medium", 0, "Cargo capacity of your medium-pad hauler")

	return cmd
}

// newPrefsSetSortCommand creates the prefs set-sort subcommand
func newPrefsSetSortCommand() *cobra.Command {
	var hideFC, hideDone bool

	cmd := &cobra.Command{
		Use:   "set-sort <alpha|category|economy>",
		Short: "Set the default cargo grid grouping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := commodity.ParseSortMode(args[0])
			if !ok {
				return fmt.Errorf("unknown sort mode %q: use alpha, category or economy", args[0])
			}
			return updateUI(cmd, func(ui *prefs.UI) {
				ui.CargoSort = mode
				if cmd.Flags().Changed("hide-fc") {
					ui.HideFCColumns = hideFC
				}
				if cmd.Flags().Changed("hide-done") {
					ui.HideDoneRows = hideDone
				}
			})
		},
	}

	cmd.Flags().BoolVar(&hideFC, "hide-fc", false, "Hide fleet carrier columns")
	cmd.Flags().BoolVar(&hideDone, "hide-done", false, "Hide rows that are already covered")

	return cmd
}

// newPrefsSetMarketSortCommand creates the prefs set-market-sort subcommand
func newPrefsSetMarketSortCommand() *cobra.Command {
	var ascending bool

	cmd := &cobra.Command{
		Use:   "set-market-sort <column>",
		Short: "Set the default market ranking column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, ok := market.ParseColumn(args[0])
			if !ok {
				return fmt.Errorf("unknown column %q", args[0])
			}
			return updateUI(cmd, func(ui *prefs.UI) {
				ui.MarketColumn = col
				ui.MarketAscending = ascending
			})
		},
	}

	cmd.Flags().BoolVar(&ascending, "asc", false, "Sort ascending")

	return cmd
}

func updateUI(cmd *cobra.Command, change func(ui *prefs.UI)) error {
	return withApp(cmd, func(ctx context.Context, app *App) error {
		ui, err := app.Prefs.UI(ctx)
		if err != nil {
			return err
		}
		change(&ui)
		if err := app.Prefs.SetUI(ctx, ui); err != nil {
			return err
		}
		fmt.Println("✓ Preferences saved")
		return nil
	})
}

// newPrefsForgetCommand creates the prefs forget subcommand
func newPrefsForgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <build-id>",
		Short: "Drop a project from the recent list along with its draft and search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				buildID := args[0]
				if err := app.Prefs.ForgetRecent(ctx, buildID); err != nil {
					return err
				}
				if err := app.Prefs.ClearDraft(ctx, buildID); err != nil {
					return err
				}
				if err := app.Prefs.ClearSearch(ctx, buildID); err != nil {
					return err
				}
				fmt.Printf("✓ Forgot %s\n", buildID)
				return nil
			})
		},
	}
}
