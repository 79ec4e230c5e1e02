package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	projectCommands "github.com/andrescamacho/colonial-go/internal/application/project/commands"
	projectQueries "github.com/andrescamacho/colonial-go/internal/application/project/queries"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/infrastructure/logging"
)

// NewProjectCommand creates the project command with subcommands
func NewProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "View and update construction projects",
		Long: `View and update colonization construction projects.

A project tracks what a construction site still needs. Linked fleet
carriers are merged into the "have" column so you can see what is
left to buy.

Examples:
  colonial project show x1y2z3
  colonial project list --system "HIP 1234"
  colonial project deliver x1y2z3 steel=120 "CMM Composite=40"`,
	}

	// Add subcommands
	cmd.AddCommand(newProjectShowCommand())
	cmd.AddCommand(newProjectListCommand())
	cmd.AddCommand(newProjectRecentCommand())
	cmd.AddCommand(newProjectCreateCommand())
	cmd.AddCommand(newProjectDeliverCommand())
	cmd.AddCommand(newProjectDraftCommand())
	cmd.AddCommand(newProjectStatsCommand())

	return cmd
}

// newProjectShowCommand creates the project show subcommand
func newProjectShowCommand() *cobra.Command {
	var sortMode string
	var noCarriers bool
	var allowStale bool

	cmd := &cobra.Command{
		Use:   "show <build-id>",
		Short: "Show the cargo grid of a project",
		Long: `Show what a project needs against what its linked fleet carriers hold.

Rows are grouped by --sort: alpha, category or economy. When omitted the
saved preference is used. Unknown counts print as "?".

Examples:
  colonial project show x1y2z3
  colonial project show x1y2z3 --sort economy --no-fc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				mode, err := resolveSortMode(ctx, app, sortMode)
				if err != nil {
					return err
				}

				grid, err := mediator.Send[*projectQueries.GetCargoGridResponse](ctx, app.Mediator,
					&projectQueries.GetCargoGridQuery{
						BuildID:         args[0],
						SortMode:        mode,
						IncludeCarriers: !noCarriers,
						AllowStale:      allowStale,
					})
				if err != nil {
					return fmt.Errorf("failed to load project: %w", err)
				}
				if err := app.Prefs.TouchRecent(ctx, grid.Project.Ref()); err != nil {
					app.Logger.Warn("failed to update recent projects", logging.Err(err))
				}

				if jsonOutput {
					return printJSON(os.Stdout, grid)
				}
				renderCargoGrid(os.Stdout, grid, !noCarriers)
				printTrips(ctx, app, grid)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&sortMode, "sort", "", "Row grouping: alpha, category or economy")
	cmd.Flags().BoolVar(&noCarriers, "no-fc", false, "Hide per-carrier columns")
	cmd.Flags().BoolVar(&allowStale, "stale", false, "Fall back to the last stored copy when the backend is unreachable")

	return cmd
}

// printTrips shows how many loads the commander's ships need for the rest
func printTrips(ctx context.Context, app *App, grid *projectQueries.GetCargoGridResponse) {
	cmdr, err := app.Prefs.Commander(ctx)
	if err != nil {
		return
	}
	var parts []string
	for _, h := range []struct {
		name     string
		capacity int
	}{{"large", cmdr.LargeMax}, {"medium", cmdr.MediumMax}} {
		hold, err := cargo.NewHold(h.name, h.capacity)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d %s", hold.TripsFor(grid.Need, grid.Have), hold.Name))
	}
	if len(parts) > 0 {
		fmt.Printf("\nTrips remaining: %s\n", strings.Join(parts, ", "))
	}
}

func resolveSortMode(ctx context.Context, app *App, flag string) (commodity.SortMode, error) {
	if flag != "" {
		mode, ok := commodity.ParseSortMode(flag)
		if !ok {
			return "", fmt.Errorf("unknown sort mode %q: use alpha, category or economy", flag)
		}
		return mode, nil
	}
	ui, err := app.Prefs.UI(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read preferences: %w", err)
	}
	return ui.CargoSort, nil
}

// newProjectListCommand creates the project list subcommand
func newProjectListCommand() *cobra.Command {
	var systemName string
	var cmdr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in a system or of a commander",
		Long: `List projects by system or by assigned commander.

Examples:
  colonial project list --system "HIP 1234"
  colonial project list --cmdr Jameson`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if systemName == "" && cmdr == "" {
				return fmt.Errorf("--system or --cmdr flag is required")
			}
			return withApp(cmd, func(ctx context.Context, app *App) error {
				resp, err := mediator.Send[*projectQueries.ListProjectsResponse](ctx, app.Mediator,
					&projectQueries.ListProjectsQuery{SystemName: systemName, Cmdr: cmdr})
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}
				return printRefs(resp.Projects)
			})
		},
	}

	cmd.Flags().StringVar(&systemName, "system", "", "System name")
	cmd.Flags().StringVar(&cmdr, "cmdr", "", "Commander name")

	return cmd
}

// newProjectRecentCommand creates the project recent subcommand
func newProjectRecentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently viewed projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				resp, err := mediator.Send[*projectQueries.ListProjectsResponse](ctx, app.Mediator,
					&projectQueries.ListProjectsQuery{Recent: true})
				if err != nil {
					return err
				}
				return printRefs(resp.Projects)
			})
		},
	}
}

func printRefs(refs []project.Ref) error {
	if jsonOutput {
		return printJSON(os.Stdout, refs)
	}
	if len(refs) == 0 {
		fmt.Println("No projects found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BUILD ID\tNAME\tSYSTEM")
	fmt.Fprintln(w, "--------\t----\t------")
	for _, ref := range refs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ref.BuildID, ref.BuildName, ref.SystemName)
	}
	return w.Flush()
}

// newProjectCreateCommand creates the project create subcommand
func newProjectCreateCommand() *cobra.Command {
	var draft project.Draft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start tracking a new construction site",
		Long: `Create a project for a construction site.

Build name, build type and the site's market id are required. Creating a
site that is already tracked fails with "project already exists".

Example:
  colonial project create --name "Alpha Orbis" --type orbis --market-id 3951234567 --system "HIP 1234"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				resp, err := mediator.Send[*projectCommands.CreateProjectResponse](ctx, app.Mediator,
					&projectCommands.CreateProjectCommand{Draft: draft})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(os.Stdout, resp.Project)
				}
				fmt.Printf("✓ Created %s (build id %s)\n", resp.Project.BuildName, resp.Project.BuildID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&draft.BuildName, "name", "", "Build name")
	cmd.Flags().StringVar(&draft.BuildType, "type", "", "Build type, e.g. orbis or coriolis")
	cmd.Flags().Int64Var(&draft.MarketID, "market-id", 0, "Market id of the construction site")
	cmd.Flags().StringVar(&draft.SystemName, "system", "", "System name")
	cmd.Flags().StringVar(&draft.BodyName, "body", "", "Body name")
	cmd.Flags().StringVar(&draft.ArchitectName, "architect", "", "Architect commander")

	return cmd
}

// newProjectDeliverCommand creates the project deliver subcommand
func newProjectDeliverCommand() *cobra.Command {
	var cmdr string

	cmd := &cobra.Command{
		Use:   "deliver <build-id> <commodity=count>...",
		Short: "Record a cargo delivery to a project",
		Long: `Record a cargo delivery. The commander defaults to the one saved with
'colonial prefs set-cmdr'. A successful delivery clears the saved draft.

Examples:
  colonial project deliver x1y2z3 steel=120
  colonial project deliver x1y2z3 "Liquid Oxygen=400" titanium=84 --cmdr Jameson`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				delivery, err := parseCargoArgs(commodity.Default(), args[1:])
				if err != nil {
					return err
				}
				resp, err := mediator.Send[*projectCommands.DeliverCargoResponse](ctx, app.Mediator,
					&projectCommands.DeliverCargoCommand{BuildID: args[0], Cmdr: cmdr, Cargo: delivery})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(os.Stdout, resp)
				}
				fmt.Printf("✓ %s delivered %d units\n", resp.Cmdr, resp.Units)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cmdr, "cmdr", "", "Commander making the delivery")

	return cmd
}

// newProjectDraftCommand creates the project draft subcommand
func newProjectDraftCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "draft <build-id> [commodity=count]...",
		Short: "Save or clear an undelivered cargo draft",
		Long: `Save the cargo you are about to deliver so it survives restarts.
With no commodities the saved draft is removed.

Example:
  colonial project draft x1y2z3 steel=200`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				draft, err := parseCargoArgs(commodity.Default(), args[1:])
				if err != nil {
					return err
				}
				if _, err := app.Mediator.Send(ctx, &projectCommands.SaveDraftCommand{BuildID: args[0], Cargo: draft}); err != nil {
					return err
				}
				fmt.Println("✓ Draft saved")
				return nil
			})
		},
	}
}

// newProjectStatsCommand creates the project stats subcommand
func newProjectStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <build-id>",
		Short: "Show per-commander delivery totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				resp, err := mediator.Send[*projectQueries.GetProjectStatsResponse](ctx, app.Mediator,
					&projectQueries.GetProjectStatsQuery{BuildID: args[0]})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(os.Stdout, resp)
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "CMDR\tDELIVERED")
				fmt.Fprintln(w, "----\t---------")
				for _, c := range resp.Leaderboard {
					fmt.Fprintf(w, "%s\t%d\n", c.Cmdr, c.Total)
				}
				return w.Flush()
			})
		},
	}
}
