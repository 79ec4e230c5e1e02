package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	carrierCommands "github.com/andrescamacho/colonial-go/internal/application/carrier/commands"
	carrierQueries "github.com/andrescamacho/colonial-go/internal/application/carrier/queries"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
)

// NewCarrierCommand creates the fleet carrier command with subcommands
func NewCarrierCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "fc",
		Aliases: []string{"carrier"},
		Short:   "Fleet carrier inventory and project links",
		Long: `Inspect and adjust fleet carrier inventories, and link carriers to
projects so their stock counts toward what a project already has.

Examples:
  colonial fc cargo 3700123456
  colonial fc add 3700123456 steel=200 titanium=-20
  colonial fc link x1y2z3 3700123456`,
	}

	cmd.AddCommand(newCarrierCargoCommand())
	cmd.AddCommand(newCarrierAddCommand())
	cmd.AddCommand(newCarrierLinkCommand(false))
	cmd.AddCommand(newCarrierLinkCommand(true))

	return cmd
}

func parseMarketID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid market id %q", s)
	}
	return id, nil
}

// newCarrierCargoCommand creates the fc cargo subcommand
func newCarrierCargoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cargo <market-id>",
		Short: "Show a fleet carrier's inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			marketID, err := parseMarketID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, app *App) error {
				resp, err := mediator.Send[*carrierQueries.GetCarrierResponse](ctx, app.Mediator,
					&carrierQueries.GetCarrierQuery{MarketID: marketID})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(os.Stdout, resp.Carrier)
				}
				fmt.Printf("\n=== %s ===\n\n", resp.Carrier)
				return printInventory(commodity.Default(), resp.Carrier.Cargo)
			})
		},
	}
}

func printInventory(taxonomy *commodity.Taxonomy, inv cargo.Map) error {
	if len(inv) == 0 {
		fmt.Println("Empty")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "COMMODITY\tUNITS\t")
	for _, id := range inv.Keys() {
		fmt.Fprintf(w, "%s\t%s\t\n", taxonomy.DisplayName(id), cargo.FormatCount(inv[id]))
	}
	return w.Flush()
}

// newCarrierAddCommand creates the fc add subcommand
func newCarrierAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <market-id> <commodity=delta>...",
		Short: "Adjust a fleet carrier's inventory",
		Long: `Add or remove stock on a fleet carrier. Negative deltas remove stock;
counts never drop below zero.

Example:
  colonial fc add 3700123456 steel=200 "Liquid Oxygen=-40"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			marketID, err := parseMarketID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, app *App) error {
				taxonomy := commodity.Default()
				delta, err := parseCargoArgs(taxonomy, args[1:])
				if err != nil {
					return err
				}
				resp, err := mediator.Send[*carrierCommands.UpdateCarrierCargoResponse](ctx, app.Mediator,
					&carrierCommands.UpdateCarrierCargoCommand{MarketID: marketID, Delta: delta})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(os.Stdout, resp)
				}
				fmt.Println("✓ Inventory updated")
				return printInventory(taxonomy, resp.Cargo)
			})
		},
	}
}

// newCarrierLinkCommand creates the fc link and fc unlink subcommands
func newCarrierLinkCommand(unlink bool) *cobra.Command {
	use, short, done := "link", "Link a fleet carrier to a project", "linked to"
	if unlink {
		use, short, done = "unlink", "Unlink a fleet carrier from a project", "unlinked from"
	}
	return &cobra.Command{
		Use:   use + " <build-id> <market-id>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			marketID, err := parseMarketID(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, app *App) error {
				if _, err := app.Mediator.Send(ctx, &carrierCommands.LinkCarrierCommand{
					BuildID:  args[0],
					MarketID: marketID,
					Unlink:   unlink,
				}); err != nil {
					return err
				}
				fmt.Printf("✓ Carrier %d %s %s\n", marketID, done, args[0])
				return nil
			})
		},
	}
}
