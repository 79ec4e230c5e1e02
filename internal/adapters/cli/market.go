package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonial-go/internal/application/markets"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
)

// NewMarketCommand creates the market command with subcommands
func NewMarketCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Find markets selling what a project still needs",
	}

	cmd.AddCommand(newMarketFindCommand())

	return cmd
}

// newMarketFindCommand creates the market find subcommand
func newMarketFindCommand() *cobra.Command {
	var (
		column      string
		ascending   bool
		source      string
		cached      bool
		criteria    market.Criteria
		padSize     string
		explicitRef string
	)

	cmd := &cobra.Command{
		Use:   "find <build-id>",
		Short: "Search and rank markets for a project's remaining needs",
		Long: `Search markets near the project's system for the commodities it still
needs, after subtracting linked fleet carrier stock, and rank them.

Columns: matches, stationName, systemName, distance, distanceToArrival.
A cost marked "+" means the market cannot cover every remaining unit.

Examples:
  colonial market find x1y2z3
  colonial market find x1y2z3 --sort distance --asc --pad L --max-distance 40
  colonial market find x1y2z3 --source poi --no-carriers
  colonial market find x1y2z3 --cached --sort stationName`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, ok := market.ParseColumn(column)
			if !ok {
				return fmt.Errorf("unknown column %q", column)
			}
			if padSize != "" {
				criteria.PadSize = market.PadSize(strings.ToUpper(padSize))
			}
			criteria.ReferenceSystem = explicitRef

			return withApp(cmd, func(ctx context.Context, app *App) error {
				resp, err := mediator.Send[*markets.FindMarketsResponse](ctx, app.Mediator,
					&markets.FindMarketsQuery{
						BuildID:   args[0],
						Criteria:  criteria,
						Column:    col,
						Ascending: ascending,
						Source:    source,
						UseCached: cached,
					})
				if err != nil {
					return fmt.Errorf("market search failed: %w", err)
				}
				if jsonOutput {
					return printJSON(os.Stdout, resp)
				}
				renderMarkets(os.Stdout, resp)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&column, "sort", "", "Ranking column (default matches)")
	cmd.Flags().BoolVar(&ascending, "asc", false, "Sort ascending")
	cmd.Flags().StringVar(&source, "source", markets.SourceBackend, "Search source: backend or poi")
	cmd.Flags().BoolVar(&cached, "cached", false, "Re-rank the last stored search instead of searching")
	cmd.Flags().StringVar(&explicitRef, "near", "", "Reference system (default: the project's system)")
	cmd.Flags().StringVar(&padSize, "pad", "", "Minimum landing pad: S, M or L")
	cmd.Flags().Float64Var(&criteria.MaxDistance, "max-distance", 0, "Maximum distance in light years")
	cmd.Flags().Float64Var(&criteria.MaxArrival, "max-arrival", 0, "Maximum distance from arrival in light seconds")
	cmd.Flags().BoolVar(&criteria.NoSurface, "no-surface", false, "Exclude surface ports")
	cmd.Flags().BoolVar(&criteria.NoCarriers, "no-carriers", false, "Exclude fleet carrier markets")

	return cmd
}
