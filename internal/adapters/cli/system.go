package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewSystemCommand creates the system command with subcommands
func NewSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Look up systems, stations and bodies",
		Long: `Query the astrographical and body survey providers.

Examples:
  colonial system search "HIP 12"
  colonial system stations "HIP 1234"
  colonial system bodies "HIP 1234" --landable`,
	}

	cmd.AddCommand(newSystemSearchCommand())
	cmd.AddCommand(newSystemStationsCommand())
	cmd.AddCommand(newSystemBodiesCommand())

	return cmd
}

// newSystemSearchCommand creates the system search subcommand
func newSystemSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <prefix>",
		Short: "List system names starting with a prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				names, err := app.Astro.SearchSystems(ctx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(os.Stdout, names)
				}
				if len(names) == 0 {
					fmt.Println("No matching systems")
					return nil
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			})
		},
	}
}

// newSystemStationsCommand creates the system stations subcommand
func newSystemStationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stations <system>",
		Short: "List stations in a system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				stations, err := app.Astro.ListStations(ctx, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(os.Stdout, stations)
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "STATION\tTYPE\tPAD\tARRIVAL (ls)\tMARKET ID")
				fmt.Fprintln(w, "-------\t----\t---\t------------\t---------")
				for _, s := range stations {
					fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\n",
						s.Name, s.Type, padOrDash(string(s.PadSize)), s.DistanceToArrival, s.MarketID)
				}
				return w.Flush()
			})
		},
	}
}

// newSystemBodiesCommand creates the system bodies subcommand
func newSystemBodiesCommand() *cobra.Command {
	var landableOnly bool

	cmd := &cobra.Command{
		Use:   "bodies <system>",
		Short: "List bodies in a system with their signals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *App) error {
				survey, err := app.Bodies.GetBodies(ctx, args[0])
				if err != nil {
					return err
				}
				bodies := survey.Bodies
				if landableOnly {
					bodies = survey.Landable()
				}
				if jsonOutput {
					return printJSON(os.Stdout, bodies)
				}

				fmt.Printf("\n=== %s ===\n", survey.SystemName)
				fmt.Printf("Bodies: %d  Bio signals: %d  Geo signals: %d\n\n",
					survey.BodyCount, survey.BioSignals(), survey.GeoSignals())

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "BODY\tTYPE\tARRIVAL (ls)\tLANDABLE\tBIO\tGEO")
				for _, b := range bodies {
					kind := b.Type
					if b.SubType != "" {
						kind = b.SubType
					}
					landable := ""
					if b.Landable {
						landable = "yes"
					}
					fmt.Fprintf(w, "%s\t%s\t%.0f\t%s\t%d\t%d\n",
						b.Name, kind, b.DistanceToArrival, landable, b.BioSignals, b.GeoSignals)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&landableOnly, "landable", false, "Only show landable bodies")

	return cmd
}
