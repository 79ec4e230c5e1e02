package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/colonial-go/internal/application/markets"
	projectQueries "github.com/andrescamacho/colonial-go/internal/application/project/queries"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderCargoGrid prints the reconciled grid. Unknown counts print as "?".
func renderCargoGrid(out io.Writer, grid *projectQueries.GetCargoGridResponse, showCarriers bool) {
	p := grid.Project
	fmt.Fprintf(out, "\n=== %s (%s) ===\n", p.BuildName, p.BuildType)
	fmt.Fprintf(out, "System: %s", p.SystemName)
	if p.BodyName != "" {
		fmt.Fprintf(out, "  Body: %s", p.BodyName)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Progress: %.1f%%  On hand: %d / %d\n", grid.Progress, grid.OnHand, grid.TotalNeed)
	if grid.Stale {
		fmt.Fprintf(out, "(offline: showing data from %s)\n", grid.FetchedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out)

	carriers := grid.Carriers
	if !showCarriers {
		carriers = nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := []string{"COMMODITY", "NEED", "HAVE", "DIFF"}
	for _, fc := range carriers {
		header = append(header, fc.Name)
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	for _, row := range grid.Rows {
		if row.Header {
			fmt.Fprintf(w, "[%s]\t\n", row.Label)
			continue
		}
		line := row.Line
		diff := strconv.Itoa(line.Diff)
		if line.UnknownNeed {
			diff = "?"
		} else if line.Diff > 0 {
			diff = "+" + diff
		}
		cols := []string{row.DisplayName, cargo.FormatCount(line.Need), cargo.FormatCount(line.Have), diff}
		for _, fc := range carriers {
			n, ok := row.PerCarrier[fc.MarketID]
			if !ok {
				cols = append(cols, "-")
				continue
			}
			cols = append(cols, cargo.FormatCount(n))
		}
		fmt.Fprintln(w, strings.Join(cols, "\t")+"\t")
	}
	w.Flush()
}

// renderMarkets prints a ranked market list
func renderMarkets(out io.Writer, resp *markets.FindMarketsResponse) {
	fmt.Fprintf(out, "\nMarkets near %s (sorted by %s", resp.Criteria.ReferenceSystem, resp.Column)
	if resp.Ascending {
		fmt.Fprint(out, ", ascending")
	}
	fmt.Fprintf(out, ", searched %s)\n\n", resp.PreparedAt.Format("2006-01-02 15:04"))

	if len(resp.Markets) == 0 {
		fmt.Fprintln(out, "No market sells anything still needed")
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STATION\tSYSTEM\tDIST (LY)\tARRIVAL (LS)\tPAD\tMATCHES\tUNITS\tEST. COST")
		fmt.Fprintln(w, "-------\t------\t---------\t------------\t---\t-------\t-----\t---------")
		for _, m := range resp.Markets {
			cost := m.Estimate.Cost.StringFixed(0)
			if !m.Estimate.Complete {
				cost += "+"
			}
			fmt.Fprintf(w, "%s\t%s\t%.1f\t%.0f\t%s\t%d\t%d\t%s\n",
				m.StationName, m.SystemName, m.Distance, m.DistanceToArrival,
				padOrDash(string(m.PadSize)), m.Matches(), m.Estimate.Units, cost)
		}
		w.Flush()
	}

	if len(resp.Missed) > 0 {
		names := make([]string, len(resp.Missed))
		for i, id := range resp.Missed {
			names[i] = commodity.DisplayName(id)
		}
		fmt.Fprintf(out, "\nNot sold by any market found: %s\n", strings.Join(names, ", "))
	}
}

func padOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// parseCargoArgs reads "commodity=count" pairs. Commodities may be given by
// id or display name; names are resolved through the taxonomy.
func parseCargoArgs(taxonomy *commodity.Taxonomy, args []string) (cargo.Map, error) {
	out := make(cargo.Map, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected commodity=count, got %q", arg)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid count for %s: %q", name, value)
		}
		c, found := taxonomy.Resolve(name)
		if !found {
			return nil, fmt.Errorf("unknown commodity %q", name)
		}
		out[c.ID] += n
	}
	return out, nil
}
