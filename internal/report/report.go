// Package report renders simulation results for humans. It is a consumer of
// operator outputs and cost vectors only; nothing here feeds back into the
// model.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"

	"github.com/leengari/shardsim/internal/catalog"
	"github.com/leengari/shardsim/internal/cost"
	"github.com/leengari/shardsim/internal/storage"
)

// Writer renders reports to one output stream.
type Writer struct {
	out io.Writer
}

// NewWriter returns a report writer targeting out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w.out)
	// Keep header values as written, not uppercased.
	t.Style().Format.Header = text.FormatDefault
	return t
}

// WriteSizes renders the per-collection storage footprint and the database
// total.
func (w *Writer) WriteSizes(db *catalog.Database) {
	fmt.Fprintf(w.out, "Database %s (%d nodes)\n", db.Name, db.Nodes)

	t := w.newTable()
	t.AppendHeader(table.Row{"Collection", "Documents", "Doc size", "Total"})
	for _, c := range db.Collections() {
		t.AppendRow(table.Row{c.Name, c.Count, humanBytes(float64(c.DocSize)), humanBytes(float64(c.TotalBytes()))})
	}
	t.AppendFooter(table.Row{"Total", "", "", humanBytes(float64(db.TotalBytes()))})
	t.Render()
	fmt.Fprintln(w.out)
}

// WriteShardStats renders sharding-distribution estimates.
func (w *Writer) WriteShardStats(stats []catalog.ShardingStats) {
	t := w.newTable()
	t.AppendHeader(table.Row{"Collection", "Shard key", "Docs / node", "Distinct values / node"})
	for _, st := range stats {
		t.AppendRow(table.Row{st.Collection, st.ShardKey, fmt.Sprintf("%.2f", st.DocsPerNode), fmt.Sprintf("%.2f", st.DistinctPerNode)})
	}
	t.Render()
	fmt.Fprintln(w.out)
}

// WriteQueryRun renders one query: its stages and the summed cost.
func (w *Writer) WriteQueryRun(run storage.QueryRun) {
	fmt.Fprintf(w.out, "Query: %s\n", run.Name)

	t := w.newTable()
	t.AppendHeader(table.Row{"Stage", "Operator", "Strategy", "Sharding keys", "Index", "Output docs", "Output size", "Nodes", "Time"})
	for i, stage := range run.Pipeline.Stages() {
		t.AppendRow(table.Row{
			i + 1,
			stage.Operator,
			string(stage.Strategy),
			orNone(strings.Join(stage.ShardKeys, ", ")),
			orNone(stage.Index),
			fmt.Sprintf("%.0f", stage.OutputRows),
			humanBytes(stage.OutputSize),
			stage.Cost.NodesInvolved,
			fmt.Sprintf("%.6f s", stage.Cost.TimeSec),
		})
	}
	t.Render()

	w.writeCost(run.Pipeline.TotalCost())
	fmt.Fprintln(w.out)
}

// writeCost renders a cost vector the way the course reports do: time,
// carbon and price per execution, price per 1000 executions and the
// equivalent hourly rate.
func (w *Writer) writeCost(v cost.Vector) {
	fmt.Fprintln(w.out, "Costs:")
	fmt.Fprintf(w.out, "    time:             %.6f s\n", v.TimeSec)
	fmt.Fprintf(w.out, "    energy:           %.9f kWh\n", v.EnergyKWh)
	fmt.Fprintf(w.out, "    carbon footprint: %.6f g\n", v.CarbonGrams)
	fmt.Fprintf(w.out, "    price:            %.6f (%.6f for 1000 exec.)\n", v.Price, v.Price*1000)
	if v.TimeSec > 0 {
		fmt.Fprintf(w.out, "    hourly rate:      %.6f /h\n", 3600/v.TimeSec*v.Price)
	}
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// humanBytes formats a byte volume in the closest binary unit.
func humanBytes(b float64) string {
	const unit = 1024.0
	switch {
	case b >= unit*unit*unit*unit:
		return fmt.Sprintf("%.2f TiB", b/(unit*unit*unit*unit))
	case b >= unit*unit*unit:
		return fmt.Sprintf("%.2f GiB", b/(unit*unit*unit))
	case b >= unit*unit:
		return fmt.Sprintf("%.2f MiB", b/(unit*unit))
	case b >= unit:
		return fmt.Sprintf("%.2f KiB", b/unit)
	default:
		return fmt.Sprintf("%.0f B", b)
	}
}
