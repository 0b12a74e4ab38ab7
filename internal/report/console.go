package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/models"

	"github.com/olekukonko/tablewriter"
)

// Console renders journal views as text tables.
type Console struct {
	out io.Writer
	loc *time.Location
}

// NewConsole writes to stdout using loc for timestamps.
func NewConsole(loc *time.Location) *Console {
	return NewConsoleWriter(os.Stdout, loc)
}

// NewConsoleWriter writes to w.
func NewConsoleWriter(w io.Writer, loc *time.Location) *Console {
	if loc == nil {
		loc = time.Local
	}
	return &Console{out: w, loc: loc}
}

// Trades prints the trade table. Rows are printed in the given order.
func (c *Console) Trades(rows []analytics.Derived) error {
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "No trades yet. Add your first position.")
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Symbol", "Side", "Entry → Exit", "Size", "P&L", "Result", "Time", "Strategy / Exchange", "Notes")
	for _, d := range rows {
		t := d.Trade
		if err := table.Append(
			t.ID,
			t.Symbol,
			string(t.Side),
			EntryExit(t),
			Price(t.Size),
			pnlCell(d.PnL),
			Pct(d.ResultPct),
			TimeRange(t, c.loc),
			strategyCell(t),
			Notes(t.Notes),
		); err != nil {
			return err
		}
	}
	return table.Render()
}

// Stats prints the summary block.
func (c *Console) Stats(s analytics.Stats) error {
	table := tablewriter.NewWriter(c.out)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Total P&L", Money(s.TotalPnL)},
		{"Winrate", WinRate(s.WinRate)},
		{"Profit factor", ProfitFactor(s)},
		{"Avg result", Pct(analytics.Some(s.AvgResultPct))},
		{"Total result", Pct(analytics.Some(s.TotalResultPct))},
		{"Trades", strconv.Itoa(s.TradesCount)},
	}
	for _, r := range rows {
		if err := table.Append(r[0], r[1]); err != nil {
			return err
		}
	}
	return table.Render()
}

// Series prints a labelled chart dataset as a two column table.
func (c *Console) Series(title string, labels []string, data []float64) error {
	fmt.Fprintf(c.out, "%s\n", title)
	if len(labels) == 0 {
		fmt.Fprintln(c.out, "  no data")
		return nil
	}
	table := tablewriter.NewWriter(c.out)
	table.Header("Label", "Value")
	for i, label := range labels {
		if err := table.Append(label, fixed(data[i], 2)); err != nil {
			return err
		}
	}
	return table.Render()
}

// Equity prints the equity or per-trade series.
func (c *Console) Equity(s analytics.Series, mode analytics.EquityMode) error {
	return c.Series(EquityLabel(mode), s.Labels, s.Data)
}

// Period prints the day or week series.
func (c *Console) Period(p analytics.PeriodSeries) error {
	return c.Series(PeriodLabel(p.Mode, p.Metric), p.Labels, p.Data)
}

// Sides prints the LONG/SHORT split.
func (c *Console) Sides(sc analytics.SideCounts) error {
	return c.Series("Sides", SideLabels, []float64{float64(sc.Long), float64(sc.Short)})
}

func pnlCell(v analytics.NullFloat) string {
	x, ok := v.Get()
	if !ok {
		return Placeholder
	}
	return Money(x)
}

func strategyCell(t models.Trade) string {
	switch {
	case t.Strategy != "" && t.Exchange != "":
		return t.Strategy + " / " + t.Exchange
	case t.Strategy != "":
		return t.Strategy
	default:
		return t.Exchange
	}
}
