package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/remote"
	"trade-journal-go/internal/report"
)

var errUsage = errors.New("usage")

const usage = `usage: journal [-config dir] [-v] <command> [flags]

commands:
  add      record a trade
  list     show trades, newest first
  stats    show summary statistics
  dup      duplicate a trade by id
  rm       delete a trade by id
  clear    delete every trade (needs -yes)
  export   write the JSON export
  import   replace trades from a JSON export file, stdin or -url
  equity   show the equity or per-trade P&L series
  period   show daily or weekly P&L or result
  sides    show the LONG/SHORT split
  xlsx     write an xlsx workbook
`

// app runs one subcommand against the journal.
type app struct {
	journal *journal.Service
	console *report.Console
	fetcher remote.Fetcher
	stdin   io.Reader
	stdout  io.Writer
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.stdout, usage)
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		return a.add(ctx, rest)
	case "list":
		return a.list(rest)
	case "stats":
		return a.console.Stats(a.journal.Stats())
	case "dup":
		return a.withID(rest, "dup", func(id string) error {
			t, err := a.journal.Duplicate(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Duplicated %s as %s\n", id, t.ID)
			return nil
		})
	case "rm":
		return a.withID(rest, "rm", func(id string) error {
			if err := a.journal.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Deleted %s\n", id)
			return nil
		})
	case "clear":
		return a.clear(ctx, rest)
	case "export":
		return a.export(rest)
	case "import":
		return a.importDocument(ctx, rest)
	case "equity":
		return a.equity(rest)
	case "period":
		return a.period(rest)
	case "sides":
		return a.console.Sides(a.journal.Sides())
	case "xlsx":
		return a.xlsx(rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
		return nil
	}
	fmt.Fprint(a.stdout, usage)
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stdout)
	return fs
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	var in journal.TradeInput
	var side, entry, exit, size, fee string
	fs.StringVar(&in.Symbol, "symbol", "", "ticker, e.g. BTCUSDT")
	fs.StringVar(&side, "side", "LONG", "LONG or SHORT")
	fs.StringVar(&entry, "entry", "", "entry price")
	fs.StringVar(&exit, "exit", "", "exit price")
	fs.StringVar(&size, "size", "", "position size in units")
	fs.StringVar(&fee, "fee", "0", "total fees")
	fs.StringVar(&in.EntryTime, "entry-time", "", "entry time, e.g. 2024-03-04T10:00")
	fs.StringVar(&in.ExitTime, "exit-time", "", "exit time")
	fs.StringVar(&in.Strategy, "strategy", "", "strategy name")
	fs.StringVar(&in.Exchange, "exchange", "", "exchange name")
	fs.StringVar(&in.Notes, "notes", "", "free text notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in.Side = models.Side(side)
	in.Entry, in.Exit = models.Field(entry), models.Field(exit)
	in.Size, in.Fee = models.Field(size), models.Field(fee)

	t, err := a.journal.Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added %s %s %s\n", t.ID, t.Symbol, t.Side)
	return nil
}

func (a *app) list(args []string) error {
	fs := a.flagSet("list")
	q := fs.String("q", "", "search symbol, side, strategy, exchange and notes")
	side := fs.String("side", journal.SideAll, "ALL, LONG or SHORT")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f := journal.Filter{Query: *q, Side: strings.ToUpper(*side)}
	return a.console.Trades(a.journal.View(f))
}

func (a *app) withID(args []string, name string, fn func(id string) error) error {
	fs := a.flagSet(name)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: %s <id>", errUsage, name)
	}
	return fn(fs.Arg(0))
}

func (a *app) clear(ctx context.Context, args []string) error {
	fs := a.flagSet("clear")
	yes := fs.Bool("yes", false, "confirm deleting every trade")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("%w: clear deletes all %d trades, rerun with -yes", errUsage, len(a.journal.Trades()))
	}
	if err := a.journal.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "All trades deleted")
	return nil
}

func (a *app) export(args []string) error {
	fs := a.flagSet("export")
	out := fs.String("o", "-", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return a.writeTo(*out, func(w io.Writer) error {
		return a.journal.Export().Encode(w)
	})
}

func (a *app) xlsx(args []string) error {
	fs := a.flagSet("xlsx")
	out := fs.String("o", report.XLSXFileName, "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.writeTo(*out, func(w io.Writer) error {
		return report.WriteWorkbook(w, a.journal.Trades(), a.journal.Stats())
	}); err != nil {
		return err
	}
	if *out != "-" {
		fmt.Fprintf(a.stdout, "Wrote %s\n", *out)
	}
	return nil
}

func (a *app) importDocument(ctx context.Context, args []string) error {
	fs := a.flagSet("import")
	url := fs.String("url", "", "fetch the document from this URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var data []byte
	var err error
	switch {
	case *url != "":
		data, err = a.fetcher.FetchDocument(ctx, *url)
	case fs.NArg() == 1 && fs.Arg(0) != "-":
		data, err = os.ReadFile(fs.Arg(0))
	case fs.NArg() <= 1:
		data, err = io.ReadAll(a.stdin)
	default:
		return fmt.Errorf("%w: import [-url URL] [file|-]", errUsage)
	}
	if err != nil {
		return fmt.Errorf("could not read document: %w", err)
	}

	n, err := a.journal.Import(ctx, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Imported %d trades\n", n)
	return nil
}

func (a *app) equity(args []string) error {
	fs := a.flagSet("equity")
	modeFlag := fs.String("mode", string(analytics.EquityCumulative), "equity or pertrade")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mode, err := analytics.ParseEquityMode(*modeFlag)
	if err != nil {
		return err
	}
	return a.console.Equity(a.journal.Equity(mode), mode)
}

func (a *app) period(args []string) error {
	fs := a.flagSet("period")
	modeFlag := fs.String("mode", string(analytics.GroupDay), "day or week")
	metricFlag := fs.String("metric", string(analytics.MetricPnL), "pnl or pct")
	if err := fs.Parse(args); err != nil {
		return err
	}
	mode, err := analytics.ParseGroupMode(*modeFlag)
	if err != nil {
		return err
	}
	metric, err := analytics.ParseMetric(*metricFlag)
	if err != nil {
		return err
	}
	return a.console.Period(a.journal.Period(mode, metric))
}

// writeTo streams to path, or to stdout for "-".
func (a *app) writeTo(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(a.stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
