package report

import (
	"fmt"
	"io"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	TradesSheet = "Trades"
	StatsSheet  = "Stats"
)

// XLSXFileName is the download name of the workbook export.
const XLSXFileName = "crypto-trade-journal.xlsx"

var tradeColumns = []interface{}{
	"id", "symbol", "side", "entry", "exit", "size", "fee",
	"entryTime", "exitTime", "strategy", "exchange", "notes", "createdAt",
	"pnl", "notional", "resultPct",
}

// WriteWorkbook writes trades with their derived metrics and the summary
// statistics as an xlsx workbook.
func WriteWorkbook(w io.Writer, trades []models.Trade, stats analytics.Stats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TradesSheet); err != nil {
		return fmt.Errorf("could not rename sheet: %w", err)
	}
	if err := writeTrades(f, trades); err != nil {
		return err
	}
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return fmt.Errorf("could not create stats sheet: %w", err)
	}
	if err := writeStats(f, stats); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}
	return nil
}

func writeTrades(f *excelize.File, trades []models.Trade) error {
	if err := f.SetSheetRow(TradesSheet, "A1", &tradeColumns); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	for i, t := range trades {
		d := analytics.Derive(t)
		row := []interface{}{
			t.ID, t.Symbol, string(t.Side),
			string(t.Entry), string(t.Exit), string(t.Size), string(t.Fee),
			t.EntryTime, t.ExitTime, t.Strategy, t.Exchange, t.Notes, t.CreatedAt,
			cellValue(d.PnL), cellValue(d.Notional), cellValue(d.ResultPct),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(TradesSheet, cell, &row); err != nil {
			return fmt.Errorf("could not write trade %d: %w", i, err)
		}
	}
	return nil
}

func writeStats(f *excelize.File, s analytics.Stats) error {
	var pf interface{} = s.ProfitFactor
	if s.ProfitFactorInfinite() {
		pf = "∞"
	}
	rows := [][]interface{}{
		{"metric", "value"},
		{"totalPnl", s.TotalPnL},
		{"winrate", s.WinRate},
		{"grossProfit", s.GrossProfit},
		{"grossLossAbs", s.GrossLossAbs},
		{"profitFactor", pf},
		{"avgResultPct", s.AvgResultPct},
		{"totalResultPct", s.TotalResultPct},
		{"tradesCount", s.TradesCount},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(StatsSheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("could not write stats: %w", err)
		}
	}
	return nil
}

// cellValue leaves absent metrics as empty cells.
func cellValue(v analytics.NullFloat) interface{} {
	if x, ok := v.Get(); ok {
		return x
	}
	return nil
}
