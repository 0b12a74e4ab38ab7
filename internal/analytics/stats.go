package analytics

import (
	"math"

	"trade-journal-go/internal/models"
)

// Stats is the summary of a trade collection. Only records with a P&L
// participate. Sums saturate at the largest finite float, so every field but
// an unbounded ProfitFactor is finite.
type Stats struct {
	TotalPnL       float64
	WinRate        float64 // percent of trades with P&L > 0
	GrossProfit    float64
	GrossLossAbs   float64
	ProfitFactor   float64 // +Inf when there are profits and no losses
	AvgResultPct   float64
	TotalResultPct float64 // notional-weighted
	TradesCount    int
}

// ProfitFactorInfinite reports whether the profit factor is unbounded.
func (s Stats) ProfitFactorInfinite() bool {
	return math.IsInf(s.ProfitFactor, 1)
}

// ComputeStats reduces the whole collection into summary statistics.
func ComputeStats(trades []models.Trade) Stats {
	items := computed(trades)

	var s Stats
	s.TradesCount = len(items)

	var wins int
	var grossLoss float64
	var sumResult float64
	var results int
	var sumNotional float64

	for _, d := range items {
		pnl := d.PnL.Float64
		s.TotalPnL = addSat(s.TotalPnL, pnl)
		switch {
		case pnl > 0:
			wins++
			s.GrossProfit = addSat(s.GrossProfit, pnl)
		case pnl < 0:
			grossLoss = addSat(grossLoss, pnl)
		}
		if d.ResultPct.Valid {
			sumResult = addSat(sumResult, d.ResultPct.Float64)
			results++
		}
		if d.Notional.Valid {
			sumNotional = addSat(sumNotional, d.Notional.Float64)
		}
	}

	if len(items) > 0 {
		s.WinRate = float64(wins) / float64(len(items)) * 100
	}

	s.GrossLossAbs = math.Abs(grossLoss)
	s.ProfitFactor = ProfitFactor(s.GrossProfit, s.GrossLossAbs)

	if results > 0 {
		s.AvgResultPct = sumResult / float64(results)
	}
	if sumNotional > 0 {
		s.TotalResultPct = saturate(s.TotalPnL / sumNotional * 100)
	}
	return s
}

// ProfitFactor is grossProfit/grossLossAbs. With no losses it is +Inf when
// there was any profit and 0 otherwise. A ratio that overflows with losses
// present saturates instead.
func ProfitFactor(grossProfit, grossLossAbs float64) float64 {
	if grossLossAbs == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return saturate(grossProfit / grossLossAbs)
}
