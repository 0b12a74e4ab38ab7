package analytics

import (
	"math"
	"testing"

	"trade-journal-go/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProfitFactor(t *testing.T) {
	assert.True(t, math.IsInf(ProfitFactor(100, 0), 1))
	assert.Equal(t, 0.0, ProfitFactor(0, 0))
	assert.Equal(t, 2.0, ProfitFactor(50, 25))
	assert.Equal(t, 0.0, ProfitFactor(0, 10))
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Equal(t, Stats{}, s)
	assert.False(t, math.IsNaN(s.WinRate))
	assert.False(t, s.ProfitFactorInfinite())
}

func TestComputeStats_ExcludesInvalidTrades(t *testing.T) {
	trades := []models.Trade{
		trade(models.SideLong, "100", "110", "1", "0"),  // +10, notional 100
		trade(models.SideLong, "abc", "110", "1", "0"),  // excluded
		trade(models.SideLong, "100", "", "1", "0"),     // excluded
		trade(models.SideShort, "200", "210", "1", "0"), // -10, notional 200
	}

	s := ComputeStats(trades)
	assert.Equal(t, 2, s.TradesCount)
	assert.InDelta(t, 0.0, s.TotalPnL, 1e-9)
	assert.InDelta(t, 50.0, s.WinRate, 1e-9)
	assert.InDelta(t, 10.0, s.GrossProfit, 1e-9)
	assert.InDelta(t, 10.0, s.GrossLossAbs, 1e-9)
	assert.InDelta(t, 1.0, s.ProfitFactor, 1e-9)
	// (10% + -5%) / 2
	assert.InDelta(t, 2.5, s.AvgResultPct, 1e-9)
	assert.InDelta(t, 0.0, s.TotalResultPct, 1e-9)
}

func TestComputeStats_OnlyWinners(t *testing.T) {
	trades := []models.Trade{
		trade(models.SideLong, "100", "150", "1", "0"),
		trade(models.SideLong, "100", "150", "1", "0"),
	}

	s := ComputeStats(trades)
	assert.Equal(t, 100.0, s.GrossProfit)
	assert.Equal(t, 0.0, s.GrossLossAbs)
	assert.True(t, s.ProfitFactorInfinite())
	assert.Equal(t, 100.0, s.WinRate)
	assert.InDelta(t, 50.0, s.TotalResultPct, 1e-9)
}

func TestComputeStats_FlatTrades(t *testing.T) {
	s := ComputeStats([]models.Trade{trade(models.SideLong, "100", "100", "1", "0")})
	assert.Equal(t, 1, s.TradesCount)
	assert.Equal(t, 0.0, s.WinRate)
	assert.Equal(t, 0.0, s.ProfitFactor)
}

func TestComputeStats_WeightedResultSkipsMissingNotional(t *testing.T) {
	trades := []models.Trade{
		trade(models.SideLong, "100", "110", "1", "0"), // +10, notional 100
		trade(models.SideLong, "-10", "0", "1", "0"),   // +10, no notional
	}

	s := ComputeStats(trades)
	assert.InDelta(t, 20.0, s.TotalPnL, 1e-9)
	// 20 / 100 * 100
	assert.InDelta(t, 20.0, s.TotalResultPct, 1e-9)
	// only the first trade has a result %
	assert.InDelta(t, 10.0, s.AvgResultPct, 1e-9)
}

func TestComputeStats_NoNotionalAtAll(t *testing.T) {
	s := ComputeStats([]models.Trade{trade(models.SideLong, "-10", "0", "1", "0")})
	assert.Equal(t, 0.0, s.TotalResultPct)
	assert.Equal(t, 0.0, s.AvgResultPct)
}
