package analytics

import (
	"testing"

	"trade-journal-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func created(id, symbol string, at int64, entry, exit string) models.Trade {
	tr := trade(models.SideLong, entry, exit, "1", "0")
	tr.ID = id
	tr.Symbol = symbol
	tr.CreatedAt = at
	return tr
}

func TestBuildEquitySeries(t *testing.T) {
	trades := []models.Trade{
		created("c", "ETH", 3000, "10", "5"),  // -5
		created("a", "BTC", 1000, "10", "20"), // +10
		created("x", "BAD", 1500, "", "20"),   // no P&L
		created("b", "", 2000, "10", "13"),    // +3
	}

	eq := BuildEquitySeries(trades, EquityCumulative)
	assert.Equal(t, []string{"1 BTC", "2", "3 ETH"}, eq.Labels)
	assert.Equal(t, []float64{10, 13, 8}, eq.Data)

	per := BuildEquitySeries(trades, EquityPerTrade)
	assert.Equal(t, eq.Labels, per.Labels)
	assert.Equal(t, []float64{10, 3, -5}, per.Data)
}

func TestBuildEquitySeries_TieBreakByID(t *testing.T) {
	trades := []models.Trade{
		created("b", "SECOND", 1000, "10", "11"),
		created("a", "FIRST", 1000, "10", "12"),
	}

	s := BuildEquitySeries(trades, EquityPerTrade)
	require.Len(t, s.Data, 2)
	assert.Equal(t, []string{"1 FIRST", "2 SECOND"}, s.Labels)
	assert.Equal(t, []float64{2, 1}, s.Data)
}

func TestBuildEquitySeries_DoesNotReorderInput(t *testing.T) {
	trades := []models.Trade{
		created("b", "B", 2000, "1", "2"),
		created("a", "A", 1000, "1", "2"),
	}
	_ = BuildEquitySeries(trades, EquityCumulative)
	assert.Equal(t, "b", trades[0].ID)
}

func TestBuildEquitySeries_Empty(t *testing.T) {
	s := BuildEquitySeries(nil, EquityCumulative)
	assert.Empty(t, s.Labels)
	assert.Empty(t, s.Data)
}

func TestCountSides(t *testing.T) {
	trades := []models.Trade{
		{Side: models.SideLong},
		{Side: models.SideLong},
		{Side: models.SideShort},
		{Side: "long"},
		{Side: ""},
	}
	assert.Equal(t, SideCounts{Long: 2, Short: 1}, CountSides(trades))
	assert.Equal(t, SideCounts{}, CountSides(nil))
}

func TestParseEquityMode(t *testing.T) {
	m, err := ParseEquityMode("")
	require.NoError(t, err)
	assert.Equal(t, EquityCumulative, m)

	m, err = ParseEquityMode("pertrade")
	require.NoError(t, err)
	assert.Equal(t, EquityPerTrade, m)

	_, err = ParseEquityMode("drawdown")
	assert.Error(t, err)
}
