package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"trade-journal-go/internal/models"
)

// EquityMode selects the equity chart flavour.
type EquityMode string

const (
	EquityCumulative EquityMode = "equity"
	EquityPerTrade   EquityMode = "pertrade"
)

// ParseEquityMode accepts "equity" and "pertrade". Empty means equity.
func ParseEquityMode(s string) (EquityMode, error) {
	switch EquityMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", EquityCumulative:
		return EquityCumulative, nil
	case EquityPerTrade:
		return EquityPerTrade, nil
	}
	return "", fmt.Errorf("unknown equity mode %q", s)
}

// Series is a labelled chart dataset.
type Series struct {
	Labels []string
	Data   []float64
}

// BuildEquitySeries orders trades with a P&L by creation time (id breaks
// ties) and emits either the per-trade P&L or its running sum.
func BuildEquitySeries(trades []models.Trade, mode EquityMode) Series {
	items := computed(trades)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Trade, items[j].Trade
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		return a.ID < b.ID
	})

	s := Series{
		Labels: make([]string, len(items)),
		Data:   make([]float64, len(items)),
	}
	var cum float64
	for i, d := range items {
		label := strconv.Itoa(i + 1)
		if d.Trade.Symbol != "" {
			label += " " + d.Trade.Symbol
		}
		s.Labels[i] = label

		if mode == EquityPerTrade {
			s.Data[i] = d.PnL.Float64
			continue
		}
		cum = addSat(cum, d.PnL.Float64)
		s.Data[i] = cum
	}
	return s
}

// SideCounts tallies exact LONG and SHORT sides.
type SideCounts struct {
	Long  int
	Short int
}

// CountSides counts over the whole collection; other side values count in
// neither bucket.
func CountSides(trades []models.Trade) SideCounts {
	var c SideCounts
	for _, t := range trades {
		switch t.Side {
		case models.SideLong:
			c.Long++
		case models.SideShort:
			c.Short++
		}
	}
	return c
}
