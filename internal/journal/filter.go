package journal

import (
	"sort"
	"strings"

	"trade-journal-go/internal/models"
)

// SideAll disables the side filter.
const SideAll = "ALL"

// Filter narrows the table view. It never affects statistics or charts.
type Filter struct {
	Query string // case-insensitive substring over symbol, side, strategy, exchange and notes
	Side  string // "", ALL, or an exact side
}

// Match reports whether t passes the filter.
func (f Filter) Match(t models.Trade) bool {
	if f.Side != "" && f.Side != SideAll && string(t.Side) != f.Side {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	parts := make([]string, 0, 5)
	for _, s := range []string{t.Symbol, string(t.Side), t.Strategy, t.Exchange, t.Notes} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), q)
}

// Apply returns the matching trades, newest first. Trades created in the
// same millisecond keep their insertion order.
func Apply(trades []models.Trade, f Filter) []models.Trade {
	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}
