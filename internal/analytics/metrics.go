package analytics

import "trade-journal-go/internal/models"

// Direction is the P&L sign multiplier: -1 for SHORT, +1 for anything else.
func Direction(side models.Side) float64 {
	if side == models.SideShort {
		return -1
	}
	return 1
}

// Notional returns entry*size. It is absent when either input is not a
// finite number or when the product is not strictly positive.
func Notional(t models.Trade) (float64, bool) {
	entry, ok := Coerce(t.Entry)
	if !ok {
		return 0, false
	}
	size, ok := Coerce(t.Size)
	if !ok {
		return 0, false
	}
	notional := entry * size
	if notional <= 0 || !finite(notional) {
		return 0, false
	}
	return notional, true
}

// PnL returns (exit-entry)*size*direction - fee. A missing or invalid fee
// counts as 0; missing entry, exit or size makes the result absent.
func PnL(t models.Trade) (float64, bool) {
	entry, ok := Coerce(t.Entry)
	if !ok {
		return 0, false
	}
	exit, ok := Coerce(t.Exit)
	if !ok {
		return 0, false
	}
	size, ok := Coerce(t.Size)
	if !ok {
		return 0, false
	}
	fee := coerceOr(t.Fee, 0)

	pnl := (exit-entry)*size*Direction(t.Side) - fee
	if !finite(pnl) {
		// overflow of otherwise valid inputs
		return 0, false
	}
	return pnl, true
}

// ResultPct returns P&L as a percentage of notional. Absent when either is,
// or when the ratio overflows.
func ResultPct(t models.Trade) (float64, bool) {
	pnl, ok := PnL(t)
	if !ok {
		return 0, false
	}
	notional, ok := Notional(t)
	if !ok {
		return 0, false
	}
	pct := pnl / notional * 100
	if !finite(pct) {
		return 0, false
	}
	return pct, true
}

// Derived bundles a record with its recomputed metrics.
type Derived struct {
	Trade     models.Trade
	PnL       NullFloat
	Notional  NullFloat
	ResultPct NullFloat
}

// Derive computes all per-trade metrics for t.
func Derive(t models.Trade) Derived {
	d := Derived{Trade: t}
	if v, ok := PnL(t); ok {
		d.PnL = Some(v)
	}
	if v, ok := Notional(t); ok {
		d.Notional = Some(v)
	}
	if v, ok := ResultPct(t); ok {
		d.ResultPct = Some(v)
	}
	return d
}

// computed returns the derived records that have a P&L, in collection order.
func computed(trades []models.Trade) []Derived {
	out := make([]Derived, 0, len(trades))
	for _, t := range trades {
		d := Derive(t)
		if d.PnL.Valid {
			out = append(out, d)
		}
	}
	return out
}
