package report

import (
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/models"
)

// Placeholder is shown for absent values.
const Placeholder = "—"

const notesPreview = 60

func fixed(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return analytics.RoundDecimal(x, places).StringFixed(places)
}

// Money renders $12.34 or -$12.34.
func Money(x float64) string {
	sign := ""
	if x < 0 {
		sign = "-"
	}
	return sign + "$" + fixed(math.Abs(x), 2)
}

// Pct renders 1.23% or -1.23%, or the placeholder when absent.
func Pct(v analytics.NullFloat) string {
	x, ok := v.Get()
	if !ok {
		return Placeholder
	}
	sign := ""
	if x < 0 {
		sign = "-"
	}
	return sign + fixed(math.Abs(x), 2) + "%"
}

// ProfitFactor renders the ratio with 2 decimals, or ∞.
func ProfitFactor(s analytics.Stats) string {
	if s.ProfitFactorInfinite() {
		return "∞"
	}
	return fixed(s.ProfitFactor, 2)
}

// WinRate renders a whole percentage.
func WinRate(x float64) string {
	return fixed(x, 0) + "%"
}

// DateTime renders a trade timestamp as dd.mm.yy, HH:MM in loc. Empty or
// unparsable input renders as "".
func DateTime(s string, loc *time.Location) string {
	ts, ok := analytics.ParseTimestamp(s, loc)
	if !ok {
		return ""
	}
	return ts.In(loc).Format("02.01.06, 15:04")
}

// TimeRange renders entry → exit times, omitting the arrow when either is missing.
func TimeRange(t models.Trade, loc *time.Location) string {
	entry := DateTime(t.EntryTime, loc)
	exit := DateTime(t.ExitTime, loc)
	if t.EntryTime != "" && t.ExitTime != "" {
		return entry + " → " + exit
	}
	return entry + exit
}

// Price renders a coerced raw field or the placeholder.
func Price(f models.Field) string {
	v, ok := analytics.Coerce(f)
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EntryExit renders "entry → exit".
func EntryExit(t models.Trade) string {
	return Price(t.Entry) + " → " + Price(t.Exit)
}

// Notes shortens notes to the table preview length.
func Notes(s string) string {
	if utf8.RuneCountInString(s) <= notesPreview {
		return s
	}
	runes := []rune(s)
	return string(runes[:notesPreview]) + "…"
}
