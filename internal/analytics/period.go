package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"trade-journal-go/internal/models"

	"github.com/shopspring/decimal"
)

// GroupMode selects the bucket width of a period series.
type GroupMode string

const (
	GroupDay  GroupMode = "day"
	GroupWeek GroupMode = "week"
)

// ParseGroupMode accepts "day" and "week". Empty means day.
func ParseGroupMode(s string) (GroupMode, error) {
	switch GroupMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", GroupDay:
		return GroupDay, nil
	case GroupWeek:
		return GroupWeek, nil
	}
	return "", fmt.Errorf("unknown period mode %q", s)
}

// Metric selects the per-bucket value of a period series.
type Metric string

const (
	MetricPnL Metric = "pnl"
	MetricPct Metric = "pct"
)

// ParseMetric accepts "pnl" and "pct". Empty means pnl.
func ParseMetric(s string) (Metric, error) {
	switch Metric(strings.ToLower(strings.TrimSpace(s))) {
	case "", MetricPnL:
		return MetricPnL, nil
	case MetricPct:
		return MetricPct, nil
	}
	return "", fmt.Errorf("unknown period metric %q", s)
}

// BucketKey identifies a day or an ISO week. Keys order correctly when
// compared by their string form, which is zero-padded and year-first.
type BucketKey struct {
	mode  GroupMode
	year  int // calendar year for days, ISO year for weeks
	month time.Month
	day   int
	week  int
}

// DayKey is the calendar day of t in t's location.
func DayKey(t time.Time) BucketKey {
	y, m, d := t.Date()
	return BucketKey{mode: GroupDay, year: y, month: m, day: d}
}

// WeekKey is the ISO-8601 week of t's calendar day in t's location.
func WeekKey(t time.Time) BucketKey {
	y, w := t.ISOWeek()
	return BucketKey{mode: GroupWeek, year: y, week: w}
}

// Mode reports whether the key is a day or a week.
func (k BucketKey) Mode() GroupMode { return k.mode }

// String is YYYY-MM-DD for days and YYYY-Www for weeks.
func (k BucketKey) String() string {
	if k.mode == GroupWeek {
		return fmt.Sprintf("%04d-W%02d", k.year, k.week)
	}
	return fmt.Sprintf("%04d-%02d-%02d", k.year, int(k.month), k.day)
}

// Label is the chart label: MM-DD for days, the full key for weeks.
func (k BucketKey) Label() string {
	if k.mode == GroupWeek {
		return k.String()
	}
	return fmt.Sprintf("%02d-%02d", int(k.month), k.day)
}

// timestamp layouts without a zone are read in the grouping location,
// a bare date is read as UTC.
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
}

// ParseTimestamp parses the timestamp formats the journal accepts.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// tradeTime picks exitTime, then entryTime, then createdAt. The first
// non-empty source decides; if it does not parse the trade has no time.
func tradeTime(t models.Trade, loc *time.Location) (time.Time, bool) {
	if src := firstNonEmpty(t.ExitTime, t.EntryTime); src != "" {
		return ParseTimestamp(src, loc)
	}
	if t.CreatedAt == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(t.CreatedAt).UTC(), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// KeyFor returns the bucket of t, or false when t has no usable time.
func KeyFor(t models.Trade, mode GroupMode, loc *time.Location) (BucketKey, bool) {
	if loc == nil {
		loc = time.Local
	}
	ts, ok := tradeTime(t, loc)
	if !ok {
		return BucketKey{}, false
	}
	ts = ts.In(loc)
	if mode == GroupWeek {
		return WeekKey(ts), true
	}
	return DayKey(ts), true
}

// Bucket accumulates the trades of one period.
type Bucket struct {
	Key      BucketKey
	PnL      float64
	Notional float64 // trades without a notional add 0
	Trades   int
}

// Value is the bucket's series value under metric, rounded to 2 decimals.
func (b Bucket) Value(metric Metric) float64 {
	if metric == MetricPnL {
		return Round2(b.PnL)
	}
	if b.Notional > 0 {
		return Round2(saturate(b.PnL / b.Notional * 100))
	}
	return 0
}

// PeriodSeries is a chart-ready time series of buckets in key order.
type PeriodSeries struct {
	Mode    GroupMode
	Metric  Metric
	Labels  []string
	Data    []float64
	Buckets []Bucket
}

// BuildPeriodSeries groups trades with a P&L and a usable time into day or
// ISO-week buckets.
func BuildPeriodSeries(trades []models.Trade, mode GroupMode, metric Metric, loc *time.Location) PeriodSeries {
	byKey := make(map[string]*Bucket)
	for _, d := range computed(trades) {
		key, ok := KeyFor(d.Trade, mode, loc)
		if !ok {
			continue
		}
		b, ok := byKey[key.String()]
		if !ok {
			b = &Bucket{Key: key}
			byKey[key.String()] = b
		}
		b.PnL = addSat(b.PnL, d.PnL.Float64)
		if d.Notional.Valid {
			b.Notional = addSat(b.Notional, d.Notional.Float64)
		}
		b.Trades++
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := PeriodSeries{
		Mode:    mode,
		Metric:  metric,
		Labels:  make([]string, 0, len(keys)),
		Data:    make([]float64, 0, len(keys)),
		Buckets: make([]Bucket, 0, len(keys)),
	}
	for _, k := range keys {
		b := byKey[k]
		series.Labels = append(series.Labels, b.Key.Label())
		series.Data = append(series.Data, b.Value(metric))
		series.Buckets = append(series.Buckets, *b)
	}
	return series
}

// Round2 rounds half away from zero to 2 decimals.
func Round2(x float64) float64 {
	if !finite(x) {
		return x
	}
	return RoundDecimal(x, 2).InexactFloat64()
}

// exactDigits covers the longest fractional expansion of a float64.
const exactDigits = 1074

// RoundDecimal rounds the exact binary value of x half away from zero, so
// 1.005 (stored as 1.00499...) rounds down. x must be finite.
func RoundDecimal(x float64, places int32) decimal.Decimal {
	d, err := decimal.NewFromString(strconv.FormatFloat(x, 'f', exactDigits, 64))
	if err != nil {
		d = decimal.NewFromFloat(x)
	}
	return d.Round(places)
}
