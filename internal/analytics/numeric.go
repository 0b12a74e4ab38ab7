package analytics

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"trade-journal-go/internal/models"
)

// NullFloat is a float64 that may be absent.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Some wraps a present value.
func Some(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// Get returns the value and whether it is present.
func (n NullFloat) Get() (float64, bool) { return n.Float64, n.Valid }

// MarshalJSON writes null for absent values.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// Coerce parses raw text into a finite number. Blank, non-decimal and
// non-finite input (including "Infinity", "NaN" and hex) is absent.
func Coerce(f models.Field) (float64, bool) {
	s := strings.TrimSpace(string(f))
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// saturate clamps an overflowed value to the largest finite float of the
// same sign. NaN becomes 0.
func saturate(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// addSat adds two finite values, saturating on overflow.
func addSat(a, b float64) float64 {
	return saturate(a + b)
}

func coerceOr(f models.Field, fallback float64) float64 {
	if v, ok := Coerce(f); ok {
		return v
	}
	return fallback
}
