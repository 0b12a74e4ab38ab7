package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Side is the trade direction.
type Side string

const (
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// Trade is one journal record. It is immutable once stored: edits,
// duplicates and deletes replace records wholesale. Derived values
// (notional, P&L, result %) are never stored.
type Trade struct {
	ID        string `json:"id"`
	Symbol    string `json:"symbol"`
	Side      Side   `json:"side"`
	Entry     Field  `json:"entry"`
	Exit      Field  `json:"exit"`
	Size      Field  `json:"size"`
	Fee       Field  `json:"fee"`
	EntryTime string `json:"entryTime"`
	ExitTime  string `json:"exitTime"`
	Strategy  string `json:"strategy"`
	Exchange  string `json:"exchange"`
	Notes     string `json:"notes"`
	CreatedAt int64  `json:"createdAt"` // epoch milliseconds
}

// UnmarshalJSON decodes a record leniently. Imported collections may hold
// anything, so wrong-typed fields are dropped instead of failing the whole
// document, and a non-object element decodes to an empty record.
func (t *Trade) UnmarshalJSON(data []byte) error {
	*t = Trade{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	text := func(key string) string { return scalarText(raw[key]) }

	t.ID = text("id")
	t.Symbol = text("symbol")
	t.Side = Side(text("side"))
	t.Entry = Field(text("entry"))
	t.Exit = Field(text("exit"))
	t.Size = Field(text("size"))
	t.Fee = Field(text("fee"))
	t.EntryTime = text("entryTime")
	t.ExitTime = text("exitTime")
	t.Strategy = text("strategy")
	t.Exchange = text("exchange")
	t.Notes = text("notes")
	t.CreatedAt = parseMillis(text("createdAt"))
	return nil
}

// parseMillis reads an epoch-millisecond value written either as an integer
// or as a float. Unparsable or non-finite input is 0.
func parseMillis(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}
