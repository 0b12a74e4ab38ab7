package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Field is a raw, unparsed form value such as a price or a size. It keeps the
// text the user typed so that invalid input survives a save/load cycle.
// Numbers are parsed on demand by the analytics package.
type Field string

// String returns the raw text.
func (f Field) String() string { return string(f) }

// MarshalJSON always writes the raw text as a JSON string.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// UnmarshalJSON accepts any scalar. Numbers keep their literal text,
// null and composite values decode to the empty field.
func (f *Field) UnmarshalJSON(data []byte) error {
	*f = Field(scalarText(data))
	return nil
}

// scalarText renders a JSON scalar as text; anything else is "".
func scalarText(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	case 'n', '{', '[':
		return ""
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return ""
		}
		return n.String()
	}
}
