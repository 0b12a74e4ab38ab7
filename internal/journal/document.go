package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"trade-journal-go/internal/models"
)

// ExportFileName is the suggested download name of an export.
const ExportFileName = "trading-journal.json"

// isoMillis matches the ISO-8601 form with millisecond precision and a Z suffix.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Document is the export/import file format.
type Document struct {
	Version    int            `json:"version"`
	ExportedAt string         `json:"exportedAt"`
	Trades     []models.Trade `json:"trades"`
}

// NewDocument builds an export of trades taken at now.
func NewDocument(version int, now time.Time, trades []models.Trade) Document {
	if trades == nil {
		trades = []models.Trade{}
	}
	return Document{
		Version:    version,
		ExportedAt: now.UTC().Format(isoMillis),
		Trades:     trades,
	}
}

// Encode writes the document as indented JSON.
func (d Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("could not encode document: %w", err)
	}
	return nil
}

// DecodeDocument parses an import document. The only shape rule is that
// "trades" is present and is an array; its elements are accepted as they
// are. Any failure wraps ErrInvalidDocument.
func DecodeDocument(data []byte) (Document, error) {
	var raw struct {
		Version    json.RawMessage `json:"version"`
		ExportedAt json.RawMessage `json:"exportedAt"`
		Trades     json.RawMessage `json:"trades"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	trades := bytes.TrimSpace(raw.Trades)
	if len(trades) == 0 || trades[0] != '[' {
		return Document{}, fmt.Errorf("%w: trades must be an array", ErrInvalidDocument)
	}

	var doc Document
	if err := json.Unmarshal(trades, &doc.Trades); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc.Trades == nil {
		doc.Trades = []models.Trade{}
	}
	// version and exportedAt are informational; a wrong type leaves the zero value
	if len(raw.Version) > 0 {
		if err := json.Unmarshal(raw.Version, &doc.Version); err != nil {
			doc.Version = 0
		}
	}
	if len(raw.ExportedAt) > 0 {
		if err := json.Unmarshal(raw.ExportedAt, &doc.ExportedAt); err != nil {
			doc.ExportedAt = ""
		}
	}
	return doc, nil
}

// encodeCollection serializes trades for the blob store.
func encodeCollection(trades []models.Trade) ([]byte, error) {
	if trades == nil {
		trades = []models.Trade{}
	}
	return json.Marshal(trades)
}

// decodeCollection parses a stored collection. Anything that is not a JSON
// array yields ok=false.
func decodeCollection(data []byte) (trades []models.Trade, ok bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, false
	}
	if err := json.Unmarshal(data, &trades); err != nil {
		return nil, false
	}
	return trades, true
}
