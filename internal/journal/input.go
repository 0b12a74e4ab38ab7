package journal

import (
	"fmt"
	"strings"

	"trade-journal-go/internal/models"

	"github.com/go-playground/validator/v10"
)

// TradeInput is what the entry form submits.
type TradeInput struct {
	Symbol    string       `json:"symbol" validate:"required"`
	Side      models.Side  `json:"side" validate:"oneof=LONG SHORT"`
	EntryTime string       `json:"entryTime"`
	ExitTime  string       `json:"exitTime"`
	Entry     models.Field `json:"entry"`
	Exit      models.Field `json:"exit"`
	Size      models.Field `json:"size"`
	Fee       models.Field `json:"fee"`
	Strategy  string       `json:"strategy"`
	Exchange  string       `json:"exchange"`
	Notes     string       `json:"notes"`
}

// normalize applies the form's conventions: uppercase trimmed symbol,
// LONG by default, zero fee when blank, trimmed free text.
func (in TradeInput) normalize() TradeInput {
	in.Symbol = strings.ToUpper(strings.TrimSpace(in.Symbol))
	in.Side = models.Side(strings.ToUpper(strings.TrimSpace(string(in.Side))))
	if in.Side == "" {
		in.Side = models.SideLong
	}
	if strings.TrimSpace(string(in.Fee)) == "" {
		in.Fee = "0"
	}
	in.EntryTime = strings.TrimSpace(in.EntryTime)
	in.ExitTime = strings.TrimSpace(in.ExitTime)
	in.Strategy = strings.TrimSpace(in.Strategy)
	in.Exchange = strings.TrimSpace(in.Exchange)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

func validateInput(v *validator.Validate, in TradeInput) error {
	if err := v.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTrade, err)
	}
	return nil
}

func (in TradeInput) toTrade(id string, createdAt int64) models.Trade {
	return models.Trade{
		ID:        id,
		Symbol:    in.Symbol,
		Side:      in.Side,
		Entry:     in.Entry,
		Exit:      in.Exit,
		Size:      in.Size,
		Fee:       in.Fee,
		EntryTime: in.EntryTime,
		ExitTime:  in.ExitTime,
		Strategy:  in.Strategy,
		Exchange:  in.Exchange,
		Notes:     in.Notes,
		CreatedAt: createdAt,
	}
}
