package journal

import "errors"

var (
	// ErrTradeNotFound is returned when an id is not in the collection.
	ErrTradeNotFound = errors.New("trade not found")
	// ErrInvalidDocument is returned when an import document cannot be used.
	ErrInvalidDocument = errors.New("invalid journal document")
	// ErrInvalidTrade is returned when form input fails validation.
	ErrInvalidTrade = errors.New("invalid trade")
)
