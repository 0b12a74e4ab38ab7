package journal

import (
	"slices"
	"sync"

	"trade-journal-go/internal/models"
)

// Store owns the in-memory trade collection. Every mutation replaces the
// backing slice, so a slice returned by Get is never modified afterwards.
type Store struct {
	mu     sync.RWMutex
	trades []models.Trade
}

// NewStore creates a store holding a copy of trades.
func NewStore(trades []models.Trade) *Store {
	return &Store{trades: slices.Clone(trades)}
}

// Get returns the current collection in insertion order. Callers must not
// modify it.
func (s *Store) Get() []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trades
}

// Find returns the trade with id.
func (s *Store) Find(id string) (models.Trade, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.trades {
		if t.ID == id {
			return t, true
		}
	}
	return models.Trade{}, false
}

// Len returns the number of trades.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}

// Replace swaps the whole collection.
func (s *Store) Replace(trades []models.Trade) {
	next := slices.Clone(trades)
	s.mu.Lock()
	s.trades = next
	s.mu.Unlock()
}

// Append adds t at the end.
func (s *Store) Append(t models.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Trade, len(s.trades), len(s.trades)+1)
	copy(next, s.trades)
	s.trades = append(next, t)
}

// Remove deletes every trade with id and reports whether any was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Trade, 0, len(s.trades))
	for _, t := range s.trades {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(s.trades) {
		return false
	}
	s.trades = next
	return true
}
