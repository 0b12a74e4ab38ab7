package journal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"trade-journal-go/internal/analytics"
	"trade-journal-go/internal/config"
	"trade-journal-go/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BlobStore persists the serialized collection under a single key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Recorder observes journal activity, typically for metrics.
type Recorder interface {
	Mutation(op string, trades int)
	ImportFailed()
}

type nopRecorder struct{}

func (nopRecorder) Mutation(string, int) {}
func (nopRecorder) ImportFailed()        {}

// Mutation names used in logs and metrics.
const (
	OpAdd       = "add"
	OpDelete    = "delete"
	OpDuplicate = "duplicate"
	OpClear     = "clear"
	OpImport    = "import"
)

// Service is the single owner of the trade collection. Each mutation goes
// through the store, is persisted wholesale, and is followed by a recompute
// of the summary statistics.
type Service struct {
	logger   *zap.Logger
	blobs    BlobStore
	store    *Store
	validate *validator.Validate
	recorder Recorder

	key           string
	exportVersion int
	loc           *time.Location

	now   func() time.Time
	newID func() string

	mu sync.Mutex // serializes mutate-and-persist
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// NewService creates a service with an empty collection. Call Load to read
// the persisted one.
func NewService(logger *zap.Logger, blobs BlobStore, cfg config.Journal, opts ...Option) *Service {
	s := &Service{
		logger:        logger.Named("journal"),
		blobs:         blobs,
		store:         NewStore(nil),
		validate:      validator.New(),
		recorder:      nopRecorder{},
		key:           cfg.StorageKey,
		exportVersion: cfg.ExportVersion,
		loc:           cfg.Location(),
		now:           time.Now,
		newID:         uuid.NewString,
	}
	if s.key == "" {
		s.key = "ctj_trades_v3"
	}
	if s.exportVersion == 0 {
		s.exportVersion = 3
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted collection. Missing or unreadable data leaves the
// journal empty; it is never fatal.
func (s *Service) Load(ctx context.Context) {
	data, found, err := s.blobs.Get(ctx, s.key)
	switch {
	case err != nil:
		s.logger.Error("Failed to read stored trades, starting empty", zap.String("key", s.key), zap.Error(err))
		s.store.Replace(nil)
		return
	case !found:
		s.logger.Info("No stored trades found, starting empty", zap.String("key", s.key))
		s.store.Replace(nil)
		return
	}

	trades, ok := decodeCollection(data)
	if !ok {
		s.logger.Warn("Stored trades are corrupt, starting empty", zap.String("key", s.key), zap.Int("bytes", len(data)))
		s.store.Replace(nil)
		return
	}
	s.store.Replace(trades)
	s.logger.Info("Loaded trades", zap.Int("count", len(trades)))
}

// Trades returns the full, unfiltered collection in insertion order.
func (s *Service) Trades() []models.Trade {
	return s.store.Get()
}

// Location is the zone used for period grouping.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Add validates form input and appends a new trade.
func (s *Service) Add(ctx context.Context, in TradeInput) (models.Trade, error) {
	in = in.normalize()
	if err := validateInput(s.validate, in); err != nil {
		return models.Trade{}, err
	}
	t := in.toTrade(s.newID(), s.now().UnixMilli())

	err := s.mutate(ctx, OpAdd, func(st *Store) error {
		st.Append(t)
		return nil
	})
	if err != nil {
		return models.Trade{}, err
	}
	return t, nil
}

// Delete removes the trade with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, OpDelete, func(st *Store) error {
		if !st.Remove(id) {
			return fmt.Errorf("%w: %s", ErrTradeNotFound, id)
		}
		return nil
	})
}

// Duplicate appends a copy of the trade with id under a new id and a
// creation time later than the source's. The source record is untouched.
func (s *Service) Duplicate(ctx context.Context, id string) (models.Trade, error) {
	var dup models.Trade
	err := s.mutate(ctx, OpDuplicate, func(st *Store) error {
		src, ok := st.Find(id)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTradeNotFound, id)
		}
		dup = src
		dup.ID = s.newID()
		dup.CreatedAt = max(s.now().UnixMilli(), src.CreatedAt+1)
		st.Append(dup)
		return nil
	})
	if err != nil {
		return models.Trade{}, err
	}
	return dup, nil
}

// Clear removes every trade.
func (s *Service) Clear(ctx context.Context) error {
	return s.mutate(ctx, OpClear, func(st *Store) error {
		st.Replace(nil)
		return nil
	})
}

// Export snapshots the collection as a document.
func (s *Service) Export() Document {
	return NewDocument(s.exportVersion, s.now(), s.store.Get())
}

// Import parses data as a document and replaces the whole collection with
// its trades. On failure the current collection is kept.
func (s *Service) Import(ctx context.Context, data []byte) (int, error) {
	doc, err := DecodeDocument(data)
	if err != nil {
		s.recorder.ImportFailed()
		s.logger.Warn("Import rejected", zap.Error(err))
		return 0, err
	}
	if err := s.ImportDocument(ctx, doc); err != nil {
		return 0, err
	}
	return len(doc.Trades), nil
}

// ImportDocument replaces the collection with doc's trades.
func (s *Service) ImportDocument(ctx context.Context, doc Document) error {
	if doc.Trades == nil {
		s.recorder.ImportFailed()
		return fmt.Errorf("%w: trades must be an array", ErrInvalidDocument)
	}
	err := s.mutate(ctx, OpImport, func(st *Store) error {
		st.Replace(doc.Trades)
		return nil
	})
	if err != nil {
		s.recorder.ImportFailed()
	}
	return err
}

// Stats recomputes summary statistics over the unfiltered collection.
func (s *Service) Stats() analytics.Stats {
	return analytics.ComputeStats(s.store.Get())
}

// View returns the filtered table rows, newest first, with derived metrics.
func (s *Service) View(f Filter) []analytics.Derived {
	list := Apply(s.store.Get(), f)
	rows := make([]analytics.Derived, len(list))
	for i, t := range list {
		rows[i] = analytics.Derive(t)
	}
	return rows
}

// Equity builds the equity chart series.
func (s *Service) Equity(mode analytics.EquityMode) analytics.Series {
	return analytics.BuildEquitySeries(s.store.Get(), mode)
}

// Period builds the day/week chart series.
func (s *Service) Period(mode analytics.GroupMode, metric analytics.Metric) analytics.PeriodSeries {
	return analytics.BuildPeriodSeries(s.store.Get(), mode, metric, s.loc)
}

// Sides counts LONG and SHORT trades.
func (s *Service) Sides() analytics.SideCounts {
	return analytics.CountSides(s.store.Get())
}

// mutate applies fn, persists the result and recomputes statistics. If fn
// or persisting fails the previous collection is restored.
func (s *Service) mutate(ctx context.Context, op string, fn func(*Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.store.Get()
	if err := fn(s.store); err != nil {
		s.store.Replace(prev)
		return err
	}

	next := s.store.Get()
	if err := s.persist(ctx, next); err != nil {
		s.store.Replace(prev)
		s.logger.Error("Failed to persist trades, change reverted", zap.String("op", op), zap.Error(err))
		return err
	}

	stats := analytics.ComputeStats(next)
	s.recorder.Mutation(op, len(next))
	s.logger.Info("Journal updated",
		zap.String("op", op),
		zap.Int("trades", len(next)),
		zap.Int("computed_trades", stats.TradesCount),
		zap.Float64("total_pnl", stats.TotalPnL),
		zap.Float64("win_rate", stats.WinRate),
	)
	return nil
}

func (s *Service) persist(ctx context.Context, trades []models.Trade) error {
	data, err := encodeCollection(trades)
	if err != nil {
		return fmt.Errorf("could not encode trades: %w", err)
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("could not save trades: %w", err)
	}
	return nil
}
