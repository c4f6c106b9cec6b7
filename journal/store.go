package journal

import (
	"fmt"
	"sync"

	"github.com/rustyeddy/fxjournal/pkg/id"
	"github.com/rustyeddy/fxjournal/storage"
	"go.uber.org/zap"
)

// Store is the ordered trade collection. Every mutation writes the whole
// collection back to storage before it becomes visible.
type Store struct {
	mu      sync.Mutex
	st      storage.Storage
	log     *zap.Logger
	newID   func() string
	records []TradeRecord
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithIDFunc replaces the ULID generator, mostly for tests.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Open loads the collection saved under storage.KeyTrades. Records saved
// without an id, or with an id already taken, get a fresh one.
func Open(st storage.Storage, opts ...Option) (*Store, error) {
	s := &Store{st: st, log: zap.NewNop(), newID: id.New}
	for _, o := range opts {
		o(s)
	}

	var recs []TradeRecord
	if _, err := storage.LoadJSON(st, storage.KeyTrades, &recs); err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}

	seen := make(map[string]bool, len(recs))
	repaired := 0
	for i := range recs {
		if recs[i].ID == "" || seen[recs[i].ID] {
			recs[i].ID = s.freshID(seen)
			repaired++
		}
		seen[recs[i].ID] = true
	}
	s.records = recs

	if repaired > 0 {
		s.log.Warn("assigned ids to stored trades", zap.Int("count", repaired))
		if err := s.persist(recs); err != nil {
			return nil, err
		}
	}

	s.log.Debug("trades loaded", zap.Int("count", len(recs)))
	return s, nil
}

func (s *Store) freshID(taken map[string]bool) string {
	for {
		v := s.newID()
		if !taken[v] {
			return v
		}
	}
}

func (s *Store) persist(recs []TradeRecord) error {
	if recs == nil {
		recs = []TradeRecord{}
	}
	if err := storage.SaveJSON(s.st, storage.KeyTrades, recs); err != nil {
		return fmt.Errorf("persist trades: %w", err)
	}
	return nil
}

func (s *Store) index(tradeID string) int {
	for i, r := range s.records {
		if r.ID == tradeID {
			return i
		}
	}
	return -1
}

// Create stores rec under a fresh id and returns the stored copy.
func (s *Store) Create(rec TradeRecord) (TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	taken := make(map[string]bool, len(s.records))
	for _, r := range s.records {
		taken[r.ID] = true
	}
	rec.ID = s.freshID(taken)

	next := append(s.clone(), rec)
	if err := s.persist(next); err != nil {
		return TradeRecord{}, err
	}
	s.records = next

	s.log.Info("trade created", zap.String("id", rec.ID), zap.String("pair", rec.Pair))
	return rec, nil
}

// Update replaces the record with id tradeID by rec, keeping the id. It
// reports false and writes nothing when no such record exists.
func (s *Store) Update(tradeID string, rec TradeRecord) (bool, error) {
	return s.mutate(tradeID, func(TradeRecord) TradeRecord { return rec })
}

// Patch changes only the fields set in p. An empty patch writes nothing.
func (s *Store) Patch(tradeID string, p TradePatch) (bool, error) {
	if p.Empty() {
		_, ok := s.Get(tradeID)
		return ok, nil
	}
	return s.mutate(tradeID, p.Apply)
}

func (s *Store) mutate(tradeID string, fn func(TradeRecord) TradeRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(tradeID)
	if i < 0 {
		s.log.Debug("update of unknown trade ignored", zap.String("id", tradeID))
		return false, nil
	}

	next := s.clone()
	rec := fn(next[i])
	rec.ID = tradeID
	next[i] = rec

	if err := s.persist(next); err != nil {
		return false, err
	}
	s.records = next

	s.log.Info("trade updated", zap.String("id", tradeID))
	return true, nil
}

// Delete removes the record with id tradeID. Unknown ids are a no-op.
func (s *Store) Delete(tradeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(tradeID)
	if i < 0 {
		s.log.Debug("delete of unknown trade ignored", zap.String("id", tradeID))
		return false, nil
	}

	next := make([]TradeRecord, 0, len(s.records)-1)
	next = append(next, s.records[:i]...)
	next = append(next, s.records[i+1:]...)

	if err := s.persist(next); err != nil {
		return false, err
	}
	s.records = next

	s.log.Info("trade deleted", zap.String("id", tradeID))
	return true, nil
}

func (s *Store) Get(tradeID string) (TradeRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(tradeID); i >= 0 {
		return s.records[i], true
	}
	return TradeRecord{}, false
}

// List returns the collection in insertion order.
func (s *Store) List() []TradeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clone()
}

// Len returns the number of stored trades.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

func (s *Store) clone() []TradeRecord {
	out := make([]TradeRecord, len(s.records))
	copy(out, s.records)
	return out
}

// NewestFirst returns records in reverse insertion order, for display.
func NewestFirst(recs []TradeRecord) []TradeRecord {
	out := make([]TradeRecord, len(recs))
	for i, r := range recs {
		out[len(recs)-1-i] = r
	}
	return out
}
