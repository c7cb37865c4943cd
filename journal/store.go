package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/futureslog/kv"
	"github.com/rustyeddy/futureslog/slot"
)

// SlotKey is the kv slot holding the encoded trade list.
const SlotKey = "SavedTrades"

var (
	// ErrTradeNotFound is returned when no trade carries the requested id.
	ErrTradeNotFound = errors.New("trade not found")
	// ErrInvalidTrade is returned for trades holding an outcome, emotion or
	// session outside the known values.
	ErrInvalidTrade = errors.New("invalid trade")
)

// ChangeKind identifies the mutation reported to subscribers.
type ChangeKind int

const (
	Added ChangeKind = iota
	Updated
	Deleted
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Deleted:
		return "deleted"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Change is delivered to subscribers after a mutation has been persisted.
type Change struct {
	Kind  ChangeKind
	Trade Trade
}

type Option func(*TradeStore)

func WithLogger(l *zap.Logger) Option {
	return func(s *TradeStore) { s.log = l }
}

// WithClock overrides time.Now for TodaysTrades.
func WithClock(now func() time.Time) Option {
	return func(s *TradeStore) { s.now = now }
}

// WithLocation sets the calendar used to decide which trades are "today".
func WithLocation(loc *time.Location) Option {
	return func(s *TradeStore) { s.loc = loc }
}

// TradeStore owns the ordered list of trades, newest first. Every mutation
// rewrites the whole list to its kv slot.
type TradeStore struct {
	mu       sync.Mutex
	kv       kv.Store
	log      *zap.Logger
	now      func() time.Time
	loc      *time.Location
	trades   []Trade
	filtered []Trade
	query    Query
	status   slot.Status

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Open loads the saved trade list from store. A missing slot starts an empty
// journal. A corrupt slot also starts empty, is logged, and is reported by
// LoadStatus; it is overwritten by the next mutation. Only storage failures
// are returned as errors.
func Open(ctx context.Context, store kv.Store, opts ...Option) (*TradeStore, error) {
	s := &TradeStore{
		kv:   store,
		log:  zap.NewNop(),
		now:  time.Now,
		loc:  time.Local,
		subs: make(map[int]func(Change)),
	}
	for _, opt := range opts {
		opt(s)
	}

	trades, status, err := slot.Load[[]Trade](ctx, store, SlotKey)
	switch {
	case errors.Is(err, slot.ErrCorrupt):
		s.log.Warn("saved trades are unreadable, starting empty", zap.Error(err))
	case err != nil:
		return nil, fmt.Errorf("open trade store: %w", err)
	}

	s.status = status
	s.trades = trades
	s.filtered = cloneAll(trades)
	s.log.Debug("trade store opened", zap.Stringer("status", status), zap.Int("trades", len(trades)))
	return s, nil
}

// LoadStatus reports what Open found in the slot.
func (s *TradeStore) LoadStatus() slot.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Add inserts t at the front of the journal. Ids are not checked for
// uniqueness. Unknown enum values are rejected with ErrInvalidTrade.
func (s *TradeStore) Add(ctx context.Context, t Trade) error {
	if err := t.validate(); err != nil {
		return fmt.Errorf("add trade %s: %w", t.ID, err)
	}
	t = t.clone()

	s.mu.Lock()
	prev := s.trades
	s.trades = append([]Trade{t}, s.trades...)
	if err := s.persistLocked(ctx); err != nil {
		s.trades = prev
		s.mu.Unlock()
		return fmt.Errorf("add trade %s: %w", t.ID, err)
	}
	s.mu.Unlock()

	s.notify(Change{Kind: Added, Trade: t.clone()})
	return nil
}

// Update replaces the first trade with the same id, keeping its position.
// An unknown id leaves the journal untouched and returns ErrTradeNotFound.
func (s *TradeStore) Update(ctx context.Context, t Trade) error {
	if err := t.validate(); err != nil {
		return fmt.Errorf("update trade %s: %w", t.ID, err)
	}
	t = t.clone()

	s.mu.Lock()
	i := s.indexLocked(t.ID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("update trade %s: %w", t.ID, ErrTradeNotFound)
	}
	old := s.trades[i]
	s.trades[i] = t
	if err := s.persistLocked(ctx); err != nil {
		s.trades[i] = old
		s.mu.Unlock()
		return fmt.Errorf("update trade %s: %w", t.ID, err)
	}
	s.mu.Unlock()

	s.notify(Change{Kind: Updated, Trade: t.clone()})
	return nil
}

// Delete removes every trade with the given id. Deleting an unknown id is
// not an error.
func (s *TradeStore) Delete(ctx context.Context, tradeID string) error {
	s.mu.Lock()
	prev := s.trades
	kept := make([]Trade, 0, len(prev))
	var removed []Trade
	for _, t := range prev {
		if t.ID == tradeID {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	s.trades = kept
	if err := s.persistLocked(ctx); err != nil {
		s.trades = prev
		s.mu.Unlock()
		return fmt.Errorf("delete trade %s: %w", tradeID, err)
	}
	s.mu.Unlock()

	for _, t := range removed {
		s.notify(Change{Kind: Deleted, Trade: t.clone()})
	}
	return nil
}

// Get returns the first trade with the given id.
func (s *TradeStore) Get(tradeID string) (Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(tradeID)
	if i < 0 {
		return Trade{}, fmt.Errorf("get trade %s: %w", tradeID, ErrTradeNotFound)
	}
	return s.trades[i].clone(), nil
}

// Trades returns a copy of the journal, newest first.
func (s *TradeStore) Trades() []Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.trades)
}

// Subscribe registers fn to receive every persisted change. fn runs on the
// goroutine that made the change, after the store lock is released. The
// returned func removes the subscription.
func (s *TradeStore) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *TradeStore) notify(c Change) {
	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// persistLocked writes the list and refreshes the derived view. s.mu must be
// held.
func (s *TradeStore) persistLocked(ctx context.Context) error {
	if err := slot.Save(ctx, s.kv, SlotKey, s.trades); err != nil {
		s.log.Error("persist trades", zap.Error(err), zap.Int("trades", len(s.trades)))
		return err
	}
	s.filtered = s.query.apply(s.trades)
	return nil
}

func (s *TradeStore) indexLocked(tradeID string) int {
	for i := range s.trades {
		if s.trades[i].ID == tradeID {
			return i
		}
	}
	return -1
}

func cloneAll(in []Trade) []Trade {
	out := make([]Trade, len(in))
	for i := range in {
		out[i] = in[i].clone()
	}
	return out
}
