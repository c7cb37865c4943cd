package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/futureslog/kv"
	"github.com/rustyeddy/futureslog/slot"
)

func newTestStore(t *testing.T, opts ...Option) (*TradeStore, *kv.Memory) {
	t.Helper()

	mem := kv.NewMemory()
	s, err := Open(context.Background(), mem, opts...)
	require.NoError(t, err)
	return s, mem
}

func sampleTrade(id, title string, outcome Outcome) Trade {
	return Trade{
		ID:         id,
		Title:      title,
		Date:       time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
		Ticker:     "ES",
		Outcome:    outcome,
		Rating:     4,
		Reflection: "waited for the retest",
		Tags:       []string{"orb", "orb"},
		ImageURLs:  []string{"https://example.com/shot.png"},
		Emotion:    EmotionPatient,
		Session:    SessionNewYork,
	}
}

type brokenKV struct {
	*kv.Memory
	putErr error
}

func (b *brokenKV) Put(ctx context.Context, key string, value []byte) error {
	if b.putErr != nil {
		return b.putErr
	}
	return b.Memory.Put(ctx, key, value)
}

func TestOpenEmpty(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	assert.Equal(t, slot.Missing, s.LoadStatus())
	assert.Empty(t, s.Trades())
	assert.Empty(t, s.Filtered())
}

func TestOpenCorruptStartsEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Put(ctx, SlotKey, []byte(`{not json`)))

	s, err := Open(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, slot.Corrupt, s.LoadStatus())
	assert.Empty(t, s.Trades())

	// the next mutation repairs the slot
	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))
	reopened, err := Open(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, slot.Found, reopened.LoadStatus())
	assert.Len(t, reopened.Trades(), 1)
}

func TestOpenUnknownEnumIsCorrupt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Put(ctx, SlotKey, []byte(`[{"id":"a","outcome":"jackpot"}]`)))

	s, err := Open(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, slot.Corrupt, s.LoadStatus())
}

func TestAddInsertsAtFront(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))
	require.NoError(t, s.Add(ctx, sampleTrade("b", "second", OutcomeLoss)))

	trades := s.Trades()
	require.Len(t, trades, 2)
	assert.Equal(t, "b", trades[0].ID)
	assert.Equal(t, "a", trades[1].ID)
}

func TestAddAllowsDuplicateIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))
	require.NoError(t, s.Add(ctx, sampleTrade("a", "again", OutcomeWin)))
	assert.Len(t, s.Trades(), 2)

	// delete removes every copy
	require.NoError(t, s.Delete(ctx, "a"))
	assert.Empty(t, s.Trades())
}

func TestUpdateReplacesInPlace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(ctx, sampleTrade(id, id, OutcomeNeutral)))
	}

	edited := sampleTrade("b", "edited", OutcomeWin)
	edited.Tags = []string{"revenge"}
	require.NoError(t, s.Update(ctx, edited))

	trades := s.Trades()
	require.Len(t, trades, 3)
	assert.Equal(t, []string{"c", "b", "a"}, ids(trades))
	assert.Equal(t, edited, trades[1])
}

func TestUpdateMissingLeavesJournal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mem := newTestStore(t)
	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))
	before, err := mem.Get(ctx, SlotKey)
	require.NoError(t, err)

	err = s.Update(ctx, sampleTrade("zzz", "ghost", OutcomeLoss))
	assert.ErrorIs(t, err, ErrTradeNotFound)
	assert.Equal(t, []string{"a"}, ids(s.Trades()))

	after, err := mem.Get(ctx, SlotKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))

	require.NoError(t, s.Delete(ctx, "nope"))
	assert.Equal(t, []string{"a"}, ids(s.Trades()))
}

func TestPersistRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mem := newTestStore(t)

	a := sampleTrade("a", "first", OutcomeWin)
	b := sampleTrade("b", "second", OutcomeBreakeven)
	b.Session = SessionLondon
	b.Emotion = EmotionFOMO
	b.Tags = nil
	b.ImageURLs = nil
	require.NoError(t, s.Add(ctx, a))
	require.NoError(t, s.Add(ctx, b))

	reopened, err := Open(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, slot.Found, reopened.LoadStatus())
	assert.Equal(t, s.Trades(), reopened.Trades())
	assert.Equal(t, reopened.Trades(), reopened.Filtered())
}

func TestBareTradeSurvivesReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, mem := newTestStore(t)

	require.NoError(t, s.Add(ctx, sampleTrade("keep", "first", OutcomeWin)))
	require.NoError(t, s.Add(ctx, Trade{ID: "bare"}))

	reopened, err := Open(ctx, mem)
	require.NoError(t, err)
	assert.Equal(t, slot.Found, reopened.LoadStatus())
	assert.Equal(t, s.Trades(), reopened.Trades())

	require.NoError(t, reopened.Add(ctx, sampleTrade("new", "third", OutcomeLoss)))
	again, err := Open(ctx, mem)
	require.NoError(t, err)
	ids := make([]string, 0, 3)
	for _, tr := range again.Trades() {
		ids = append(ids, tr.ID)
	}
	assert.Equal(t, []string{"new", "bare", "keep"}, ids)
}

func TestInvalidEnumRejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mut  func(*Trade)
	}{
		{"outcome", func(tr *Trade) { tr.Outcome = "jackpot" }},
		{"outcome casing", func(tr *Trade) { tr.Outcome = "Win" }},
		{"emotion", func(tr *Trade) { tr.Emotion = "giddy" }},
		{"session", func(tr *Trade) { tr.Session = "Sydney" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, mem := newTestStore(t)
			require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))

			bad := sampleTrade("b", "second", OutcomeLoss)
			tt.mut(&bad)
			assert.ErrorIs(t, s.Add(ctx, bad), ErrInvalidTrade)

			bad.ID = "a"
			assert.ErrorIs(t, s.Update(ctx, bad), ErrInvalidTrade)

			require.Len(t, s.Trades(), 1)
			assert.Equal(t, "first", s.Trades()[0].Title)

			reopened, err := Open(ctx, mem)
			require.NoError(t, err)
			assert.Equal(t, slot.Found, reopened.LoadStatus())
			assert.Equal(t, s.Trades(), reopened.Trades())
		})
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &brokenKV{Memory: kv.NewMemory()}
	s, err := Open(ctx, store)
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))

	boom := errors.New("disk full")
	store.putErr = boom

	assert.ErrorIs(t, s.Add(ctx, sampleTrade("b", "second", OutcomeWin)), boom)
	assert.ErrorIs(t, s.Update(ctx, sampleTrade("a", "edited", OutcomeLoss)), boom)
	assert.ErrorIs(t, s.Delete(ctx, "a"), boom)

	trades := s.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, "first", trades[0].Title)
	assert.Equal(t, OutcomeWin, trades[0].Outcome)
}

func TestTradesReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))

	got := s.Trades()
	got[0].Title = "mutated"
	got[0].Tags[0] = "mutated"

	again, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "first", again.Title)
	assert.Equal(t, "orb", again.Tags[0])
}

func TestGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))

	got, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)

	_, err = s.Get("b")
	assert.ErrorIs(t, err, ErrTradeNotFound)
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)

	var got []Change
	unsubscribe := s.Subscribe(func(c Change) { got = append(got, c) })

	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))
	require.NoError(t, s.Update(ctx, sampleTrade("a", "edited", OutcomeWin)))
	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))

	require.Len(t, got, 3)
	assert.Equal(t, Added, got[0].Kind)
	assert.Equal(t, Updated, got[1].Kind)
	assert.Equal(t, "edited", got[1].Trade.Title)
	assert.Equal(t, Deleted, got[2].Kind)

	unsubscribe()
	require.NoError(t, s.Add(ctx, sampleTrade("b", "second", OutcomeWin)))
	assert.Len(t, got, 3)
}

func TestSubscriberMayReadStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newTestStore(t)

	var seen int
	s.Subscribe(func(Change) { seen = len(s.Trades()) })

	require.NoError(t, s.Add(ctx, sampleTrade("a", "first", OutcomeWin)))
	assert.Equal(t, 1, seen)
}

func TestChangeKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "updated", Updated.String())
	assert.Equal(t, "deleted", Deleted.String())
	assert.Equal(t, "ChangeKind(7)", ChangeKind(7).String())
}

func ids(trades []Trade) []string {
	out := make([]string, len(trades))
	for i, t := range trades {
		out[i] = t.ID
	}
	return out
}
