package news

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type providerFunc func(ctx context.Context, query string) ([]Article, error)

func (f providerFunc) Articles(ctx context.Context, q string) ([]Article, error) { return f(ctx, q) }

func TestMockProviderIgnoresQuery(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	p := &MockProvider{Now: func() time.Time { return now }}

	a, err := p.Articles(context.Background(), "FOMC")
	require.NoError(t, err)
	b, err := p.Articles(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, a, 4)
	require.Len(t, b, 4)
	for i := range a {
		assert.Equal(t, a[i].Title, b[i].Title)
		assert.Equal(t, now.Add(-time.Duration(i+1)*time.Hour), a[i].PublishedAt)
	}
	assert.Equal(t, "Bloomberg", a[0].Source)
	assert.Equal(t, "https://wsj.com", a[3].URL)
	assert.NotEqual(t, a[0].ID, b[0].ID)
}

func TestMockProviderCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockProvider(time.Hour).Articles(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFeedSearchReplacesArticles(t *testing.T) {
	t.Parallel()

	calls := 0
	f := NewFeed(providerFunc(func(_ context.Context, q string) ([]Article, error) {
		calls++
		return []Article{{Title: q}}, nil
	}), nil)

	assert.Empty(t, f.Articles())

	_, err := f.Search(context.Background(), "first")
	require.NoError(t, err)
	got, err := f.Search(context.Background(), "second")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].Title)
	assert.Equal(t, got, f.Articles())
	assert.Equal(t, "second", f.Query())
	assert.Equal(t, 2, calls)
}

func TestFeedLoadingFlag(t *testing.T) {
	t.Parallel()

	var f *Feed
	var during bool
	f = NewFeed(providerFunc(func(context.Context, string) ([]Article, error) {
		during = f.Loading()
		return nil, nil
	}), nil)

	assert.False(t, f.Loading())
	_, err := f.Search(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, during)
	assert.False(t, f.Loading())
}

func TestFeedSearchFailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	fail := false
	boom := errors.New("offline")
	f := NewFeed(providerFunc(func(context.Context, string) ([]Article, error) {
		if fail {
			return nil, boom
		}
		return []Article{{Title: "kept"}}, nil
	}), nil)

	_, err := f.Search(context.Background(), "a")
	require.NoError(t, err)

	fail = true
	_, err = f.Search(context.Background(), "b")
	assert.ErrorIs(t, err, boom)
	assert.False(t, f.Loading())
	require.Len(t, f.Articles(), 1)
	assert.Equal(t, "kept", f.Articles()[0].Title)
	assert.Equal(t, "a", f.Query())
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Market Sentiment", "Geopolitics", "FOMC", "Inflation", "Crypto"}, Suggestions())
}
