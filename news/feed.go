package news

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Feed holds the articles of the most recent search. Nothing is persisted.
type Feed struct {
	mu       sync.Mutex
	provider Provider
	log      *zap.Logger
	articles []Article
	query    string
	loading  int
}

func NewFeed(p Provider, log *zap.Logger) *Feed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{provider: p, log: log}
}

// Search replaces the article list with the provider's results for query.
// On failure the previous list is kept.
func (f *Feed) Search(ctx context.Context, query string) ([]Article, error) {
	f.mu.Lock()
	f.loading++
	f.mu.Unlock()

	articles, err := f.provider.Articles(ctx, query)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading--
	if err != nil {
		f.log.Warn("news search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("search news %q: %w", query, err)
	}

	f.articles = append([]Article(nil), articles...)
	f.query = query
	f.log.Debug("news search", zap.String("query", query), zap.Int("articles", len(articles)))
	return append([]Article(nil), f.articles...), nil
}

// Loading is true while a Search is in flight.
func (f *Feed) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading > 0
}

// Articles returns the current list.
func (f *Feed) Articles() []Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Article, len(f.articles))
	copy(out, f.articles)
	return out
}

// Query is the query that produced the current list.
func (f *Feed) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}
