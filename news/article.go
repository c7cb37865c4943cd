// Package news backs the search tab: a feed of market headlines fetched from
// a pluggable Provider.
package news

import (
	"time"

	"github.com/google/uuid"
)

type Article struct {
	ID          string    `json:"id"`
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
}

var suggestions = []string{"Market Sentiment", "Geopolitics", "FOMC", "Inflation", "Crypto"}

// Suggestions are the topic chips shown under the search box.
func Suggestions() []string {
	return append([]string(nil), suggestions...)
}

func newArticle(source, title, description, url string, published time.Time) Article {
	return Article{
		ID:          uuid.NewString(),
		Source:      source,
		Title:       title,
		Description: description,
		URL:         url,
		PublishedAt: published,
	}
}
