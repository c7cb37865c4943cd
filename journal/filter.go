package journal

import (
	"strings"

	"golang.org/x/text/cases"
)

// Query narrows the journal. Zero fields match everything.
type Query struct {
	Text    string  // case-insensitive substring of title, ticker, reflection or any tag
	Session Session // exact match when set
	Outcome Outcome // exact match when set
}

func (q Query) apply(trades []Trade) []Trade {
	fold := cases.Fold()
	needle := fold.String(q.Text)

	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if q.Session != "" && t.Session != q.Session {
			continue
		}
		if q.Outcome != "" && t.Outcome != q.Outcome {
			continue
		}
		if needle != "" && !matchesText(fold, t, needle) {
			continue
		}
		out = append(out, t.clone())
	}
	return out
}

func matchesText(fold cases.Caser, t Trade, needle string) bool {
	contains := func(s string) bool {
		return strings.Contains(fold.String(s), needle)
	}
	if contains(t.Title) || contains(t.Ticker) || contains(t.Reflection) {
		return true
	}
	for _, tag := range t.Tags {
		if contains(tag) {
			return true
		}
	}
	return false
}

// Filter recomputes the derived view from q, replacing the previous one, and
// returns it. The query is kept and re-applied after every mutation.
func (s *TradeStore) Filter(q Query) []Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = q
	s.filtered = q.apply(s.trades)
	return cloneAll(s.filtered)
}

// Filtered returns the current derived view.
func (s *TradeStore) Filtered() []Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.filtered)
}
