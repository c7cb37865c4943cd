package news

import (
	"context"
	"time"
)

// Provider fetches articles matching query.
type Provider interface {
	Articles(ctx context.Context, query string) ([]Article, error)
}

// MockProvider waits Delay and returns the same four headlines for every
// query, published one to four hours before Now.
type MockProvider struct {
	Delay time.Duration
	Now   func() time.Time
}

func NewMockProvider(delay time.Duration) *MockProvider {
	return &MockProvider{Delay: delay, Now: time.Now}
}

func (m *MockProvider) Articles(ctx context.Context, _ string) ([]Article, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	now := time.Now()
	if m.Now != nil {
		now = m.Now()
	}

	return []Article{
		newArticle("Bloomberg",
			"Powell Signals Fed Prepared to Move Faster on Inflation",
			"Federal Reserve Chair Jerome Powell signaled the U.S. central bank is prepared to raise interest rates in half-percentage point steps if necessary...",
			"https://bloomberg.com", now.Add(-1*time.Hour)),
		newArticle("Reuters",
			"Oil prices drop on demand concerns as China lockdowns bite",
			"Oil prices fell on Tuesday, on concerns that new COVID-19 lockdowns in China will hit demand, but the downside was capped by a tighter market as the European Union weighs a ban on Russian oil.",
			"https://reuters.com", now.Add(-2*time.Hour)),
		newArticle("Associated Press",
			"Stocks rally as tech giants lead the way",
			"A broad rally on Wall Street pushed stocks higher Thursday, as the market clawed back more of the ground it lost in a miserable few weeks of trading.",
			"https://apnews.com", now.Add(-3*time.Hour)),
		newArticle("The Wall Street Journal",
			"U.S. Inflation Hit 8.5% in March, Highest Since 1981",
			"The consumer-price index's rise to a new four-decade high is putting pressure on the Federal Reserve to raise interest rates even more aggressively.",
			"https://wsj.com", now.Add(-4*time.Hour)),
	}, nil
}
