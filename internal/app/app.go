// Package app assembles the stores from configuration.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/futureslog/chat"
	"github.com/rustyeddy/futureslog/config"
	"github.com/rustyeddy/futureslog/journal"
	"github.com/rustyeddy/futureslog/kv"
	"github.com/rustyeddy/futureslog/news"
	"github.com/rustyeddy/futureslog/slot"
)

type App struct {
	Config *config.Config
	Log    *zap.Logger
	KV     kv.Store
	Trades *journal.TradeStore
	Chat   *chat.ConversationStore
	News   *news.Feed

	unsubscribe func()
}

// OpenKV opens the slot store selected by cfg.
func OpenKV(cfg config.StorageConfig) (kv.Store, error) {
	switch cfg.Driver {
	case "memory":
		return kv.NewMemory(), nil
	case "sqlite":
		return kv.NewSQLite(cfg.DBPath)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// New opens storage and loads the trade journal and the conversation.
// Unreadable saved data is logged and replaced by an empty list.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	replyDelay, err := cfg.Chat.ReplyDelayDuration()
	if err != nil {
		return nil, fmt.Errorf("chat reply delay: %w", err)
	}
	searchDelay, err := cfg.News.SearchDelayDuration()
	if err != nil {
		return nil, fmt.Errorf("news search delay: %w", err)
	}

	store, err := OpenKV(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	trades, err := journal.Open(ctx, store, journal.WithLogger(log.Named("journal")))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	conv, err := chat.Open(ctx, store,
		chat.WithLogger(log.Named("chat")),
		chat.WithResponder(chat.NewCannedResponder(replyDelay)),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	if cfg.AI.APIKey == "" {
		log.Debug("no AI API key configured, buddy replies are canned")
	}

	a := &App{
		Config: cfg,
		Log:    log,
		KV:     store,
		Trades: trades,
		Chat:   conv,
		News:   news.NewFeed(news.NewMockProvider(searchDelay), log.Named("news")),
	}

	jlog := log.Named("journal")
	a.unsubscribe = trades.Subscribe(func(c journal.Change) {
		jlog.Debug("trade "+c.Kind.String(), zap.String("id", c.Trade.ID), zap.String("ticker", c.Trade.Ticker))
	})

	for name, status := range map[string]slot.Status{
		journal.SlotKey: trades.LoadStatus(),
		chat.SlotKey:    conv.LoadStatus(),
	} {
		if status == slot.Corrupt {
			log.Warn("slot was corrupt and has been reset", zap.String("slot", name))
		}
	}

	return a, nil
}

// WarmNews runs the default empty-query search in the background so the feed
// has headlines before the first client asks. Failures are logged by the feed.
func (a *App) WarmNews(ctx context.Context) {
	go func() {
		_, _ = a.News.Search(ctx, "")
	}()
}

func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	// Sync on a terminal stderr reports EINVAL; nothing useful to do with it.
	_ = a.Log.Sync()
	return a.KV.Close()
}
