package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/futureslog/config"
	"github.com/rustyeddy/futureslog/internal/app"
	"github.com/rustyeddy/futureslog/logger"
)

var rootCmd = &cobra.Command{
	Use:   "futureslog",
	Short: "A futures trading journal",
	Long: `futureslog keeps a journal of your futures trades.

It provides tools for:
  - Logging trades with outcome, rating, emotion, session, tags and notes
  - Searching and filtering the journal, today's trades, win/loss counts
  - Chatting with the TradeAI buddy
  - Browsing market news
  - Backing up and restoring the journal
  - Serving the journal as a JSON API for the mobile app`,
	SilenceUsage: true,
}

var (
	cfgFile string
	dbPath  string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
}

// loadConfig reads the config file and environment, then applies --db.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.Driver = "sqlite"
		cfg.Storage.DBPath = dbPath
	}
	return cfg, nil
}

func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return a, nil
}
