package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. FUTURESLOG_STORAGE_DB_PATH.
const EnvPrefix = "FUTURESLOG"

// Config is the complete application configuration.
type Config struct {
	Storage StorageConfig `json:"storage" yaml:"storage" mapstructure:"storage"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	AI      AIConfig      `json:"ai" yaml:"ai" mapstructure:"ai"`
	Chat    ChatConfig    `json:"chat" yaml:"chat" mapstructure:"chat"`
	News    NewsConfig    `json:"news" yaml:"news" mapstructure:"news"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}

// StorageConfig selects where the journal slots live.
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver" mapstructure:"driver"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`
}

// LogConfig defines the logger options.
type LogConfig struct {
	Level       string `json:"level" yaml:"level" mapstructure:"level"`                                       // debug, info, warn, error
	Format      string `json:"format" yaml:"format" mapstructure:"format"`                                    // json or console
	OutputFile  string `json:"output_file,omitempty" yaml:"output_file,omitempty" mapstructure:"output_file"` // optional rotated log file
	Environment string `json:"environment" yaml:"environment" mapstructure:"environment"`                     // dev or prod
}

// AIConfig holds the assistant credentials. The key is loaded but not yet
// used for any outbound call.
type AIConfig struct {
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

type ChatConfig struct {
	ReplyDelay string `json:"reply_delay" yaml:"reply_delay" mapstructure:"reply_delay"` // e.g. "1s"
}

type NewsConfig struct {
	SearchDelay string `json:"search_delay" yaml:"search_delay" mapstructure:"search_delay"`
}

type ServerConfig struct {
	Addr     string `json:"addr" yaml:"addr" mapstructure:"addr"`
	ChatRate string `json:"chat_rate,omitempty" yaml:"chat_rate,omitempty" mapstructure:"chat_rate"` // e.g. "30-M"; empty disables limiting
}

// ReplyDelayDuration parses ReplyDelay; empty means no delay.
func (c ChatConfig) ReplyDelayDuration() (time.Duration, error) {
	return parseDelay(c.ReplyDelay)
}

// SearchDelayDuration parses SearchDelay; empty means no delay.
func (c NewsConfig) SearchDelayDuration() (time.Duration, error) {
	return parseDelay(c.SearchDelay)
}

// ChatRateLimit parses ChatRate. ok is false when limiting is disabled.
func (c ServerConfig) ChatRateLimit() (rate limiter.Rate, ok bool, err error) {
	if c.ChatRate == "" {
		return limiter.Rate{}, false, nil
	}
	rate, err = limiter.NewRateFromFormatted(c.ChatRate)
	if err != nil {
		return limiter.Rate{}, false, err
	}
	return rate, true, nil
}

func parseDelay(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative delay %s", s)
	}
	return d, nil
}

// Load builds the configuration from defaults, an optional config file and
// FUTURESLOG_* environment variables, in increasing priority. A .env file in
// the working directory is loaded into the environment first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.db_path", d.Storage.DBPath)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output_file", d.Log.OutputFile)
	v.SetDefault("log.environment", d.Log.Environment)
	v.SetDefault("ai.api_key", d.AI.APIKey)
	v.SetDefault("chat.reply_delay", d.Chat.ReplyDelay)
	v.SetDefault("news.search_delay", d.News.SearchDelay)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.chat_rate", d.Server.ChatRate)
}

// LoadFromFile loads configuration from a single file, YAML or JSON, with no
// environment overlay.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	// JSON is valid YAML, so one decoder covers both.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage.db_path required for sqlite driver")
		}
	case "memory":
	default:
		return fmt.Errorf("storage.driver must be 'sqlite' or 'memory'")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console'")
	}

	if _, err := c.Chat.ReplyDelayDuration(); err != nil {
		return fmt.Errorf("chat.reply_delay: %w", err)
	}
	if _, err := c.News.SearchDelayDuration(); err != nil {
		return fmt.Errorf("news.search_delay: %w", err)
	}
	if _, _, err := c.Server.ChatRateLimit(); err != nil {
		return fmt.Errorf("server.chat_rate: %w", err)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver: "sqlite",
			DBPath: "./futureslog.sqlite",
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			Environment: "dev",
		},
		Chat: ChatConfig{
			ReplyDelay: "1s",
		},
		News: NewsConfig{
			SearchDelay: "1s",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			ChatRate: "30-M",
		},
	}
}
