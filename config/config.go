package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete bot configuration.
type Config struct {
	Trading  TradingConfig  `json:"trading" yaml:"trading"`
	Exchange ExchangeConfig `json:"exchange" yaml:"exchange"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Telegram TelegramConfig `json:"telegram,omitempty" yaml:"telegram,omitempty"`
	Log      LogConfig      `json:"log,omitempty" yaml:"log,omitempty"`

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `json:"metrics_addr,omitempty" yaml:"metrics_addr,omitempty"`
}

// TradingConfig holds the strategy and sizing parameters.
type TradingConfig struct {
	Symbols          []string `json:"symbols" yaml:"symbols"`
	Interval         string   `json:"interval" yaml:"interval"` // candle timeframe, e.g. "5m"
	ShortWindow      int      `json:"short_window" yaml:"short_window"`
	LongWindow       int      `json:"long_window" yaml:"long_window"`
	Leverage         float64  `json:"leverage" yaml:"leverage"`
	InvestmentAmount float64  `json:"investment_amount" yaml:"investment_amount"`
	SLPercentage     float64  `json:"sl_percentage" yaml:"sl_percentage"`
	TPPercentage     float64  `json:"tp_percentage" yaml:"tp_percentage"`
	CheckInterval    int      `json:"check_interval" yaml:"check_interval"` // minutes between cycles
}

// ExchangeConfig holds the exchange connector credentials.
type ExchangeConfig struct {
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APISecret  string `json:"api_secret,omitempty" yaml:"api_secret,omitempty"`
	Passphrase string `json:"passphrase,omitempty" yaml:"passphrase,omitempty"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// JournalConfig selects the trade recorder backend.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// TelegramConfig enables push notifications when both fields are set.
type TelegramConfig struct {
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	ChatID string `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration to a file. YAML is used for .yaml and
// .yml paths, indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
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

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	t := c.Trading
	if len(t.Symbols) == 0 {
		return fmt.Errorf("trading.symbols is required")
	}
	if t.Interval == "" {
		return fmt.Errorf("trading.interval is required")
	}
	if t.ShortWindow <= 0 || t.LongWindow <= 0 {
		return fmt.Errorf("trading windows must be positive")
	}
	if t.ShortWindow >= t.LongWindow {
		return fmt.Errorf("trading.short_window must be below trading.long_window")
	}
	if t.Leverage <= 0 {
		return fmt.Errorf("trading.leverage must be positive")
	}
	if t.InvestmentAmount <= 0 {
		return fmt.Errorf("trading.investment_amount must be positive")
	}
	if t.SLPercentage <= 0 || t.TPPercentage <= 0 {
		return fmt.Errorf("trading.sl_percentage and trading.tp_percentage must be positive")
	}
	if t.CheckInterval <= 0 {
		return fmt.Errorf("trading.check_interval must be positive")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.TradesFile == "" {
		return fmt.Errorf("journal.trades_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Trading: TradingConfig{
			Symbols:          []string{"BTC-USD", "ETH-USD"},
			Interval:         "5m",
			ShortWindow:      7,
			LongWindow:       25,
			Leverage:         5,
			InvestmentAmount: 100,
			SLPercentage:     2,
			TPPercentage:     4,
			CheckInterval:    5,
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./data/trade_log.csv",
		},
		Log: LogConfig{
			Level: "info",
			File:  "./logs/perpbot.log",
		},
	}
}
