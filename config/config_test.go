package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateCatchesBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no symbols", func(c *Config) { c.Trading.Symbols = nil }},
		{"no interval", func(c *Config) { c.Trading.Interval = "" }},
		{"short >= long", func(c *Config) { c.Trading.ShortWindow = c.Trading.LongWindow }},
		{"zero leverage", func(c *Config) { c.Trading.Leverage = 0 }},
		{"zero investment", func(c *Config) { c.Trading.InvestmentAmount = 0 }},
		{"zero stop loss", func(c *Config) { c.Trading.SLPercentage = 0 }},
		{"zero check interval", func(c *Config) { c.Trading.CheckInterval = 0 }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "parquet" }},
		{"csv without path", func(c *Config) { c.Journal.TradesFile = "" }},
		{"sqlite without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
trading:
  symbols: ["BTC-USD"]
  interval: "15m"
  short_window: 5
  long_window: 20
  leverage: 10
  investment_amount: 50
  sl_percentage: 1.5
  tp_percentage: 3
  check_interval: 10
journal:
  type: sqlite
  db_path: ./trades.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC-USD"}, cfg.Trading.Symbols)
	assert.Equal(t, "15m", cfg.Trading.Interval)
	assert.Equal(t, 10.0, cfg.Trading.Leverage)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
}

func TestLoadFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  "trading": {
    "symbols": ["ETH-USD"],
    "interval": "5m",
    "short_window": 7,
    "long_window": 25,
    "leverage": 5,
    "investment_amount": 100,
    "sl_percentage": 2,
    "tp_percentage": 4,
    "check_interval": 5
  },
  "journal": {"type": "csv", "trades_file": "./trades.csv"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"ETH-USD"}, cfg.Trading.Symbols)
	assert.Equal(t, "csv", cfg.Journal.Type)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trading:\n  symbols: []\n"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
