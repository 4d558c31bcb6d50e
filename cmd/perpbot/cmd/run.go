package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/perpbot/broker"
	"github.com/rustyeddy/perpbot/broker/kucoin"
	"github.com/rustyeddy/perpbot/broker/sim"
	"github.com/rustyeddy/perpbot/config"
	"github.com/rustyeddy/perpbot/journal"
	"github.com/rustyeddy/perpbot/logx"
	"github.com/rustyeddy/perpbot/metrics"
	"github.com/rustyeddy/perpbot/notify"
	"github.com/rustyeddy/perpbot/signal"
	"github.com/rustyeddy/perpbot/trader"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trading loop",
	Long: `Run the trading loop using settings from a configuration file.

The config file specifies the symbols, strategy windows, sizing and exit
parameters, journal backend, and exchange credentials.

Example:
  perpbot run --config configs/bot.yaml
  perpbot run --sim`,
	RunE: runRun,
}

var (
	runConfigPath string
	runSim        bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().BoolVar(&runSim, "sim", false, "trade against the built-in simulated exchange")
}

// gateway bundles the two exchange roles the trader consumes.
type gateway interface {
	broker.Exchange
	broker.History
}

func runRun(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	if runConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(runConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	} else if runSim {
		cfg = config.Default()
	} else {
		return fmt.Errorf("--config is required unless running with --sim")
	}

	if err := logx.Setup(cfg.Log.Level, cfg.Log.File); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}

	var jrnl journal.Journal
	var err error
	if cfg.Journal.Type == "sqlite" {
		jrnl, err = journal.NewSQLite(cfg.Journal.DBPath)
	} else {
		jrnl, err = journal.NewCSV(cfg.Journal.TradesFile)
	}
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer jrnl.Close()

	var gw gateway
	if runSim {
		log.Info().Msg("using simulated exchange")
		gw = sim.NewEngine()
	} else {
		ex := cfg.Exchange
		if ex.APIKey == "" || ex.APISecret == "" || ex.Passphrase == "" {
			return fmt.Errorf("exchange credentials are required for live trading")
		}
		gw = kucoin.NewClient(ex.APIKey, ex.APISecret, ex.Passphrase, ex.BaseURL)
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != "" {
		notifier = notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		log.Info().Msg("telegram notifications enabled")
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		go func() {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Error().Err(err).Msg("metrics listener failed")
			}
		}()
	}

	src := signal.NewCrossover(cfg.Trading.ShortWindow, cfg.Trading.LongWindow)
	bot := trader.New(cfg.Trading, gw, gw, src, jrnl, notifier)

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Strs("symbols", cfg.Trading.Symbols).
		Str("interval", cfg.Trading.Interval).
		Int("check_interval_min", cfg.Trading.CheckInterval).
		Msg("starting trading loop")

	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("trading loop: %w", err)
	}

	log.Info().Msg("shutdown complete")
	return nil
}
