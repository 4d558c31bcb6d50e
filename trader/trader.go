// Package trader runs the position lifecycle: per-cycle signal evaluation,
// reconciliation of signals against the open-position ledger, order
// placement and closing under a retry policy, and stop-loss / take-profit
// monitoring.
package trader

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/perpbot/broker"
	"github.com/rustyeddy/perpbot/config"
	"github.com/rustyeddy/perpbot/journal"
	"github.com/rustyeddy/perpbot/ledger"
	"github.com/rustyeddy/perpbot/market"
	"github.com/rustyeddy/perpbot/metrics"
	"github.com/rustyeddy/perpbot/notify"
	"github.com/rustyeddy/perpbot/retry"
	"github.com/rustyeddy/perpbot/signal"
)

const (
	orderAttempts   = 3
	orderRetryDelay = 5 * time.Second

	// lookbackBars is how many candles of history each cycle requests;
	// enough to warm up the widest indicator window with room to spare.
	lookbackBars = 200
)

// trainable is the optional state machine a signal source may expose. An
// untrained source is fitted on the first history fetch for each run.
type trainable interface {
	Ready() bool
	Train([]market.Candle) error
}

// Trader owns the trading loop. It is single-goroutine: Run drives cycles
// sequentially, and the ledger it owns is never shared.
type Trader struct {
	cfg      config.TradingConfig
	exchange broker.Exchange
	history  broker.History
	signals  signal.Source
	book     *ledger.Ledger
	journal  journal.Journal
	notifier notify.Notifier
	retry    retry.Policy

	now func() time.Time
}

func New(cfg config.TradingConfig, ex broker.Exchange, hist broker.History,
	src signal.Source, jrnl journal.Journal, n notify.Notifier) *Trader {

	if n == nil {
		n = notify.Noop{}
	}
	return &Trader{
		cfg:      cfg,
		exchange: ex,
		history:  hist,
		signals:  src,
		book:     ledger.New(),
		journal:  jrnl,
		notifier: n,
		retry:    retry.Policy{Attempts: orderAttempts, Delay: orderRetryDelay},
		now:      time.Now,
	}
}

// Run executes trading cycles until the context is cancelled, sleeping the
// configured check interval between them.
func (t *Trader) Run(ctx context.Context) error {
	if bal, err := t.exchange.FetchBalance(ctx); err != nil {
		log.Warn().Err(err).Msg("startup balance check failed")
	} else {
		log.Info().Float64("usdt", bal.Total("USDT")).Msg("starting balance")
	}

	wait := time.Duration(t.cfg.CheckInterval) * time.Minute
	for {
		t.Cycle(ctx)

		log.Info().Dur("wait", wait).Int("open_positions", t.book.Len()).Msg("cycle complete")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// Cycle evaluates every configured symbol, reconciles signals against the
// ledger, then sweeps open positions for stop-loss / take-profit exits.
// Per-symbol failures are logged and never abort the rest of the cycle.
func (t *Trader) Cycle(ctx context.Context) {
	for _, s := range t.cfg.Symbols {
		t.processSymbol(ctx, market.FormatSymbol(s))
	}

	t.Monitor(ctx)
	t.logOpenTrades(ctx)
	metrics.SetOpenPositions(t.book.Len())
}

func (t *Trader) processSymbol(ctx context.Context, symbol string) {
	since := t.historySince()
	candles, err := t.history.FetchOHLCV(ctx, symbol, t.cfg.Interval, since)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("history fetch failed")
		return
	}

	if tr, ok := t.signals.(trainable); ok && !tr.Ready() {
		if err := tr.Train(candles); err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("model training failed")
			return
		}
		log.Info().Str("symbol", symbol).Int("candles", len(candles)).Msg("model trained")
	}

	sig := t.signals.SignalFor(symbol, candles)
	metrics.SignalSeen(sig.String())
	if sig == signal.None {
		log.Debug().Str("symbol", symbol).Msg("no signal")
		return
	}

	log.Info().Str("symbol", symbol).Stringer("signal", sig).Msg("signal")
	t.Reconcile(ctx, symbol, sig)
}

// historySince computes the start of the candle window from the configured
// interval. An unparsable interval falls back to a one-day window.
func (t *Trader) historySince() time.Time {
	d, err := barDuration(t.cfg.Interval)
	if err != nil {
		return t.now().Add(-24 * time.Hour)
	}
	return t.now().Add(-time.Duration(lookbackBars) * d)
}

// barDuration parses a timeframe such as "5m", "1h", or "1d" into a duration.
func barDuration(timeframe string) (time.Duration, error) {
	if n, found := strings.CutSuffix(timeframe, "d"); found {
		days, err := strconv.Atoi(n)
		if err == nil && days > 0 {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(timeframe)
}
