package trader

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/perpbot/broker"
	"github.com/rustyeddy/perpbot/ledger"
	"github.com/rustyeddy/perpbot/market"
	"github.com/rustyeddy/perpbot/metrics"
	"github.com/rustyeddy/perpbot/pkg/id"
	"github.com/rustyeddy/perpbot/retry"
	"github.com/rustyeddy/perpbot/signal"
)

// Reconcile compares an actionable signal against the ledger entry for the
// symbol and takes at most one of three actions:
//
//   - no position: open one in the signal's direction
//   - position agrees with the signal: hold, no exchange calls
//   - position opposes the signal: close it, then open the new direction,
//     but only if the close succeeded
func (t *Trader) Reconcile(ctx context.Context, symbol string, sig signal.Signal) {
	want := sig.Direction()

	existing := t.book.Find(symbol)
	if existing == nil {
		t.PlaceOrder(ctx, symbol, want)
		return
	}

	if existing.Direction == want {
		log.Info().
			Str("symbol", symbol).
			Str("direction", string(want)).
			Msg("signal agrees with open position; holding")
		return
	}

	tick, err := t.exchange.FetchTicker(ctx, symbol)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("ticker fetch failed; conflict unresolved")
		return
	}

	if err := t.CloseOrder(ctx, existing, tick.Last, reasonSignal); err != nil {
		// The old exposure is still live on the exchange; opening the
		// opposite side now would double up. Leave it for the next cycle.
		log.Error().Err(err).Str("symbol", symbol).Msg("close failed; skipping reversal")
		return
	}

	t.PlaceOrder(ctx, symbol, want)
}

// OrderSize converts the configured margin investment into a contract amount
// at the given price. When the raw amount falls below one contract, the
// investment is raised once to ceil(price/leverage), which yields an amount
// of at least one. The second return is the investment actually used.
func OrderSize(investment, leverage, price float64) (size, used float64) {
	size = investment * leverage / price
	if size >= 1 {
		return size, investment
	}

	used = math.Ceil(price / leverage)
	return used * leverage / price, used
}

// exitLevels derives the stop-loss and take-profit prices from the entry
// price. Shorts invert both offsets.
func exitLevels(dir market.Direction, entry, slPct, tpPct float64) (sl, tp float64) {
	if dir == market.Long {
		return entry * (1 - slPct/100), entry * (1 + tpPct/100)
	}
	return entry * (1 + slPct/100), entry * (1 - tpPct/100)
}

// PlaceOrder opens a market position in the given direction, retrying
// submissions under the trader's retry policy. A position already open in
// the same direction makes this a logged no-op. Exhausted retries leave the
// ledger untouched.
func (t *Trader) PlaceOrder(ctx context.Context, symbol string, dir market.Direction) {
	if p := t.book.FindDirection(symbol, dir); p != nil {
		log.Info().
			Str("symbol", symbol).
			Str("direction", string(dir)).
			Msg("position already open; skipping order")
		return
	}

	tick, err := t.exchange.FetchTicker(ctx, symbol)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("ticker fetch failed; order not placed")
		return
	}

	size, used := OrderSize(t.cfg.InvestmentAmount, t.cfg.Leverage, tick.Last)
	if used != t.cfg.InvestmentAmount {
		log.Warn().
			Str("symbol", symbol).
			Float64("configured", t.cfg.InvestmentAmount).
			Float64("used", used).
			Msg("investment raised to reach minimum contract size")
	}
	sl, tp := exitLevels(dir, tick.Last, t.cfg.SLPercentage, t.cfg.TPPercentage)

	req := broker.OrderRequest{
		Symbol:     symbol,
		Side:       dir,
		Amount:     size,
		Leverage:   t.cfg.Leverage,
		MarginMode: "ISOLATED",
		ClientOID:  id.New(),
	}

	var ack broker.OrderAck
	err = retry.Do(t.retry, func(attempt int) error {
		a, err := t.exchange.CreateOrder(ctx, req)
		if err != nil {
			log.Warn().Err(err).
				Str("symbol", symbol).
				Int("attempt", attempt).
				Msg("order submission failed")
			return err
		}
		ack = a
		return nil
	})
	if err != nil {
		metrics.RetryExhausted("open")
		log.Error().Err(err).Str("symbol", symbol).Msg("order abandoned after retries")
		return
	}

	pos := &ledger.Position{
		Symbol:          symbol,
		Direction:       dir,
		Size:            size,
		EntryPrice:      tick.Last,
		StopLossPrice:   sl,
		TakeProfitPrice: tp,
		OpenedAt:        t.now(),
	}
	t.book.Add(pos)
	metrics.OrderPlaced(string(dir))

	log.Info().
		Str("symbol", symbol).
		Str("direction", string(dir)).
		Float64("size", size).
		Float64("entry", tick.Last).
		Float64("stop_loss", sl).
		Float64("take_profit", tp).
		Str("order_id", ack.OrderID).
		Msg("position opened")

	t.notifier.Notify(ctx, fmt.Sprintf("Opened %s %s size %.4f @ %.2f (SL %.2f / TP %.2f)",
		dir, symbol, size, tick.Last, sl, tp))
}
