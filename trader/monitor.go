package trader

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/perpbot/broker"
	"github.com/rustyeddy/perpbot/journal"
	"github.com/rustyeddy/perpbot/ledger"
	"github.com/rustyeddy/perpbot/market"
	"github.com/rustyeddy/perpbot/metrics"
	"github.com/rustyeddy/perpbot/pkg/id"
	"github.com/rustyeddy/perpbot/retry"
)

// Exit reasons recorded on close.
const (
	reasonStopLoss   = "StopLoss"
	reasonTakeProfit = "TakeProfit"
	reasonSignal     = "Signal"
)

// Monitor sweeps the open positions once, closing any whose stop-loss or
// take-profit level the current price has crossed. A missing price skips
// the position until the next sweep; a failed close leaves it in the ledger.
func (t *Trader) Monitor(ctx context.Context) {
	for _, pos := range t.book.List() {
		tick, err := t.exchange.FetchTicker(ctx, pos.Symbol)
		if err != nil {
			log.Warn().Err(err).Str("symbol", pos.Symbol).Msg("ticker fetch failed; exit check skipped")
			continue
		}

		reason := exitReason(pos, tick.Last)
		if reason == "" {
			continue
		}

		log.Info().
			Str("symbol", pos.Symbol).
			Str("reason", reason).
			Float64("price", tick.Last).
			Float64("profit_pct", pos.ProfitPercent(tick.Last)).
			Msg("exit level hit")

		if err := t.CloseOrder(ctx, pos, tick.Last, reason); err != nil {
			log.Error().Err(err).Str("symbol", pos.Symbol).Msg("exit close failed")
		}
	}
}

// exitReason reports which exit level the price has crossed, or "" when the
// position should stay open. Longs exit below the stop or above the target;
// shorts invert both comparisons.
func exitReason(pos *ledger.Position, price float64) string {
	if pos.Direction == market.Long {
		switch {
		case price <= pos.StopLossPrice:
			return reasonStopLoss
		case price >= pos.TakeProfitPrice:
			return reasonTakeProfit
		}
		return ""
	}

	switch {
	case price >= pos.StopLossPrice:
		return reasonStopLoss
	case price <= pos.TakeProfitPrice:
		return reasonTakeProfit
	}
	return ""
}

// CloseOrder submits a reduce-only market order on the opposite side of the
// position, retrying under the trader's policy. On success the trade is
// journaled and the position leaves the ledger; on exhausted retries the
// position stays and the error is returned so callers can avoid acting as
// if the exposure were gone.
func (t *Trader) CloseOrder(ctx context.Context, pos *ledger.Position, exitPrice float64, reason string) error {
	req := broker.OrderRequest{
		Symbol:     pos.Symbol,
		Side:       pos.Direction.Opposite(),
		Amount:     pos.Size,
		ClientOID:  id.New(),
		ReduceOnly: true,
	}

	err := retry.Do(t.retry, func(attempt int) error {
		if _, err := t.exchange.CreateOrder(ctx, req); err != nil {
			log.Warn().Err(err).
				Str("symbol", pos.Symbol).
				Int("attempt", attempt).
				Msg("close submission failed")
			return err
		}
		return nil
	})
	if err != nil {
		metrics.RetryExhausted("close")
		return fmt.Errorf("close %s %s: %w", pos.Direction, pos.Symbol, err)
	}

	rec := journal.TradeRecord{
		TradeID:    id.New(),
		Time:       t.now(),
		Symbol:     pos.Symbol,
		Direction:  string(pos.Direction),
		OrderSize:  pos.Size,
		EntryPrice: pos.EntryPrice,
		ExitPrice:  exitPrice,
		StopLoss:   pos.StopLossPrice,
		TakeProfit: pos.TakeProfitPrice,
	}
	if err := t.journal.RecordTrade(rec); err != nil {
		// The exchange position is already closed; losing the journal row
		// must not resurrect it.
		log.Error().Err(err).Str("symbol", pos.Symbol).Msg("trade journaling failed")
	}

	t.book.Remove(pos)
	metrics.ExitRecorded(reason, string(pos.Direction))

	log.Info().
		Str("symbol", pos.Symbol).
		Str("direction", string(pos.Direction)).
		Str("reason", reason).
		Float64("entry", pos.EntryPrice).
		Float64("exit", exitPrice).
		Float64("profit_pct", pos.ProfitPercent(exitPrice)).
		Msg("position closed")

	t.notifier.Notify(ctx, fmt.Sprintf("Closed %s %s @ %.2f (%s, %.2f%%)",
		pos.Direction, pos.Symbol, exitPrice, reason, pos.ProfitPercent(exitPrice)))
	return nil
}

// OpenTrade is a point-in-time view of one open position.
type OpenTrade struct {
	Symbol       string
	Direction    market.Direction
	Size         float64
	EntryPrice   float64
	CurrentPrice float64
	ProfitPct    float64
}

// OpenTrades summarizes every open position at current prices. Positions
// whose price cannot be fetched are omitted.
func (t *Trader) OpenTrades(ctx context.Context) []OpenTrade {
	var out []OpenTrade
	for _, pos := range t.book.List() {
		tick, err := t.exchange.FetchTicker(ctx, pos.Symbol)
		if err != nil {
			log.Warn().Err(err).Str("symbol", pos.Symbol).Msg("ticker fetch failed; trade omitted from summary")
			continue
		}
		out = append(out, OpenTrade{
			Symbol:       pos.Symbol,
			Direction:    pos.Direction,
			Size:         pos.Size,
			EntryPrice:   pos.EntryPrice,
			CurrentPrice: tick.Last,
			ProfitPct:    pos.ProfitPercent(tick.Last),
		})
	}
	return out
}

func (t *Trader) logOpenTrades(ctx context.Context) {
	for _, tr := range t.OpenTrades(ctx) {
		log.Info().
			Str("symbol", tr.Symbol).
			Str("direction", string(tr.Direction)).
			Float64("size", tr.Size).
			Float64("entry", tr.EntryPrice).
			Float64("price", tr.CurrentPrice).
			Float64("profit_pct", tr.ProfitPct).
			Msg("open trade")
	}
}
