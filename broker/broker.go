package broker

import (
	"context"
	"time"

	"github.com/rustyeddy/perpbot/market"
)

// Exchange is the gateway contract the trading loop consumes. Implementations
// may fail transiently; callers own the retry policy.
type Exchange interface {
	FetchTicker(ctx context.Context, symbol string) (market.Ticker, error)
	FetchBalance(ctx context.Context) (Balance, error)
	CreateOrder(ctx context.Context, req OrderRequest) (OrderAck, error)
}

// History supplies recent candles for signal generation.
type History interface {
	FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time) ([]market.Candle, error)
}

// Balance holds per-currency account totals.
type Balance struct {
	Totals map[string]float64
}

func (b Balance) Total(currency string) float64 {
	return b.Totals[currency]
}

// OrderRequest describes a market order submission. ClientOID is a
// caller-generated token the exchange may use to de-duplicate retried
// submissions; this engine does not enforce it.
type OrderRequest struct {
	Symbol     string
	Type       string // "market"
	Side       market.Direction
	Amount     float64
	Leverage   float64
	MarginMode string
	ClientOID  string
	ReduceOnly bool
}

// OrderAck is the exchange's acknowledgement of an accepted order.
type OrderAck struct {
	OrderID   string
	ClientOID string
}
