package sim

import (
	"context"
	"math"
	"time"

	"github.com/rustyeddy/perpbot/broker"
	"github.com/rustyeddy/perpbot/market"
)

// Engine is a deterministic mock exchange for dry runs: the ticker walks a
// fixed price path, candle history is synthetic, and every order is accepted.
// It implements both broker.Exchange and broker.History.
type Engine struct {
	path   []float64
	index  int
	orders []broker.OrderRequest
}

// Price path covering a ramp up through a take-profit region and back down
// through a stop-loss region, so both exit branches get exercised.
var defaultPath = []float64{2000, 2025, 2050, 2100, 2175, 2150, 2080, 2030, 2000, 1950}

func NewEngine() *Engine {
	return &Engine{path: defaultPath}
}

// Orders returns every order the engine has accepted, in submission order.
func (e *Engine) Orders() []broker.OrderRequest {
	out := make([]broker.OrderRequest, len(e.orders))
	copy(out, e.orders)
	return out
}

// FetchTicker returns the next price on the path. The walk advances one step
// per call and wraps around.
func (e *Engine) FetchTicker(ctx context.Context, symbol string) (market.Ticker, error) {
	last := e.path[e.index%len(e.path)]
	e.index++
	return market.Ticker{Symbol: symbol, Last: last, Time: time.Now()}, nil
}

func (e *Engine) FetchBalance(ctx context.Context) (broker.Balance, error) {
	return broker.Balance{Totals: map[string]float64{"USDT": 10000}}, nil
}

func (e *Engine) CreateOrder(ctx context.Context, req broker.OrderRequest) (broker.OrderAck, error) {
	e.orders = append(e.orders, req)
	return broker.OrderAck{OrderID: "sim-" + req.ClientOID, ClientOID: req.ClientOID}, nil
}

// FetchOHLCV generates 120 one-minute candles: a gentle oscillation around
// 2000 with an upward drift at the tail, enough to warm up moving averages
// without pinning RSI to an extreme.
func (e *Engine) FetchOHLCV(ctx context.Context, symbol, timeframe string, since time.Time) ([]market.Candle, error) {
	const count = 120

	start := since
	if start.IsZero() {
		start = time.Now().Add(-count * time.Minute)
	}

	candles := make([]market.Candle, 0, count)
	for i := 0; i < count; i++ {
		c := 2000 + 25*math.Sin(float64(i)/6) + float64(i)/4
		candles = append(candles, market.Candle{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   c - 1,
			High:   c + 5,
			Low:    c - 5,
			Close:  c,
			Volume: 1000,
		})
	}
	return candles, nil
}
