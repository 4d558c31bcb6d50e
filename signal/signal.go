package signal

import (
	"github.com/rustyeddy/perpbot/market"
)

// Signal is the ternary per-symbol, per-cycle trading decision. None is
// produced when there is insufficient data or the source is not yet trained.
type Signal int

const (
	None Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "NONE"
	}
}

// Direction maps an actionable signal to the order side it opens.
func (s Signal) Direction() market.Direction {
	if s == Buy {
		return market.Long
	}
	return market.Short
}

// Source produces a signal for a symbol from its recent candles.
type Source interface {
	SignalFor(symbol string, candles []market.Candle) Signal
}
