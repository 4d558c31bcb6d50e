package market

import (
	"strings"
	"time"
)

// Direction is the side of an open exposure. The values mirror the exchange's
// order sides so that signal/position comparisons are plain string equality.
type Direction string

const (
	Long  Direction = "buy"
	Short Direction = "sell"
)

// Opposite returns the order side that closes a position in this direction.
func (d Direction) Opposite() Direction {
	if d == Long {
		return Short
	}
	return Long
}

func (d Direction) Valid() bool {
	return d == Long || d == Short
}

// Ticker is a point-in-time last-traded price for one instrument.
type Ticker struct {
	Symbol string
	Last   float64
	Time   time.Time
}

// Candle is one OHLCV bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the close series from a candle slice.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// FormatSymbol maps a configured symbol such as "BTC-USD" to the unified
// perpetual form "BTC/USDT:USDT" used as the ledger key and on the wire.
func FormatSymbol(symbol string) string {
	return strings.ReplaceAll(strings.ReplaceAll(symbol, "-", "/"), "USD", "USDT:USDT")
}
