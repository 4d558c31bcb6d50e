package signal

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/perpbot/indicators"
	"github.com/rustyeddy/perpbot/market"
)

const (
	rsiPeriod     = 14
	rsiOverbought = 70
)

// Crossover derives signals from a short/long moving-average crossover with
// an RSI overbought filter: BUY when the short average is above the long one
// and RSI stays under 70, otherwise SELL.
//
// The model starts Untrained and produces None until Train has seen enough
// history; Ready reports the current state.
type Crossover struct {
	ShortWindow int
	LongWindow  int

	trained bool
}

func NewCrossover(shortWindow, longWindow int) *Crossover {
	return &Crossover{ShortWindow: shortWindow, LongWindow: longWindow}
}

// Ready reports whether the model has been trained.
func (c *Crossover) Ready() bool {
	return c.trained
}

// required is the minimum history needed before a decision can be made.
func (c *Crossover) required() int {
	need := c.LongWindow
	if c.ShortWindow > need {
		need = c.ShortWindow
	}
	if rsiPeriod+1 > need {
		need = rsiPeriod + 1
	}
	return need
}

// Train fits the model on historical candles and transitions it from
// Untrained to Ready. It fails, leaving the model untrained, when the
// history is too short to warm up every indicator.
func (c *Crossover) Train(candles []market.Candle) error {
	if c.ShortWindow <= 0 || c.LongWindow <= 0 {
		return fmt.Errorf("train: windows must be positive (short=%d long=%d)", c.ShortWindow, c.LongWindow)
	}
	if c.ShortWindow >= c.LongWindow {
		return fmt.Errorf("train: short window %d must be below long window %d", c.ShortWindow, c.LongWindow)
	}
	if need := c.required(); len(candles) < need {
		return fmt.Errorf("train: need %d candles, got %d", need, len(candles))
	}

	c.trained = true
	return nil
}

// SignalFor evaluates the crossover rule on the candle history. It returns
// None while the model is untrained or when the history cannot warm up the
// indicators; it never returns an error to the caller.
func (c *Crossover) SignalFor(symbol string, candles []market.Candle) Signal {
	if !c.trained {
		log.Warn().Str("symbol", symbol).Msg("model not trained; no signal")
		return None
	}

	closes := market.Closes(candles)
	if len(closes) < c.required() {
		log.Warn().Str("symbol", symbol).Int("candles", len(closes)).Msg("insufficient data; no signal")
		return None
	}

	shortMA, err := indicators.SMA(closes, c.ShortWindow)
	if err != nil {
		return None
	}
	longMA, err := indicators.SMA(closes, c.LongWindow)
	if err != nil {
		return None
	}
	rsi, err := indicators.RSI(closes, rsiPeriod)
	if err != nil {
		return None
	}

	log.Debug().
		Str("symbol", symbol).
		Float64("short_ma", shortMA).
		Float64("long_ma", longMA).
		Float64("rsi", rsi).
		Msg("crossover evaluated")

	if shortMA > longMA && rsi < rsiOverbought {
		return Buy
	}
	return Sell
}
