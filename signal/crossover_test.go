package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/perpbot/market"
)

func candlesFrom(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{Close: c}
	}
	return out
}

// Choppy series drifting up at the end: short MA above long MA, RSI well
// under the overbought line.
var bullish = candlesFrom(100, 99, 100, 99, 100, 99, 100, 99, 100, 99, 100, 102, 101, 104, 103, 106)

// Mirror image drifting down: short MA below long MA.
var bearish = candlesFrom(100, 101, 100, 101, 100, 101, 100, 101, 100, 101, 100, 98, 99, 96, 97, 94)

func TestUntrainedReturnsNone(t *testing.T) {
	c := NewCrossover(2, 4)
	assert.False(t, c.Ready())
	assert.Equal(t, None, c.SignalFor("BTC/USDT:USDT", bullish))
}

func TestTrainRequiresEnoughHistory(t *testing.T) {
	c := NewCrossover(2, 4)
	err := c.Train(bullish[:5])
	require.Error(t, err)
	assert.False(t, c.Ready())

	require.NoError(t, c.Train(bullish))
	assert.True(t, c.Ready())
}

func TestTrainRejectsBadWindows(t *testing.T) {
	assert.Error(t, NewCrossover(0, 4).Train(bullish))
	assert.Error(t, NewCrossover(4, 4).Train(bullish))
	assert.Error(t, NewCrossover(5, 4).Train(bullish))
}

func TestSignalBuyOnBullishCross(t *testing.T) {
	c := NewCrossover(2, 4)
	require.NoError(t, c.Train(bullish))
	assert.Equal(t, Buy, c.SignalFor("BTC/USDT:USDT", bullish))
}

func TestSignalSellOnBearishCross(t *testing.T) {
	c := NewCrossover(2, 4)
	require.NoError(t, c.Train(bearish))
	assert.Equal(t, Sell, c.SignalFor("BTC/USDT:USDT", bearish))
}

func TestOverboughtSuppressesBuy(t *testing.T) {
	// A pure uptrend puts the short MA on top but drives RSI to 100.
	straightUp := make([]float64, 16)
	for i := range straightUp {
		straightUp[i] = float64(i + 1)
	}
	c := NewCrossover(2, 4)
	candles := candlesFrom(straightUp...)
	require.NoError(t, c.Train(candles))
	assert.Equal(t, Sell, c.SignalFor("BTC/USDT:USDT", candles))
}

func TestInsufficientDataReturnsNone(t *testing.T) {
	c := NewCrossover(2, 4)
	require.NoError(t, c.Train(bullish))
	assert.Equal(t, None, c.SignalFor("BTC/USDT:USDT", bullish[:8]))
}

func TestSignalStringAndDirection(t *testing.T) {
	assert.Equal(t, "BUY", Buy.String())
	assert.Equal(t, "SELL", Sell.String())
	assert.Equal(t, "NONE", None.String())
	assert.Equal(t, market.Long, Buy.Direction())
	assert.Equal(t, market.Short, Sell.Direction())
}
