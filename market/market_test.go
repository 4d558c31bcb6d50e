package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSymbol(t *testing.T) {
	assert.Equal(t, "BTC/USDT:USDT", FormatSymbol("BTC-USD"))
	assert.Equal(t, "ETH/USDT:USDT", FormatSymbol("ETH-USD"))
	assert.Equal(t, "SOL/USDT:USDT", FormatSymbol("SOL-USD"))
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, Short, Long.Opposite())
	assert.Equal(t, Long, Short.Opposite())
}

func TestDirectionValid(t *testing.T) {
	assert.True(t, Long.Valid())
	assert.True(t, Short.Valid())
	assert.False(t, Direction("hold").Valid())
}

func TestCloses(t *testing.T) {
	candles := []Candle{{Close: 1.5}, {Close: 2.5}, {Close: 3.5}}
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, Closes(candles))
}
