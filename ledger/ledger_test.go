package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/perpbot/market"
)

func TestAddFindRemove(t *testing.T) {
	l := New()
	assert.Nil(t, l.Find("BTC/USDT:USDT"))

	p := &Position{Symbol: "BTC/USDT:USDT", Direction: market.Long, Size: 1, EntryPrice: 100}
	l.Add(p)

	require.Equal(t, 1, l.Len())
	assert.Same(t, p, l.Find("BTC/USDT:USDT"))
	assert.Same(t, p, l.FindDirection("BTC/USDT:USDT", market.Long))
	assert.Nil(t, l.FindDirection("BTC/USDT:USDT", market.Short))
	assert.Nil(t, l.Find("ETH/USDT:USDT"))

	assert.True(t, l.Remove(p))
	assert.Equal(t, 0, l.Len())
	assert.False(t, l.Remove(p))
}

func TestFindReturnsFirstMatch(t *testing.T) {
	l := New()
	first := &Position{Symbol: "ETH/USDT:USDT", Direction: market.Long}
	second := &Position{Symbol: "ETH/USDT:USDT", Direction: market.Short}
	l.Add(first)
	l.Add(second)

	assert.Same(t, first, l.Find("ETH/USDT:USDT"))
	assert.Same(t, second, l.FindDirection("ETH/USDT:USDT", market.Short))
}

func TestListIsASnapshot(t *testing.T) {
	l := New()
	a := &Position{Symbol: "A"}
	b := &Position{Symbol: "B"}
	l.Add(a)
	l.Add(b)

	snapshot := l.List()
	require.Len(t, snapshot, 2)

	// Removing while iterating the snapshot must not disturb it.
	l.Remove(a)
	assert.Len(t, snapshot, 2)
	assert.Equal(t, 1, l.Len())
}

func TestProfitPercentLong(t *testing.T) {
	p := &Position{Direction: market.Long, EntryPrice: 100}
	assert.InDelta(t, 10.0, p.ProfitPercent(110), 1e-9)
	assert.InDelta(t, -10.0, p.ProfitPercent(90), 1e-9)
}

func TestProfitPercentShort(t *testing.T) {
	p := &Position{Direction: market.Short, EntryPrice: 100}
	assert.InDelta(t, 10.0, p.ProfitPercent(90), 1e-9)
	assert.InDelta(t, -10.0, p.ProfitPercent(110), 1e-9)
}
