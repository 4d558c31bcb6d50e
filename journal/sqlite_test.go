package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	return j, path
}

func sampleTrade(id string, closeT time.Time) TradeRecord {
	return TradeRecord{
		TradeID:    id,
		Time:       closeT,
		Symbol:     "BTC/USDT:USDT",
		Direction:  "buy",
		OrderSize:  1.5,
		EntryPrice: 100,
		ExitPrice:  110,
		StopLoss:   95,
		TakeProfit: 110,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`)
	require.NoError(t, err)
	defer rows.Close()

	assert.True(t, rows.Next())
	assert.NoError(t, rows.Err())
}

func TestSQLiteRecordAndGetTrade(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	closeT := time.Date(2024, 1, 2, 4, 5, 6, 0, time.UTC)
	rec := sampleTrade("T1", closeT)
	require.NoError(t, j.RecordTrade(rec))

	got, err := j.GetTrade("T1")
	require.NoError(t, err)
	assert.Equal(t, rec.Symbol, got.Symbol)
	assert.Equal(t, rec.Direction, got.Direction)
	assert.InDelta(t, rec.OrderSize, got.OrderSize, 1e-9)
	assert.InDelta(t, rec.EntryPrice, got.EntryPrice, 1e-9)
	assert.InDelta(t, rec.ExitPrice, got.ExitPrice, 1e-9)
	assert.True(t, got.Time.Equal(closeT))

	_, err = j.GetTrade("missing")
	assert.Error(t, err)
}

func TestSQLiteDuplicateTradeIDRejected(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	closeT := time.Date(2024, 1, 2, 4, 5, 6, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("T1", closeT)))
	assert.Error(t, j.RecordTrade(sampleTrade("T1", closeT)))
}

func TestSQLiteListTrades(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)

	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(sampleTrade("T2", t0.Add(2*time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("T1", t0.Add(time.Hour))))
	require.NoError(t, j.RecordTrade(sampleTrade("T3", t0.Add(3*time.Hour))))

	all, err := j.ListTrades()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "T1", all[0].TradeID)
	assert.Equal(t, "T2", all[1].TradeID)
	assert.Equal(t, "T3", all[2].TradeID)

	window, err := j.ListTradesBetween(t0.Add(90*time.Minute), t0.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, "T2", window[0].TradeID)
}
