package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVHeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}

func TestCSVRecordTrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)

	closeT := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, j.RecordTrade(TradeRecord{
		TradeID:    "T1",
		Time:       closeT,
		Symbol:     "ETH/USDT:USDT",
		Direction:  "sell",
		OrderSize:  2,
		EntryPrice: 2000,
		ExitPrice:  1900,
		StopLoss:   2100,
		TakeProfit: 1800,
	}))
	require.NoError(t, j.Close())

	rows := readCSV(t, path)
	require.Len(t, rows, 2)

	row := rows[1]
	assert.Equal(t, closeT.Format(time.RFC3339), row[0])
	assert.Equal(t, "ETH/USDT:USDT", row[1])
	assert.Equal(t, "sell", row[2])
	assert.Equal(t, "2.000000", row[3])
	assert.Equal(t, "2000.000000", row[4])
	assert.Equal(t, "1900.000000", row[5])
	assert.Equal(t, "2100.000000", row[6])
	assert.Equal(t, "1800.000000", row[7])
}

func TestCSVCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "trades.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
