package journal

import "time"

// TradeRecord is the immutable snapshot emitted when a position closes.
// Fields mirror the trade-log contract: one append-only record per close.
type TradeRecord struct {
	TradeID    string
	Time       time.Time // close time
	Symbol     string
	Direction  string
	OrderSize  float64
	EntryPrice float64
	ExitPrice  float64
	StopLoss   float64
	TakeProfit float64
}

// Journal is the trade recorder. Implementations own the record's
// persistence; the trading loop never reads it back.
type Journal interface {
	RecordTrade(TradeRecord) error
	Close() error
}
