package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTrade returns a single trade record by ID.
func (j *SQLiteJournal) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT trade_id, time, symbol, direction, order_size, entry_price, exit_price, stop_loss, take_profit
		FROM trades
		WHERE trade_id = ?`, tradeID)

	err := scanTrade(row.Scan, &rec)
	if err != nil {
		if err == sql.ErrNoRows {
			return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return TradeRecord{}, err
	}
	return rec, nil
}

// ListTrades returns every recorded trade ordered by close time.
func (j *SQLiteJournal) ListTrades() ([]TradeRecord, error) {
	return j.listTrades(`
		SELECT trade_id, time, symbol, direction, order_size, entry_price, exit_price, stop_loss, take_profit
		FROM trades
		ORDER BY time ASC`)
}

// ListTradesBetween returns trades closed within [start, end).
func (j *SQLiteJournal) ListTradesBetween(start, end time.Time) ([]TradeRecord, error) {
	return j.listTrades(`
		SELECT trade_id, time, symbol, direction, order_size, entry_price, exit_price, stop_loss, take_profit
		FROM trades
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
}

func (j *SQLiteJournal) listTrades(query string, args ...any) ([]TradeRecord, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := scanTrade(rows.Scan, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTrade(scan func(...any) error, rec *TradeRecord) error {
	return scan(
		&rec.TradeID,
		&rec.Time,
		&rec.Symbol,
		&rec.Direction,
		&rec.OrderSize,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.StopLoss,
		&rec.TakeProfit,
	)
}
