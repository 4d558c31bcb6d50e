package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal records closed trades in a SQLite database, which the
// `perpbot journal` command queries later.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, time, symbol, direction, order_size, entry_price, exit_price, stop_loss, take_profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Time, t.Symbol, t.Direction, t.OrderSize,
		t.EntryPrice, t.ExitPrice, t.StopLoss, t.TakeProfit,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
