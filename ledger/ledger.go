package ledger

import (
	"time"

	"github.com/rustyeddy/perpbot/market"
)

// Position is one tracked open exposure on a single symbol/direction pair.
// Positions are created on an acknowledged open order and removed on an
// acknowledged close; they are never mutated in between.
type Position struct {
	Symbol          string
	Direction       market.Direction
	Size            float64
	EntryPrice      float64
	StopLossPrice   float64
	TakeProfitPrice float64
	OpenedAt        time.Time
}

// ProfitPercent returns the unrealized profit of the position at the given
// price, as a percentage of the entry price. Shorts profit when price falls.
func (p *Position) ProfitPercent(current float64) float64 {
	if p.Direction == market.Long {
		return (current - p.EntryPrice) / p.EntryPrice * 100
	}
	return (p.EntryPrice - current) / p.EntryPrice * 100
}

// Ledger is the authoritative in-memory set of open positions. It is owned by
// the single trading goroutine; it performs no locking and must not be
// mutated concurrently. Same-direction de-duplication is the reconciliation
// engine's pre-check, not a ledger invariant.
type Ledger struct {
	positions []*Position
}

func New() *Ledger {
	return &Ledger{}
}

// List returns a snapshot of the open positions. The returned slice is a
// copy, so callers may close positions (removing them) while iterating it.
func (l *Ledger) List() []*Position {
	out := make([]*Position, len(l.positions))
	copy(out, l.positions)
	return out
}

// Find returns the first open position for symbol, or nil.
func (l *Ledger) Find(symbol string) *Position {
	for _, p := range l.positions {
		if p.Symbol == symbol {
			return p
		}
	}
	return nil
}

// FindDirection returns the open position for the exact (symbol, direction)
// pair, or nil.
func (l *Ledger) FindDirection(symbol string, dir market.Direction) *Position {
	for _, p := range l.positions {
		if p.Symbol == symbol && p.Direction == dir {
			return p
		}
	}
	return nil
}

func (l *Ledger) Add(p *Position) {
	l.positions = append(l.positions, p)
}

// Remove deletes the position from the ledger, comparing by identity.
// It reports whether the position was present.
func (l *Ledger) Remove(p *Position) bool {
	for i, q := range l.positions {
		if q == p {
			l.positions = append(l.positions[:i], l.positions[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Ledger) Len() int {
	return len(l.positions)
}
