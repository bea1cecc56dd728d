// Package ledger keeps the process-lifetime record of hypothetical trades
// produced by successful analyses. It is append-only and memory-only: the
// list resets on restart.
package ledger

import (
	"sync"

	"tradedesk/internal/model"
)

// Ledger is a mutex-serialized append-only sequence of ledger entries.
// Entries land in call-completion order; concurrent appends are never lost
// or interleaved.
type Ledger struct {
	mu      sync.RWMutex
	entries []model.LedgerEntry
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Append adds an entry to the end of the ledger.
func (l *Ledger) Append(entry model.LedgerEntry) {
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
}

// Snapshot returns a defensive copy of all entries in append order.
func (l *Ledger) Snapshot() []model.LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the current entry count.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
