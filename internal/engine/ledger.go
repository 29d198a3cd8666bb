package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/menara-digital/menara/internal/model"
)

// Ledger records which notifications have already been dispatched.
// MarkIfAbsent must be atomic: exactly one caller per key observes true.
// Entries only matter while their calendar day is current; losing them is
// acceptable (the fallback is at-least-once, never silence).
type Ledger interface {
	MarkIfAbsent(ctx context.Context, key string) (bool, error)
	Purge(before time.Time)
}

// DedupKey builds the composite (mosque, event, calendar day) key.
func DedupKey(mosqueKey string, event model.EdgeEvent) string {
	return fmt.Sprintf("%s|%s|%s", mosqueKey, event.DisplayLabel(), event.Day)
}

// MemoryLedger is the process-local ledger used by a single sweep worker
// or display device. Stale entries are removed by the periodic Purge
// sweep instead of the old wholesale hourly clear.
type MemoryLedger struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: map[string]time.Time{}}
}

func (l *MemoryLedger) MarkIfAbsent(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.entries[key]; exists {
		return false, nil
	}
	l.entries[key] = time.Now()
	return true, nil
}

// Purge drops entries recorded before the cutoff.
func (l *MemoryLedger) Purge(before time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, at := range l.entries {
		if at.Before(before) {
			delete(l.entries, key)
		}
	}
}

// Len is used by tests and the sweep's periodic stats log.
func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
