// internal/monitor/latest.go
package monitor

import (
	"sync"

	"github.com/tamzrod/modbus-servo/internal/status"
)

// Snapshot is re-exported for callers that only deal with the monitor.
type Snapshot = status.Snapshot

// Latest holds the most recent snapshot for concurrent readers.
type Latest struct {
	mu   sync.RWMutex
	snap Snapshot
	ok   bool
}

func (l *Latest) Store(s Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snap = s
	l.ok = true
}

// Load returns the last stored snapshot and whether one exists.
func (l *Latest) Load() (Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap, l.ok
}
