// internal/monitor/runner.go
package monitor

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits snapshots on the provided channel.
// One goroutine per drive. No overlap. No retries.
func (m *Monitor) Run(ctx context.Context, out chan<- Snapshot) {
	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- m.PollOnce():
			case <-ctx.Done():
				return
			}
		}
	}
}
