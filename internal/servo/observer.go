// internal/servo/observer.go
package servo

import "time"

// Observer receives operation outcomes. Implementations must not block.
type Observer interface {
	ObserveOperation(servo, op, outcome string, elapsed time.Duration)
	ObserveCycle(servo string, cycles uint64)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, string, string, time.Duration) {}
func (nopObserver) ObserveCycle(string, uint64)                            {}
