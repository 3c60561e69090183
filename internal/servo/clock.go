// internal/servo/clock.go
package servo

import "time"

// Clock is the time source for settle delays, poll intervals and deadlines.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock uses the process monotonic clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
