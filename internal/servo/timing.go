// internal/servo/timing.go
package servo

import (
	"time"

	"github.com/tamzrod/modbus-servo/internal/config"
)

// Timing holds every delay, deadline and bound used by the controller.
type Timing struct {
	Settle  time.Duration // after enable, disable, reset, mode select and home commands
	Latch   time.Duration // after writing move parameters
	Command time.Duration // after the move command and each shutdown write
	Poll    time.Duration // between status polls

	HomingDeadline time.Duration
	MoveDeadline   time.Duration

	ResetAttempts int
	Tolerance     uint32 // +/- encoder counts around a move target
}

// DefaultTiming matches the drive's documented behavior.
func DefaultTiming() Timing {
	return Timing{
		Settle:         config.DefaultSettleMs * time.Millisecond,
		Latch:          config.DefaultLatchMs * time.Millisecond,
		Command:        config.DefaultCommandMs * time.Millisecond,
		Poll:           config.DefaultPollMs * time.Millisecond,
		HomingDeadline: config.DefaultHomingDeadlineMs * time.Millisecond,
		MoveDeadline:   config.DefaultMoveDeadlineMs * time.Millisecond,
		ResetAttempts:  config.DefaultResetAttempts,
		Tolerance:      config.DefaultTolerance,
	}
}

// TimingFromConfig converts normalized timing config.
func TimingFromConfig(tc config.TimingConfig) Timing {
	return Timing{
		Settle:         ms(tc.SettleMs),
		Latch:          ms(tc.LatchMs),
		Command:        ms(tc.CommandMs),
		Poll:           ms(tc.PollMs),
		HomingDeadline: ms(tc.HomingDeadlineMs),
		MoveDeadline:   ms(tc.MoveDeadlineMs),
		ResetAttempts:  tc.ResetAttempts,
		Tolerance:      uint32(tc.Tolerance),
	}.withDefaults()
}

// withDefaults fills zero fields from DefaultTiming.
func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.Settle <= 0 {
		t.Settle = d.Settle
	}
	if t.Latch <= 0 {
		t.Latch = d.Latch
	}
	if t.Command <= 0 {
		t.Command = d.Command
	}
	if t.Poll <= 0 {
		t.Poll = d.Poll
	}
	if t.HomingDeadline <= 0 {
		t.HomingDeadline = d.HomingDeadline
	}
	if t.MoveDeadline <= 0 {
		t.MoveDeadline = d.MoveDeadline
	}
	if t.ResetAttempts <= 0 {
		t.ResetAttempts = d.ResetAttempts
	}
	if t.Tolerance == 0 {
		t.Tolerance = d.Tolerance
	}
	return t
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
