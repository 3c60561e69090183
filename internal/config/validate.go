// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}

	// ------------------------------------------------------------
	// DEVICE ENTRIES
	// ------------------------------------------------------------

	for name, addr := range cfg.Device {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("device entry with empty servo name (address %q)", addr)
		}
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("servo %q: address must not be empty", name)
		}
	}

	// ------------------------------------------------------------
	// TRANSPORT
	// ------------------------------------------------------------

	t := cfg.Transport
	if t.TimeoutMs < 0 {
		return fmt.Errorf("transport.timeout_ms must be >= 0, got %d", t.TimeoutMs)
	}
	switch t.Parity {
	case "", "N", "E", "O":
	default:
		return fmt.Errorf("transport.parity must be one of N, E, O, got %q", t.Parity)
	}
	if t.DataBits != 0 && (t.DataBits < 5 || t.DataBits > 8) {
		return fmt.Errorf("transport.data_bits must be 5-8, got %d", t.DataBits)
	}
	if t.StopBits > 2 {
		return fmt.Errorf("transport.stop_bits must be 1 or 2, got %d", t.StopBits)
	}

	// ------------------------------------------------------------
	// TIMING (zero = default)
	// ------------------------------------------------------------

	tm := cfg.Timing
	fields := []struct {
		name string
		v    int
	}{
		{"timing.settle_ms", tm.SettleMs},
		{"timing.latch_ms", tm.LatchMs},
		{"timing.command_ms", tm.CommandMs},
		{"timing.poll_ms", tm.PollMs},
		{"timing.homing_deadline_ms", tm.HomingDeadlineMs},
		{"timing.move_deadline_ms", tm.MoveDeadlineMs},
		{"timing.reset_attempts", tm.ResetAttempts},
		{"timing.tolerance", tm.Tolerance},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", f.name, f.v)
		}
	}

	if tm.PollMs > 0 && tm.HomingDeadlineMs > 0 && tm.PollMs > tm.HomingDeadlineMs {
		return fmt.Errorf("timing.poll_ms (%d) exceeds timing.homing_deadline_ms (%d)", tm.PollMs, tm.HomingDeadlineMs)
	}
	if tm.PollMs > 0 && tm.MoveDeadlineMs > 0 && tm.PollMs > tm.MoveDeadlineMs {
		return fmt.Errorf("timing.poll_ms (%d) exceeds timing.move_deadline_ms (%d)", tm.PollMs, tm.MoveDeadlineMs)
	}

	return nil
}
