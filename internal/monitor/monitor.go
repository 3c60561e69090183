// internal/monitor/monitor.go
package monitor

import (
	"errors"
	"time"

	"github.com/tamzrod/modbus-servo/internal/status"
)

// Source abstracts the drive reads the monitor needs.
// *servo.Controller satisfies it.
type Source interface {
	Name() string
	ReadStatus() (status.Flags, error)
	ReadAlarms() (status.Flags, error)
	EncoderCount() (uint32, error)
}

// Config is the minimal runtime config the monitor needs.
type Config struct {
	Interval time.Duration
}

// Monitor is a dumb, clock-driven reader.
// It never writes to the drive.
type Monitor struct {
	cfg Config
	src Source
	now func() time.Time
}

// New creates a monitor with immutable config.
func New(cfg Config, src Source) (*Monitor, error) {
	if src == nil {
		return nil, errors.New("monitor: source required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("monitor: interval must be > 0")
	}
	return &Monitor{cfg: cfg, src: src, now: time.Now}, nil
}

// PollOnce performs exactly one observation.
// All-or-nothing: any failure aborts the observation.
func (m *Monitor) PollOnce() status.Snapshot {
	snap := status.Snapshot{
		Servo: m.src.Name(),
		At:    m.now(),
	}

	st, err := m.src.ReadStatus()
	if err != nil {
		snap.Err = err
		return snap
	}
	alarms, err := m.src.ReadAlarms()
	if err != nil {
		snap.Err = err
		return snap
	}
	pos, err := m.src.EncoderCount()
	if err != nil {
		snap.Err = err
		return snap
	}

	// Commit only if all reads succeeded
	snap.Status = st
	snap.Alarms = alarms
	snap.Position = pos
	return snap
}
