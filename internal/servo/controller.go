// internal/servo/controller.go
package servo

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tamzrod/modbus-servo/internal/position"
	"github.com/tamzrod/modbus-servo/internal/registers"
	"github.com/tamzrod/modbus-servo/internal/status"
	"github.com/tamzrod/modbus-servo/internal/transport"
)

// Controller sequences commands for one servo drive.
//
// All operations block until they finish or hit their deadline.
// A Controller owns its transport and is not safe for concurrent use:
// callers must serialize commands to the same drive.
type Controller struct {
	dev    Device
	tr     transport.Transport
	timing Timing
	clock  Clock
	log    *slog.Logger
	obs    Observer

	// replaced on every read, never merged
	lastStatus status.Flags
	lastAlarms status.Flags

	cycles uint64
}

// Option configures a Controller.
type Option func(*Controller)

func WithTiming(t Timing) Option {
	return func(c *Controller) { c.timing = t.withDefaults() }
}

func WithClock(clk Clock) Option {
	return func(c *Controller) {
		if clk != nil {
			c.clock = clk
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.obs = o
		}
	}
}

// New binds a controller to an open transport.
func New(dev Device, tr transport.Transport, opts ...Option) *Controller {
	c := &Controller{
		dev:    dev,
		tr:     tr,
		timing: DefaultTiming(),
		clock:  SystemClock{},
		log:    slog.Default(),
		obs:    nopObserver{},
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With(slog.String("servo", dev.Name), slog.String("address", dev.Address))
	return c
}

// ---- accessors ----

func (c *Controller) Device() Device     { return c.dev }
func (c *Controller) Name() string       { return c.dev.Name }
func (c *Controller) Address() string    { return c.dev.Address }
func (c *Controller) ConfigPath() string { return c.dev.ConfigPath }
func (c *Controller) Timing() Timing     { return c.timing }
func (c *Controller) String() string     { return c.dev.String() }

// CycleCount returns the number of moves that ended within tolerance.
func (c *Controller) CycleCount() uint64 { return c.cycles }

// LastStatus returns the status flags decoded by the most recent status read.
func (c *Controller) LastStatus() status.Flags { return c.lastStatus }

// LastAlarms returns the alarm flags decoded by the most recent alarm read.
func (c *Controller) LastAlarms() status.Flags { return c.lastAlarms }

// Close releases the transport. The controller is unusable afterwards.
func (c *Controller) Close() error {
	return c.tr.Close()
}

// ---- queries ----

// ReadStatus reads and decodes the status register.
func (c *Controller) ReadStatus() (status.Flags, error) {
	v, err := c.readRegister(registers.Status)
	if err != nil {
		return nil, err
	}
	c.lastStatus = status.DecodeStatus(v)
	return c.lastStatus, nil
}

// ReadAlarms reads and decodes the alarm register.
func (c *Controller) ReadAlarms() (status.Flags, error) {
	v, err := c.readRegister(registers.Alarm)
	if err != nil {
		return nil, err
	}
	c.lastAlarms = status.DecodeAlarms(v)
	return c.lastAlarms, nil
}

// EncoderCount reads the actual encoder position.
func (c *Controller) EncoderCount() (uint32, error) {
	regs, err := c.readRegisters(registers.EncoderHigh, 2)
	if err != nil {
		return 0, err
	}
	return position.Decode(regs[0], regs[1]), nil
}

// InRange reports whether the encoder is within tolerance of target.
func (c *Controller) InRange(target uint32) (bool, error) {
	in, _, err := c.inRange(target)
	return in, err
}

func (c *Controller) inRange(target uint32) (bool, uint32, error) {
	cur, err := c.EncoderCount()
	if err != nil {
		return false, 0, err
	}
	return position.InRange(cur, target, c.timing.Tolerance), cur, nil
}

// DumpRegisters reads every register of interest and logs it.
// Diagnostic only.
func (c *Controller) DumpRegisters() ([]uint16, error) {
	c.log.Info("dumping registers", "last", registers.DumpLast)

	regs, err := c.readRegisters(0, registers.DumpCount)
	if err != nil {
		return nil, err
	}
	for n, v := range regs {
		c.log.Info("register", "addr", n, "value", v)
	}

	c.log.Info("done reading registers")
	return regs, nil
}

// ---- motor enable ----

// EnableMotor enables the motor unless it already is.
func (c *Controller) EnableMotor() error {
	log, done := c.begin("enable")
	err := c.enableMotor(log)
	done(err)
	return err
}

// DisableMotor disables the motor if it is enabled.
func (c *Controller) DisableMotor() error {
	log, done := c.begin("disable")
	err := c.disableMotor(log)
	done(err)
	return err
}

// ResetAlarmOrFault clears an active alarm or fault and enables the motor.
// It returns ErrFaultNotCleared when the reset attempts are exhausted;
// the motor is then left as it was.
func (c *Controller) ResetAlarmOrFault() error {
	log, done := c.begin("reset")
	err := c.resetAlarmOrFault(log)
	done(err)
	return err
}

func (c *Controller) enableMotor(log *slog.Logger) error {
	st, err := c.ReadStatus()
	if err != nil {
		return err
	}
	if st.Has(status.MotorEnabled) {
		return nil
	}

	log.Info("enabling motor")
	if err := c.command(registers.CmdEnable); err != nil {
		return err
	}
	c.clock.Sleep(c.timing.Settle)
	return nil
}

func (c *Controller) disableMotor(log *slog.Logger) error {
	st, err := c.ReadStatus()
	if err != nil {
		return err
	}
	if !st.Has(status.MotorEnabled) {
		return nil
	}

	log.Info("disabling motor")
	if err := c.command(registers.CmdDisable); err != nil {
		return err
	}
	c.clock.Sleep(c.timing.Settle)
	return nil
}

func (c *Controller) resetAlarmOrFault(log *slog.Logger) error {
	st, err := c.ReadStatus()
	if err != nil {
		return err
	}
	if !faulted(st) {
		return c.enableMotor(log)
	}

	for attempt := 1; attempt <= c.timing.ResetAttempts; attempt++ {
		log.Warn("found alarm or fault, trying to reset",
			"alarm", st.Has(status.Alarm),
			"fault", st.Has(status.Fault),
			"attempt", attempt,
		)

		if err := c.command(registers.CmdReset); err != nil {
			return err
		}
		c.clock.Sleep(c.timing.Settle)

		if st, err = c.ReadStatus(); err != nil {
			return err
		}
		if !faulted(st) {
			log.Info("alarm or fault cleared", "attempts", attempt)
			return c.enableMotor(log)
		}
	}

	alarms, err := c.ReadAlarms()
	if err != nil {
		return err
	}
	log.Warn("unable to reset alarm or fault",
		"attempts", c.timing.ResetAttempts,
		"status", st.String(),
		"alarms", alarms.String(),
	)
	return ErrFaultNotCleared
}

func faulted(st status.Flags) bool {
	return st.Has(status.Alarm) || st.Has(status.Fault)
}

// ---- register IO ----

func (c *Controller) command(cmd registers.Command) error {
	if err := c.tr.WriteRegister(registers.ExecuteCommand, uint16(cmd)); err != nil {
		return fmt.Errorf("servo: %s command: %w", cmd, err)
	}
	return nil
}

func (c *Controller) writeRegister(addr, value uint16) error {
	if err := c.tr.WriteRegister(addr, value); err != nil {
		return fmt.Errorf("servo: write register %d: %w", addr, err)
	}
	return nil
}

func (c *Controller) readRegister(addr uint16) (uint16, error) {
	regs, err := c.readRegisters(addr, 1)
	if err != nil {
		return 0, err
	}
	return regs[0], nil
}

// readRegisters never returns fewer than count values without an error.
func (c *Controller) readRegisters(start, count uint16) ([]uint16, error) {
	regs, err := c.tr.ReadRegisters(start, count)
	if err != nil {
		return nil, fmt.Errorf("servo: read registers %d+%d: %w", start, count, err)
	}
	if err := transport.CheckCount(start, count, regs); err != nil {
		return nil, fmt.Errorf("servo: %w", err)
	}
	return regs, nil
}

// ---- operation bookkeeping ----

// begin tags an operation's log lines and reports its outcome when done is called.
func (c *Controller) begin(op string, attrs ...any) (*slog.Logger, func(error)) {
	log := c.log.With(slog.String("op", op), slog.String("op_id", uuid.NewString()))
	if len(attrs) > 0 {
		log = log.With(attrs...)
	}
	start := c.clock.Now()

	return log, func(err error) {
		elapsed := c.clock.Now().Sub(start)
		outcome := Outcome(err)
		if err != nil {
			log.Debug("operation finished", "outcome", outcome, "elapsed", elapsed, "err", err)
		} else {
			log.Debug("operation finished", "outcome", outcome, "elapsed", elapsed)
		}
		c.obs.ObserveOperation(c.dev.Name, op, outcome, elapsed)
	}
}
