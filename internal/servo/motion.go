// internal/servo/motion.go
package servo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tamzrod/modbus-servo/internal/position"
	"github.com/tamzrod/modbus-servo/internal/registers"
	"github.com/tamzrod/modbus-servo/internal/status"
)

// MoveParams describes one absolute move.
type MoveParams struct {
	Acceleration uint16
	Deceleration uint16
	Velocity     uint16
	Target       uint32 // absolute encoder position
}

// HomeServo runs the homing procedure and waits for it to finish.
//
// An alarm raised while homing is reset and homing is restarted; the
// homing deadline still applies to the whole procedure. On
// ErrHomingTimeout the drive may be left mid-homing.
func (c *Controller) HomeServo() error {
	log, done := c.begin("home")
	err := c.homeServo(log)
	done(err)
	return err
}

func (c *Controller) homeServo(log *slog.Logger) error {
	if err := c.resetAlarmOrFault(log); err != nil {
		return err
	}

	log.Info("starting to home servo")
	if err := c.startHoming(); err != nil {
		return err
	}

	start := c.clock.Now()
	for {
		st, err := c.ReadStatus()
		if err != nil {
			return err
		}
		if !st.Has(status.Homing) {
			break
		}
		log.Debug("homing", "status", st.String())

		if st.Has(status.Alarm) {
			log.Warn("got alarm during homing, trying to reset")
			if err := c.resetAlarmOrFault(log); err != nil && !errors.Is(err, ErrFaultNotCleared) {
				return err
			}
			log.Warn("restarting homing procedure")
			if err := c.startHoming(); err != nil {
				return err
			}
		}

		if elapsed := c.clock.Now().Sub(start); elapsed > c.timing.HomingDeadline {
			log.Warn("unable to finish homing procedure", "elapsed", elapsed, "deadline", c.timing.HomingDeadline)
			return ErrHomingTimeout
		}
		c.clock.Sleep(c.timing.Poll)
	}

	log.Info("finished homing servo")
	return nil
}

// Initialize selects homing mode and issues the home command without
// waiting for completion. Used for first bring-up of a drive.
func (c *Controller) Initialize() error {
	log, done := c.begin("initialize")
	log.Info("initializing servo")
	err := c.startHoming()
	done(err)
	return err
}

func (c *Controller) startHoming() error {
	if err := c.writeRegister(registers.ModeSelect, registers.ModeHoming); err != nil {
		return err
	}
	c.clock.Sleep(c.timing.Settle)

	if err := c.command(registers.CmdHome); err != nil {
		return err
	}
	c.clock.Sleep(c.timing.Settle)
	return nil
}

// MoveServo moves to p.Target and waits for the move to finish.
//
// A target already within tolerance is a no-op. A move ending outside
// the tolerance window returns a *ToleranceError; if the move deadline
// fired as well the error also matches ErrMoveTimeout. Only moves that
// end within tolerance increment the cycle count.
func (c *Controller) MoveServo(p MoveParams) error {
	log, done := c.begin("move", slog.Uint64("target", uint64(p.Target)))
	err := c.moveServo(log, p)
	done(err)
	return err
}

func (c *Controller) moveServo(log *slog.Logger, p MoveParams) error {
	in, cur, err := c.inRange(p.Target)
	if err != nil {
		return err
	}
	if in {
		log.Debug("already in position", "position", cur)
		return nil
	}

	high, low := position.Encode(p.Target)
	log.Info("moving to position", "position", cur, "distance_high", high, "distance_low", low)

	if err := c.resetAlarmOrFault(log); err != nil {
		return err
	}

	params := []struct {
		addr  uint16
		value uint16
	}{
		{registers.Acceleration, p.Acceleration},
		{registers.Deceleration, p.Deceleration},
		{registers.Velocity, p.Velocity},
		{registers.DistanceHigh, high},
		{registers.DistanceLow, low},
	}
	for _, w := range params {
		if err := c.writeRegister(w.addr, w.value); err != nil {
			return err
		}
	}
	c.clock.Sleep(c.timing.Latch)

	if log.Enabled(context.Background(), slog.LevelDebug) {
		regs, err := c.readRegisters(registers.DistanceHigh, 2)
		if err != nil {
			return err
		}
		log.Debug("distance latched", "distance_high", regs[0], "distance_low", regs[1])
	}

	if err := c.command(registers.CmdMove); err != nil {
		return err
	}
	c.clock.Sleep(c.timing.Command)

	timedOut := false
	start := c.clock.Now()
	for {
		st, err := c.ReadStatus()
		if err != nil {
			return err
		}
		if !st.Has(status.Moving) {
			break
		}

		// a fault during motion must not stall the poll
		if err := c.resetAlarmOrFault(log); err != nil && !errors.Is(err, ErrFaultNotCleared) {
			return err
		}

		if st, err = c.ReadStatus(); err != nil {
			return err
		}
		if st.Has(status.InPosition) {
			break
		}

		if elapsed := c.clock.Now().Sub(start); elapsed > c.timing.MoveDeadline {
			log.Error("unable to finish requested move", "elapsed", elapsed, "deadline", c.timing.MoveDeadline)
			timedOut = true
			break
		}
		c.clock.Sleep(c.timing.Poll)
	}

	in, cur, err = c.inRange(p.Target)
	if err != nil {
		return err
	}
	if !in {
		log.Warn("unable to reach requested position", "requested", p.Target, "actual", cur)
		terr := &ToleranceError{Requested: p.Target, Actual: cur, Tolerance: c.timing.Tolerance}
		if timedOut {
			return errors.Join(ErrMoveTimeout, terr)
		}
		return terr
	}

	c.cycles++
	c.obs.ObserveCycle(c.dev.Name, c.cycles)
	log.Info("move finished", "position", cur, "cycles", c.cycles)
	return nil
}

// Shutdown issues the disconnect handshake so another client can take
// the drive. It does not close the transport; see Close.
func (c *Controller) Shutdown() error {
	log, done := c.begin("shutdown")
	err := c.shutdown(log)
	done(err)
	return err
}

func (c *Controller) shutdown(log *slog.Logger) error {
	log.Info("issuing disconnect commands")

	for _, mode := range []uint16{registers.ModeHoming, registers.ModeRelease} {
		if err := c.writeRegister(registers.ModeSelect, mode); err != nil {
			return err
		}
		c.clock.Sleep(c.timing.Command)

		if err := c.command(registers.CmdDisconnect); err != nil {
			return err
		}
		c.clock.Sleep(c.timing.Command)
	}

	log.Info("done disconnecting")
	return nil
}
