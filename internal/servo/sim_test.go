// internal/servo/sim_test.go
package servo

import (
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tamzrod/modbus-servo/internal/position"
	"github.com/tamzrod/modbus-servo/internal/registers"
	"github.com/tamzrod/modbus-servo/internal/status"
)

// ---- simulated drive ----

type writeCall struct {
	addr  uint16
	value uint16
}

// simDrive is an in-memory register bank with hooks standing in for firmware.
type simDrive struct {
	regs   [128]uint16
	writes []writeCall
	reads  []uint16 // start address of every read

	onWrite func(d *simDrive, addr, value uint16)
	onRead  func(d *simDrive, start uint16)

	readErr  error
	writeErr error
	short    bool
	closed   bool
}

func (d *simDrive) ReadRegisters(start, count uint16) ([]uint16, error) {
	d.reads = append(d.reads, start)
	if d.readErr != nil {
		return nil, d.readErr
	}
	if d.onRead != nil {
		d.onRead(d, start)
	}
	if d.short {
		return []uint16{}, nil
	}
	out := make([]uint16, count)
	copy(out, d.regs[start:int(start)+int(count)])
	return out, nil
}

func (d *simDrive) WriteRegister(addr, value uint16) error {
	if d.writeErr != nil {
		return d.writeErr
	}
	d.writes = append(d.writes, writeCall{addr: addr, value: value})
	d.regs[addr] = value
	if d.onWrite != nil {
		d.onWrite(d, addr, value)
	}
	return nil
}

func (d *simDrive) Close() error {
	d.closed = true
	return nil
}

func (d *simDrive) setStatus(names ...string) {
	d.regs[registers.Status] = bits(names...)
}

func (d *simDrive) has(name string) bool {
	return status.DecodeStatus(d.regs[registers.Status]).Has(name)
}

func (d *simDrive) setEncoder(p uint32) {
	d.regs[registers.EncoderHigh], d.regs[registers.EncoderLow] = position.Encode(p)
}

// commands returns every value written to the execute-command register.
func (d *simDrive) commands() []registers.Command {
	var out []registers.Command
	for _, w := range d.writes {
		if w.addr == registers.ExecuteCommand {
			out = append(out, registers.Command(w.value))
		}
	}
	return out
}

func (d *simDrive) count(cmd registers.Command) int {
	n := 0
	for _, c := range d.commands() {
		if c == cmd {
			n++
		}
	}
	return n
}

// bits builds a status register value from flag names.
func bits(names ...string) uint16 {
	var v uint16
	for _, n := range names {
		for i, s := range status.StatusNames {
			if s == n {
				v |= 1 << uint(i)
			}
		}
	}
	return v
}

// ---- fake clock ----

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

// ---- observer mock ----

type mockObserver struct {
	mock.Mock
}

func (m *mockObserver) ObserveOperation(servo, op, outcome string, elapsed time.Duration) {
	m.Called(servo, op, outcome, elapsed)
}

func (m *mockObserver) ObserveCycle(servo string, cycles uint64) {
	m.Called(servo, cycles)
}

// ---- helpers ----

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(d *simDrive, clk *fakeClock, opts ...Option) *Controller {
	base := []Option{
		WithClock(clk),
		WithLogger(discardLogger()),
	}
	return New(Device{Name: "x_axis", Address: "sim", ConfigPath: "resources/gantry.yaml"}, d, append(base, opts...)...)
}
