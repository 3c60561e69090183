// internal/transport/transport.go
package transport

import (
	"errors"
	"fmt"
)

// Transport is the register-level contract the servo controller depends on.
// Framing, CRC and connection timeouts belong to the implementation.
type Transport interface {
	ReadRegisters(start, count uint16) ([]uint16, error)
	WriteRegister(addr, value uint16) error
	Close() error
}

// ErrShortRead is returned when a device answers with fewer registers than requested.
var ErrShortRead = errors.New("transport: short register read")

// CheckCount verifies that a read returned exactly the requested number of registers.
func CheckCount(start, count uint16, regs []uint16) error {
	if len(regs) < int(count) {
		return fmt.Errorf("%w: start=%d want=%d got=%d", ErrShortRead, start, count, len(regs))
	}
	return nil
}
