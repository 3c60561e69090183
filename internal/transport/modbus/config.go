// internal/transport/modbus/config.go
package modbus

import (
	"net"
	"strings"
	"time"
)

// DefaultPort is the Modbus TCP port used when an address carries none.
const DefaultPort = "502"

const rtuScheme = "rtu://"

// Config is minimal transport config.
type Config struct {
	Address string
	UnitID  uint8
	Timeout time.Duration

	// Serial line settings, used for rtu:// addresses only.
	BaudRate uint
	DataBits uint
	Parity   string // "N", "E", "O"
	StopBits uint
}

// IsRTU reports whether addr selects a serial RTU line.
func IsRTU(addr string) bool {
	return strings.HasPrefix(addr, rtuScheme)
}

// TCPEndpoint normalizes a TCP address to host:port.
// An optional tcp:// prefix is stripped and DefaultPort is added when missing.
func TCPEndpoint(addr string) string {
	addr = strings.TrimPrefix(addr, "tcp://")
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(strings.Trim(addr, "[]"), DefaultPort)
}
