// internal/transport/modbus/open.go
package modbus

import "github.com/tamzrod/modbus-servo/internal/transport"

// Open connects to the drive at cfg.Address.
// rtu:// addresses open a serial line; anything else is Modbus TCP.
func Open(cfg Config) (transport.Transport, error) {
	if IsRTU(cfg.Address) {
		return NewRTUClient(cfg)
	}
	return NewTCPClient(cfg)
}
