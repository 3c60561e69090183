// internal/transport/modbus/rtu.go
package modbus

import (
	"errors"
	"fmt"
	"sync"

	smodbus "github.com/simonvetter/modbus"

	"github.com/tamzrod/modbus-servo/internal/transport"
)

// RTUClient is a Modbus RTU serial line to one drive.
type RTUClient struct {
	mu     sync.Mutex
	client *smodbus.ModbusClient
}

// NewRTUClient opens a serial line described by an rtu:// address.
func NewRTUClient(cfg Config) (*RTUClient, error) {
	if !IsRTU(cfg.Address) {
		return nil, fmt.Errorf("modbus rtu: address %q is not an rtu:// url", cfg.Address)
	}

	mc, err := smodbus.NewClient(&smodbus.ClientConfiguration{
		URL:      cfg.Address,
		Speed:    cfg.BaudRate,
		DataBits: cfg.DataBits,
		Parity:   parity(cfg.Parity),
		StopBits: cfg.StopBits,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("modbus rtu: configure %s: %w", cfg.Address, err)
	}

	if err := mc.Open(); err != nil {
		return nil, fmt.Errorf("modbus rtu: open %s: %w", cfg.Address, err)
	}

	if err := mc.SetUnitId(cfg.UnitID); err != nil {
		_ = mc.Close()
		return nil, fmt.Errorf("modbus rtu: unit id %d: %w", cfg.UnitID, err)
	}

	return &RTUClient{client: mc}, nil
}

func (c *RTUClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ---- transport.Transport ----

func (c *RTUClient) ReadRegisters(start, count uint16) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil, errors.New("modbus rtu: not connected")
	}

	regs, err := c.client.ReadRegisters(start, count, smodbus.HOLDING_REGISTER)
	if err != nil {
		return nil, err
	}
	if err := transport.CheckCount(start, count, regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (c *RTUClient) WriteRegister(addr, value uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return errors.New("modbus rtu: not connected")
	}
	return c.client.WriteRegister(addr, value)
}

func parity(p string) uint {
	switch p {
	case "E", "e":
		return smodbus.PARITY_EVEN
	case "O", "o":
		return smodbus.PARITY_ODD
	default:
		return smodbus.PARITY_NONE
	}
}
