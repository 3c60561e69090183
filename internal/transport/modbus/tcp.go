// internal/transport/modbus/tcp.go
package modbus

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/modbus-servo/internal/transport"
)

// TCPClient is a single Modbus TCP connection to one drive.
// It serializes requests on the shared handler.
type TCPClient struct {
	mu       sync.Mutex
	endpoint string
	handler  *modbus.TCPClientHandler
	client   modbus.Client
}

// NewTCPClient creates a connected Modbus TCP client.
func NewTCPClient(cfg Config) (*TCPClient, error) {
	if cfg.Address == "" {
		return nil, errors.New("modbus tcp: address required")
	}

	endpoint := TCPEndpoint(cfg.Address)

	h := modbus.NewTCPClientHandler(endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus tcp: connect %s: %w", endpoint, err)
	}

	return &TCPClient{
		endpoint: endpoint,
		handler:  h,
		client:   modbus.NewClient(h),
	}, nil
}

// Endpoint returns the normalized host:port this client is connected to.
func (c *TCPClient) Endpoint() string {
	return c.endpoint
}

// Close closes the TCP connection.
func (c *TCPClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// ---- transport.Transport ----

func (c *TCPClient) ReadRegisters(start, count uint16) ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := c.client.ReadHoldingRegisters(start, count)
	if err != nil {
		return nil, err
	}
	if len(raw)%2 != 0 {
		return nil, errors.New("modbus tcp: read-registers payload not even")
	}

	regs := unpackRegisters(raw)
	if err := transport.CheckCount(start, count, regs); err != nil {
		return nil, err
	}
	return regs[:count], nil
}

func (c *TCPClient) WriteRegister(addr, value uint16) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.client.WriteSingleRegister(addr, value)
	return err
}

// ---- helpers (pure geometry) ----

// unpackRegisters decodes big-endian register payload bytes.
func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
