// internal/iolink/client.go
package iolink

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// Client is a single Modbus TCP connection to the controller I/O link.
// It serializes requests: the status poller, the group feedback readers
// and the digital feedback writer all share it.
type Client struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// New creates a connected client. The handler reconnects on its own after
// transport death, on the next request.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("iolink: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("iolink: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close closes the TCP connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// ---- reads ----

func (c *Client) ReadDiscreteInputs(addr, qty uint16) ([]bool, error) {
	if qty == 0 {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.client.ReadDiscreteInputs(addr, qty)
	if err != nil {
		return nil, err
	}
	return UnpackBits(p, int(qty)), nil
}

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackChecked(p, qty)
}

func (c *Client) ReadInputRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.client.ReadInputRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	return unpackChecked(p, qty)
}

// ---- writes ----

// WriteCoil sets one output coil.
func (c *Client) WriteCoil(addr uint16, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var v uint16
	if on {
		v = 0xFF00
	}
	_, err := c.client.WriteSingleCoil(addr, v)
	return err
}

func unpackChecked(p []byte, qty uint16) ([]uint16, error) {
	if len(p) < int(qty)*2 {
		return nil, fmt.Errorf("iolink: short register payload: got %d bytes want %d", len(p), int(qty)*2)
	}
	return UnpackRegisters(p[:int(qty)*2]), nil
}
