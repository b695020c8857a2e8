// internal/remotelight/modbus.go
package remotelight

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

const coilOn uint16 = 0xFF00

// coilWriter is the exact contract ModbusCoil uses.
type coilWriter interface {
	WriteSingleCoil(address, value uint16) ([]byte, error)
}

// ModbusCoil drives a relay coil on a Modbus TCP I/O module wired to the light.
// It serializes requests because the goburrow handler is not safe for concurrent use.
// The connection is opened per notification; alarms are rare.
type ModbusCoil struct {
	mu  sync.Mutex
	cfg ModbusConfig

	// dial is replaced in tests.
	dial func(cfg ModbusConfig) (coilWriter, func() error, error)
}

type ModbusConfig struct {
	Endpoint string
	UnitID   uint8
	Coil     uint16
	Timeout  time.Duration
}

func NewModbusCoil(cfg ModbusConfig) (*ModbusCoil, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("remotelight modbus: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}
	return &ModbusCoil{cfg: cfg, dial: dialTCP}, nil
}

func (m *ModbusCoil) Notify(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	cli, closeFn, err := m.dial(m.cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	done := make(chan error, 1)
	go func() {
		_, err := cli.WriteSingleCoil(m.cfg.Coil, coilOn)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func dialTCP(cfg ModbusConfig) (coilWriter, func() error, error) {
	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, nil, err
	}
	return modbus.NewClient(h), h.Close, nil
}
