// internal/gpio/periph.go
package gpio

import (
	"errors"
	"fmt"
	"sync"

	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// PeriphBoard drives real header pins through periph.io.
type PeriphBoard struct {
	mu       sync.Mutex
	pins     map[string]pgpio.PinIO
	released bool
}

// OpenPeriph initialises host drivers. Fails fast when no GPIO driver loads.
func OpenPeriph() (*PeriphBoard, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("gpio: host init: %w", err)
	}
	return &PeriphBoard{pins: make(map[string]pgpio.PinIO)}, nil
}

func (b *PeriphBoard) Output(name string) (Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return nil, errors.New("gpio: board released")
	}
	if _, taken := b.pins[name]; taken {
		return nil, fmt.Errorf("gpio: pin %s already claimed", name)
	}

	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio: pin %s not found", name)
	}
	if err := p.Out(pgpio.Low); err != nil {
		return nil, outputErr(name, false, err)
	}

	b.pins[name] = p
	return &periphOutput{pin: p}, nil
}

func (b *PeriphBoard) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return nil
	}
	b.released = true

	var errs []error
	for name, p := range b.pins {
		if err := p.Out(pgpio.Low); err != nil {
			errs = append(errs, outputErr(name, false, err))
		}
		if err := p.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("gpio: halt %s: %w", name, err))
		}
	}
	b.pins = nil
	return errors.Join(errs...)
}

type periphOutput struct {
	pin pgpio.PinIO
}

func (o *periphOutput) Name() string { return o.pin.Name() }

func (o *periphOutput) Set(high bool) error {
	if err := o.pin.Out(pgpio.Level(high)); err != nil {
		return outputErr(o.pin.Name(), high, err)
	}
	return nil
}
