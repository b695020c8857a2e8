// internal/remotelight/build.go
package remotelight

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/phototrap/internal/config"
)

// Build picks the notifier for the configured kind.
// Assumes config has already passed validation.
func Build(c cfg.RemoteLightConfig) (Notifier, error) {
	switch c.Kind {
	case "", cfg.RemoteLightNone:
		return Nop{}, nil
	case cfg.RemoteLightModbus:
		return NewModbusCoil(ModbusConfig{
			Endpoint: c.Endpoint,
			UnitID:   c.UnitID,
			Coil:     c.Coil,
			Timeout:  time.Duration(c.TimeoutMs) * time.Millisecond,
		})
	case cfg.RemoteLightCommand:
		return NewCommand(c.Command)
	default:
		return nil, fmt.Errorf("remotelight: unknown kind %q", c.Kind)
	}
}
