// internal/gpio/gpio.go
package gpio

import (
	"errors"
	"fmt"
)

// ErrOutput marks a failed pin write (siren, LED, night light).
// Callers on teardown paths log it and keep going.
var ErrOutput = errors.New("gpio: output write failed")

// Output is one driven digital line.
// Exactly one component owns each Output.
type Output interface {
	Name() string
	Set(high bool) error
}

// Board owns pin reservation for the process.
type Board interface {
	// Output claims a pin by name and drives it low.
	Output(name string) (Output, error)
	// Release drives every claimed pin low and gives the pins back.
	// Only the first call does anything.
	Release() error
}

func outputErr(name string, high bool, err error) error {
	return fmt.Errorf("%w: pin=%s high=%t: %v", ErrOutput, name, high, err)
}
