// internal/remotelight/command.go
package remotelight

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Command runs an external program that switches the light on
// (for example a smart-bulb CLI). Its output is discarded.
type Command struct {
	argv []string
}

func NewCommand(argv []string) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("remotelight command: program required")
	}
	cp := make([]string, len(argv))
	copy(cp, argv)
	return &Command{argv: cp}, nil
}

func (c *Command) Notify(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("remotelight command %s: %w", c.argv[0], err)
	}
	return nil
}
