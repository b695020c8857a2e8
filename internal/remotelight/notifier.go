// internal/remotelight/notifier.go
package remotelight

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Notifier switches the remote light on.
// Implementations block until the device answers or ctx ends.
type Notifier interface {
	Notify(ctx context.Context) error
}

// Dispatch fires n on its own goroutine and returns immediately.
// Best effort: the outcome is logged and nobody waits for it.
func Dispatch(n Notifier, timeout time.Duration, log zerolog.Logger) {
	if n == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := n.Notify(ctx); err != nil {
			log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("remote light notify failed")
			return
		}
		log.Debug().Dur("elapsed", time.Since(start)).Msg("remote light notified")
	}()
}

// Nop is used when no remote light is configured.
type Nop struct{}

func (Nop) Notify(context.Context) error { return nil }
