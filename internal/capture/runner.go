// internal/capture/runner.go
package capture

import (
	"context"
	"fmt"
	"time"
)

// Run primes with one frame and then ticks at the configured cadence until
// ctx is done (nil) or acquisition/detection fails (wrapped error).
// The stop signal is checked at the top of every iteration; a tick in
// progress always completes.
func (o *Orchestrator) Run(ctx context.Context, src Source) error {
	first, err := src.Capture()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisition, err)
	}
	o.Prime(first)

	ticker := time.NewTicker(o.cfg.Interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		f, err := src.Capture()
		if err != nil {
			o.d.Log.Error().Err(err).Msg("frame acquisition failed")
			return fmt.Errorf("%w: %w", ErrAcquisition, err)
		}
		if err := o.Tick(f); err != nil {
			o.d.Log.Error().Err(err).Msg("motion detection failed")
			return err
		}
	}
}
