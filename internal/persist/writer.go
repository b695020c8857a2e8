// internal/persist/writer.go
package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const indexTimeout = 2 * time.Second

// Writer flushes batches synchronously on the caller's goroutine.
type Writer struct {
	cfg   Config
	enc   Encoder
	index Index
	log   zerolog.Logger
}

func NewWriter(cfg Config, enc Encoder, index Index, log zerolog.Logger) (*Writer, error) {
	if enc == nil {
		return nil, errors.New("persist: encoder required")
	}
	if cfg.MinFramesForVideo < 1 {
		return nil, errors.New("persist: min frames for video must be >= 1")
	}
	if cfg.FPS <= 0 {
		return nil, errors.New("persist: fps must be > 0")
	}
	return &Writer{cfg: cfg, enc: enc, index: index, log: log}, nil
}

// Flush implements Flusher.
func (w *Writer) Flush(b Batch) error {
	_, err := w.Write(b)
	return err
}

// Write persists one batch. An empty batch is a no-op.
// Image sequences are written best-effort: one bad frame does not stop the rest.
func (w *Writer) Write(b Batch) (Artifact, error) {
	if len(b.Frames) == 0 {
		return Artifact{}, nil
	}

	plan := BuildPlan(w.cfg, b)
	a := Artifact{
		SessionID: b.SessionID,
		Kind:      plan.Kind,
		Frames:    len(b.Frames),
		Start:     b.Start,
		Closed:    b.Closed,
	}

	if err := os.MkdirAll(plan.Dir, 0o755); err != nil {
		return a, fmt.Errorf("%w: mkdir %s: %w", ErrPersistence, plan.Dir, err)
	}

	switch plan.Kind {
	case KindVideo:
		a.Path = plan.Files[0]
		w.log.Info().
			Str("session", b.SessionID).
			Int("frames", len(b.Frames)).
			Float64("fps", w.cfg.FPS).
			Str("path", a.Path).
			Msg("saving motion video")
		if err := w.enc.WriteVideo(a.Path, w.cfg.FPS, b.Frames); err != nil {
			return a, fmt.Errorf("%w: video %s: %w", ErrPersistence, a.Path, err)
		}

	case KindImages:
		a.Path = plan.Dir
		w.log.Info().
			Str("session", b.SessionID).
			Int("frames", len(b.Frames)).
			Int("min_frames_for_video", w.cfg.MinFramesForVideo).
			Str("dir", a.Path).
			Msg("clip too short for video, saving frames as images")

		var errs []error
		for i, f := range b.Frames {
			if err := w.enc.WriteImage(plan.Files[i], f); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", plan.Files[i], err))
			}
		}
		if len(errs) > 0 {
			return a, fmt.Errorf("%w: %d/%d images: %w", ErrPersistence, len(errs), len(b.Frames), errors.Join(errs...))
		}
	}

	w.record(a)
	w.log.Info().Str("kind", string(a.Kind)).Str("path", a.Path).Msg("motion artifact saved")
	return a, nil
}

func (w *Writer) record(a Artifact) {
	if w.index == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if err := w.index.Record(ctx, a); err != nil {
		w.log.Warn().Err(err).Str("path", a.Path).Msg("artifact index update failed")
	}
}
