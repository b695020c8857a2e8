// internal/persist/types.go
package persist

import (
	"context"
	"errors"
	"time"

	"github.com/tamzrod/phototrap/internal/frame"
)

// ErrPersistence marks a failed artifact write. The capture loop absorbs it.
var ErrPersistence = errors.New("persist: write failed")

// TimestampLayout names artifacts (YYYYMMDD_HHMMSS).
const TimestampLayout = "20060102_150405"

type Kind string

const (
	KindVideo  Kind = "video"
	KindImages Kind = "images"
)

// Batch is one closed session handed over for persistence.
// Frames are owned by the receiver from the moment of hand-over.
type Batch struct {
	SessionID string
	Start     time.Time // session opened
	Closed    time.Time // session closed (flush time)
	Frames    []frame.Frame
}

// Artifact describes what ended up on disk.
type Artifact struct {
	SessionID string
	Kind      Kind
	Path      string // video file, or image directory
	Frames    int
	Start     time.Time
	Closed    time.Time
}

// Encoder is the codec backend.
type Encoder interface {
	WriteVideo(path string, fps float64, frames []frame.Frame) error
	WriteImage(path string, f frame.Frame) error
}

// Index records artifacts for later browsing. Optional.
type Index interface {
	Record(ctx context.Context, a Artifact) error
}

// Flusher accepts closed sessions. Implemented by Writer (synchronous)
// and Queue (background worker).
type Flusher interface {
	Flush(b Batch) error
}
