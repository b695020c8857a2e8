// internal/capture/types.go
package capture

import (
	"errors"
	"time"

	"github.com/tamzrod/phototrap/internal/frame"
)

var (
	// ErrAcquisition wraps FrameSource failures. Fatal to the loop.
	ErrAcquisition = errors.New("capture: frame acquisition failed")
	// ErrDetection wraps detector failures. Fatal to the loop.
	ErrDetection = errors.New("capture: motion detection failed")
)

// Source supplies frames on demand.
// Capture returns a frame the caller owns; the source must not reuse its buffer.
type Source interface {
	Start() error
	Capture() (frame.Frame, error)
	Stop() error
}

// Detector compares consecutive frames.
type Detector interface {
	Detect(prev, cur frame.Frame) (bool, error)
}

// Alarm is the subset of the alarm controller the loop drives.
type Alarm interface {
	Activate(now time.Time) bool
	Deactivate()
	Expire(now time.Time) bool
	Active() bool
}

// Publisher receives every captured frame for live viewing.
type Publisher interface {
	Publish(f frame.Frame)
}

// Config is the minimal runtime config the orchestrator needs.
type Config struct {
	Interval     time.Duration // 1/fps
	Threshold    int           // consecutive motion detections to open a session
	Cooldown     time.Duration // quiescence after last motion before closing
	AlarmEnabled bool
}
