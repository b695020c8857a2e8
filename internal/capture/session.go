// internal/capture/session.go
package capture

import (
	"time"

	"github.com/google/uuid"

	"github.com/tamzrod/phototrap/internal/frame"
	"github.com/tamzrod/phototrap/internal/persist"
	"github.com/tamzrod/phototrap/internal/status"
)

// Phase is the orchestrator's position in the capture state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBuffering
	PhaseOpen
)

func (p Phase) String() string {
	switch p {
	case PhaseBuffering:
		return status.StateBuffering
	case PhaseOpen:
		return status.StateOpen
	default:
		return status.StateIdle
	}
}

// session is one open detection episode.
// Only motion-positive frames are ever appended.
type session struct {
	id     string
	start  time.Time
	frames []frame.Frame
}

// newSession starts with just the triggering frame; pre-roll is not kept.
func newSession(start time.Time, trigger frame.Frame) *session {
	return &session{
		id:     uuid.NewString(),
		start:  start,
		frames: []frame.Frame{trigger},
	}
}

func (s *session) add(f frame.Frame) {
	s.frames = append(s.frames, f)
}

// batch hands the frames over; the session must not be used afterwards.
func (s *session) batch(closed time.Time) persist.Batch {
	return persist.Batch{
		SessionID: s.id,
		Start:     s.start,
		Closed:    closed,
		Frames:    s.frames,
	}
}
