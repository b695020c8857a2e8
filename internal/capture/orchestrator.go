// internal/capture/orchestrator.go
package capture

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/phototrap/internal/frame"
	"github.com/tamzrod/phototrap/internal/persist"
	"github.com/tamzrod/phototrap/internal/status"
)

// Deps are the collaborators. Alarm, Broadcast and Status are optional.
type Deps struct {
	Detector  Detector
	Flusher   persist.Flusher
	Alarm     Alarm
	Broadcast Publisher
	Status    *status.Board
	Now       func() time.Time
	Log       zerolog.Logger
}

// Orchestrator is the capture state machine.
//
// It is single-goroutine: Tick, Prime, Run and Close must not be called
// concurrently. The open session's buffer is never shared until hand-over.
type Orchestrator struct {
	cfg Config
	d   Deps

	prev       frame.Frame
	primed     bool
	motion     int
	lastMotion time.Time
	sess       *session

	seen   uint64
	closed uint64
}

// New creates an orchestrator with immutable config.
func New(cfg Config, d Deps) (*Orchestrator, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("capture: interval must be > 0")
	}
	if cfg.Threshold < 1 {
		return nil, errors.New("capture: threshold must be >= 1")
	}
	if cfg.Cooldown <= 0 {
		return nil, errors.New("capture: cooldown must be > 0")
	}
	if d.Detector == nil {
		return nil, errors.New("capture: detector required")
	}
	if d.Flusher == nil {
		return nil, errors.New("capture: flusher required")
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Orchestrator{cfg: cfg, d: d}, nil
}

// Phase reports the current state.
func (o *Orchestrator) Phase() Phase {
	switch {
	case o.sess != nil:
		return PhaseOpen
	case o.motion > 0:
		return PhaseBuffering
	default:
		return PhaseIdle
	}
}

// Prime sets the reference frame for the first comparison.
func (o *Orchestrator) Prime(first frame.Frame) {
	o.prev = first
	o.primed = true
	o.seen++
	o.publish(first, o.d.Now())
}

// Tick performs exactly one loop iteration on an already-acquired frame.
// All-or-nothing: a detection failure aborts before any state changes.
func (o *Orchestrator) Tick(cur frame.Frame) error {
	if !o.primed {
		o.Prime(cur)
		return nil
	}

	now := o.d.Now()

	motion, err := o.d.Detector.Detect(o.prev, cur)
	if err != nil {
		return fmt.Errorf("%w: frame %d: %w", ErrDetection, cur.Seq, err)
	}

	o.seen++

	// ---- session update ----

	if motion {
		o.motion++
		o.lastMotion = now

		switch {
		case o.sess != nil:
			o.sess.add(cur)

		case o.motion >= o.cfg.Threshold:
			o.sess = newSession(now, cur)
			o.d.Log.Info().
				Str("session", o.sess.id).
				Int("motion_count", o.motion).
				Msg("motion confirmed, session opened")

			if o.cfg.AlarmEnabled && o.d.Alarm != nil && !o.d.Alarm.Active() {
				o.d.Alarm.Activate(now)
			}

		default:
			o.d.Log.Debug().Int("motion_count", o.motion).Msg("motion buffering")
		}
	} else if o.sess != nil && now.Sub(o.lastMotion) >= o.cfg.Cooldown {
		o.closeSession(now, "cooldown")
	}

	// ---- alarm budget ----

	if o.d.Alarm != nil {
		o.d.Alarm.Expire(now)
	}

	o.publish(cur, now)
	o.prev = cur
	return nil
}

// Close flushes an open session and silences the alarm.
// Called once the loop has stopped.
func (o *Orchestrator) Close() {
	now := o.d.Now()
	if o.sess != nil {
		o.closeSession(now, "shutdown")
	}
	if o.d.Alarm != nil {
		o.d.Alarm.Deactivate()
	}
	o.motion = 0

	if o.d.Status != nil {
		s := o.snapshot(now)
		s.State = status.StateStopped
		o.d.Status.Store(s)
	}
}

// closeSession hands the buffer to persistence and resets to Idle.
// Persistence errors are absorbed: state is cleared either way.
func (o *Orchestrator) closeSession(now time.Time, reason string) {
	s := o.sess
	o.sess = nil
	o.motion = 0
	o.closed++

	b := s.batch(now)
	o.d.Log.Info().
		Str("session", s.id).
		Str("reason", reason).
		Int("frames", len(b.Frames)).
		Dur("duration", now.Sub(s.start)).
		Msg("session closed")

	if err := o.d.Flusher.Flush(b); err != nil {
		o.d.Log.Warn().Err(err).Str("session", s.id).Msg("session flush failed, artifact lost")
	}

	if o.d.Alarm != nil {
		o.d.Alarm.Deactivate()
	}
}

func (o *Orchestrator) publish(cur frame.Frame, now time.Time) {
	if o.d.Broadcast != nil {
		o.d.Broadcast.Publish(cur)
	}
	if o.d.Status != nil {
		o.d.Status.Store(o.snapshot(now))
	}
}

func (o *Orchestrator) snapshot(now time.Time) status.Snapshot {
	s := status.Snapshot{
		State:          o.Phase().String(),
		MotionCount:    o.motion,
		LastMotion:     o.lastMotion,
		FramesSeen:     o.seen,
		SessionsClosed: o.closed,
		UpdatedAt:      now,
	}
	if o.sess != nil {
		s.SessionID = o.sess.id
		s.BufferedFrames = len(o.sess.frames)
	}
	if o.d.Alarm != nil {
		s.AlarmActive = o.d.Alarm.Active()
	}
	return s
}
