// internal/status/encode.go
package status

import "time"

// View is the wire form of a Snapshot.
type View struct {
	State          string  `json:"state"`
	SessionID      string  `json:"session_id,omitempty"`
	MotionCount    int     `json:"motion_count"`
	BufferedFrames int     `json:"buffered_frames"`
	AlarmActive    bool    `json:"alarm_active"`
	LastMotion     string  `json:"last_motion,omitempty"`
	SinceMotionSec float64 `json:"since_motion_sec,omitempty"`
	FramesSeen     uint64  `json:"frames_seen"`
	SessionsClosed uint64  `json:"sessions_closed"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// Encode converts a Snapshot into its wire view relative to now.
// No IO. No side effects.
func Encode(s Snapshot, now time.Time) View {
	v := View{
		State:          s.State,
		SessionID:      s.SessionID,
		MotionCount:    s.MotionCount,
		BufferedFrames: s.BufferedFrames,
		AlarmActive:    s.AlarmActive,
		FramesSeen:     s.FramesSeen,
		SessionsClosed: s.SessionsClosed,
	}
	if !s.LastMotion.IsZero() {
		v.LastMotion = s.LastMotion.Format(time.RFC3339Nano)
		v.SinceMotionSec = now.Sub(s.LastMotion).Seconds()
	}
	if !s.UpdatedAt.IsZero() {
		v.UpdatedAt = s.UpdatedAt.Format(time.RFC3339Nano)
	}
	return v
}
