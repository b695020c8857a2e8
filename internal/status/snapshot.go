// internal/status/snapshot.go
package status

import "time"

// Snapshot is exactly what the capture loop exposes about itself.
// It contains no logic and no memory of the past beyond counters.
type Snapshot struct {
	State          string
	SessionID      string
	MotionCount    int
	BufferedFrames int
	AlarmActive    bool
	LastMotion     time.Time
	FramesSeen     uint64
	SessionsClosed uint64
	UpdatedAt      time.Time
}
