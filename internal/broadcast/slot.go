// internal/broadcast/slot.go
package broadcast

import (
	"sync"

	"github.com/tamzrod/phototrap/internal/frame"
)

// Slot holds the most recently published frame for live viewers.
//
// Semantics:
//   - Overwrite: Publish replaces whatever is there, no history, no queue.
//   - Non-blocking: the lock is held only for a pointer swap (Publish) or a copy (Snapshot).
//   - Isolation: both sides copy, so neither the writer nor any reader can observe
//     another party's later mutation.
type Slot struct {
	mu        sync.Mutex
	cur       frame.Frame
	has       bool
	published uint64
}

func NewSlot() *Slot {
	return &Slot{}
}

// Publish stores a copy of f. The copy is made outside the lock.
func (s *Slot) Publish(f frame.Frame) {
	c := f.Clone()

	s.mu.Lock()
	s.cur = c
	s.has = true
	s.published++
	s.mu.Unlock()
}

// Snapshot returns a copy of the latest frame, or false before the first Publish.
func (s *Slot) Snapshot() (frame.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.has {
		return frame.Frame{}, false
	}
	return s.cur.Clone(), true
}

// Published counts Publish calls; pollers compare it to skip unchanged frames.
func (s *Slot) Published() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.published
}
