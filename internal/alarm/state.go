// internal/alarm/state.go
package alarm

import "time"

// State is one activation: when it started and how long it may last.
// At most one State exists at a time per Controller.
type State struct {
	ActivatedAt time.Time
	Budget      time.Duration
}

// Expired reports whether the budget has run out at now.
func (s State) Expired(now time.Time) bool {
	return now.Sub(s.ActivatedAt) >= s.Budget
}
