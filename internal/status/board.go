// internal/status/board.go
package status

import "sync/atomic"

// Board is a single-writer, many-reader holder for the latest Snapshot.
type Board struct {
	v atomic.Pointer[Snapshot]
}

func NewBoard() *Board {
	b := &Board{}
	b.v.Store(&Snapshot{State: StateIdle})
	return b
}

// Store publishes s. Callers must not mutate s afterwards.
func (b *Board) Store(s Snapshot) {
	b.v.Store(&s)
}

func (b *Board) Load() Snapshot {
	return *b.v.Load()
}
