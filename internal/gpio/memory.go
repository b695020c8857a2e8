// internal/gpio/memory.go
package gpio

import (
	"errors"
	"fmt"
	"sync"
)

// Write is one recorded pin transition.
type Write struct {
	Pin  string
	High bool
}

// MemoryBoard records writes instead of touching hardware.
// Used by tests and -dev runs.
type MemoryBoard struct {
	mu       sync.Mutex
	levels   map[string]bool
	writes   []Write
	failing  map[string]bool
	released bool
	releases int
}

func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{
		levels:  make(map[string]bool),
		failing: make(map[string]bool),
	}
}

func (b *MemoryBoard) Output(name string) (Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return nil, errors.New("gpio: board released")
	}
	if _, taken := b.levels[name]; taken {
		return nil, fmt.Errorf("gpio: pin %s already claimed", name)
	}
	b.levels[name] = false
	return &memoryOutput{board: b, name: name}, nil
}

func (b *MemoryBoard) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releases++
	if b.released {
		return nil
	}
	b.released = true
	for name := range b.levels {
		b.levels[name] = false
	}
	return nil
}

// Fail makes every later write to pin return an error.
func (b *MemoryBoard) Fail(pin string, fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing[pin] = fail
}

// Level reports the last level written to pin.
func (b *MemoryBoard) Level(pin string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.levels[pin]
}

// AnyHigh reports whether any claimed pin is currently driven high.
func (b *MemoryBoard) AnyHigh() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, high := range b.levels {
		if high {
			return true
		}
	}
	return false
}

// Writes returns a copy of the write log.
func (b *MemoryBoard) Writes() []Write {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Write, len(b.writes))
	copy(out, b.writes)
	return out
}

func (b *MemoryBoard) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.released
}

type memoryOutput struct {
	board *MemoryBoard
	name  string
}

func (o *memoryOutput) Name() string { return o.name }

func (o *memoryOutput) Set(high bool) error {
	b := o.board
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failing[o.name] {
		return outputErr(o.name, high, errors.New("injected failure"))
	}
	if b.released {
		return outputErr(o.name, high, errors.New("board released"))
	}
	b.levels[o.name] = high
	b.writes = append(b.writes, Write{Pin: o.name, High: high})
	return nil
}
