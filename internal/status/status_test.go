// internal/status/status_test.go
package status

import (
	"sync"
	"testing"
	"time"
)

func TestBoard_StartsIdle(t *testing.T) {
	b := NewBoard()
	if got := b.Load().State; got != StateIdle {
		t.Fatalf("expected %q, got %q", StateIdle, got)
	}
}

func TestBoard_StoreIsCopied(t *testing.T) {
	b := NewBoard()
	s := Snapshot{State: StateOpen, MotionCount: 4}
	b.Store(s)
	s.MotionCount = 99

	if got := b.Load().MotionCount; got != 4 {
		t.Fatalf("board aliased caller value: %d", got)
	}
}

func TestBoard_ConcurrentReaders(t *testing.T) {
	b := NewBoard()
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			b.Store(Snapshot{State: StateBuffering, MotionCount: i, FramesSeen: uint64(i)})
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				s := b.Load()
				if uint64(s.MotionCount) != s.FramesSeen {
					t.Errorf("torn snapshot: %+v", s)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestEncode_SinceMotion(t *testing.T) {
	last := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	v := Encode(Snapshot{State: StateOpen, LastMotion: last}, last.Add(1500*time.Millisecond))

	if v.SinceMotionSec != 1.5 {
		t.Fatalf("expected 1.5s, got %v", v.SinceMotionSec)
	}
	if v.LastMotion == "" {
		t.Fatalf("expected last motion timestamp")
	}
}

func TestEncode_NoMotionYet(t *testing.T) {
	v := Encode(Snapshot{State: StateIdle}, time.Now())
	if v.LastMotion != "" || v.SinceMotionSec != 0 {
		t.Fatalf("expected empty motion fields, got %+v", v)
	}
}
