// internal/alarm/controller_test.go
package alarm

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/phototrap/internal/gpio"
)

// ---- helpers ----

type countingNotifier struct {
	n atomic.Int32
}

func (c *countingNotifier) Notify(context.Context) error {
	c.n.Add(1)
	return nil
}

func newController(t *testing.T, cfg Config) (*Controller, *gpio.MemoryBoard) {
	t.Helper()

	board := gpio.NewMemoryBoard()
	claim := func(name string) gpio.Output {
		out, err := board.Output(name)
		if err != nil {
			t.Fatalf("claim %s err=%v", name, err)
		}
		return out
	}

	out := Outputs{
		Siren: claim("GPIO3"),
		Red:   claim("GPIO18"),
		Green: claim("GPIO15"),
		Blue:  claim("GPIO14"),
	}
	return New(cfg, out, zerolog.Nop()), board
}

func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", d)
}

// ---- tests ----

func TestActivate_StartsAlertPattern(t *testing.T) {
	c, board := newController(t, Config{Budget: time.Minute, Phase: time.Hour})
	defer c.Deactivate()

	if !c.Activate(time.Now()) {
		t.Fatalf("expected activation")
	}

	waitFor(t, time.Second, func() bool { return board.Level("GPIO3") })

	if !board.Level("GPIO18") || board.Level("GPIO14") || board.Level("GPIO15") {
		t.Fatalf("expected siren+red only, writes=%v", board.Writes())
	}
}

func TestActivate_SecondCallIsNoop(t *testing.T) {
	n := &countingNotifier{}
	c, _ := newController(t, Config{Budget: time.Minute, Phase: time.Hour, Notifier: n})
	defer c.Deactivate()

	if !c.Activate(time.Now()) {
		t.Fatalf("expected first activation")
	}
	if c.Activate(time.Now()) {
		t.Fatalf("second activation must be refused")
	}

	waitFor(t, time.Second, func() bool { return n.n.Load() >= 1 })
	time.Sleep(20 * time.Millisecond)
	if got := n.n.Load(); got != 1 {
		t.Fatalf("expected exactly one remote notification, got %d", got)
	}
}

func TestBlink_AlternatesPhases(t *testing.T) {
	c, board := newController(t, Config{Budget: time.Minute, Phase: 10 * time.Millisecond})

	c.Activate(time.Now())
	waitFor(t, time.Second, func() bool {
		blueHigh := false
		for _, w := range board.Writes() {
			if w.Pin == "GPIO14" && w.High {
				blueHigh = true
			}
		}
		return blueHigh
	})
	c.Deactivate()
}

func TestDeactivate_TwiceLeavesAllOff(t *testing.T) {
	c, board := newController(t, Config{Budget: time.Minute, Phase: 5 * time.Millisecond})

	c.Activate(time.Now())
	time.Sleep(20 * time.Millisecond)

	c.Deactivate()
	if board.AnyHigh() {
		t.Fatalf("outputs still high after first deactivate")
	}

	c.Deactivate()
	if board.AnyHigh() {
		t.Fatalf("outputs high after second deactivate")
	}
	if c.Active() {
		t.Fatalf("controller still active")
	}
}

func TestDeactivate_WithoutActivateIsSafe(t *testing.T) {
	c, board := newController(t, Config{Budget: time.Minute})

	c.Deactivate()

	if board.AnyHigh() || c.Active() {
		t.Fatalf("unexpected state after idle deactivate")
	}
}

func TestExpire_ObservesBudget(t *testing.T) {
	c, board := newController(t, Config{Budget: 30 * time.Second, Phase: time.Hour})
	start := time.Now()
	c.Activate(start)

	if c.Expire(start.Add(29 * time.Second)) {
		t.Fatalf("expired before budget")
	}
	if !c.Expire(start.Add(30 * time.Second)) {
		t.Fatalf("expected expiry at budget")
	}
	if c.Expire(start.Add(31 * time.Second)) {
		t.Fatalf("second expiry must be a no-op")
	}
	if board.AnyHigh() {
		t.Fatalf("outputs high after expiry")
	}
}

func TestBudgetTimer_DeactivatesWithoutCaller(t *testing.T) {
	c, board := newController(t, Config{Budget: 30 * time.Millisecond, Phase: 5 * time.Millisecond})

	c.Activate(time.Now())
	waitFor(t, time.Second, func() bool { return !c.Active() })

	if board.AnyHigh() {
		t.Fatalf("outputs high after budget timer")
	}
}

func TestConcurrentDeactivatePaths(t *testing.T) {
	c, board := newController(t, Config{Budget: 10 * time.Millisecond, Phase: time.Millisecond})

	for i := 0; i < 20; i++ {
		start := time.Now()
		c.Activate(start)

		var wg sync.WaitGroup
		wg.Add(3)
		go func() { defer wg.Done(); c.Deactivate() }()
		go func() { defer wg.Done(); c.Expire(start.Add(time.Hour)) }()
		go func() { defer wg.Done(); time.Sleep(10 * time.Millisecond); c.Deactivate() }()
		wg.Wait()

		if c.Active() || board.AnyHigh() {
			t.Fatalf("iteration %d: alarm not off", i)
		}
	}
}

func TestOutputFailure_DoesNotBlockDeactivate(t *testing.T) {
	c, board := newController(t, Config{Budget: time.Minute, Phase: 5 * time.Millisecond})
	c.Activate(time.Now())
	time.Sleep(15 * time.Millisecond)

	board.Fail("GPIO3", true)
	c.Deactivate()

	if c.Active() {
		t.Fatalf("controller still active")
	}
	if board.Level("GPIO18") || board.Level("GPIO14") {
		t.Fatalf("healthy outputs not driven off")
	}
}
