// internal/alarm/controller.go
package alarm

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/phototrap/internal/gpio"
	"github.com/tamzrod/phototrap/internal/remotelight"
)

// DefaultPhase is the half-period of the siren/LED cycle.
const DefaultPhase = 500 * time.Millisecond

// Outputs are the pins the controller exclusively drives.
// Nil entries are skipped.
type Outputs struct {
	Siren gpio.Output
	Red   gpio.Output
	Green gpio.Output
	Blue  gpio.Output
}

type Config struct {
	Budget        time.Duration
	Phase         time.Duration
	Notifier      remotelight.Notifier
	NotifyTimeout time.Duration
}

// Controller drives the siren and RGB LED while an alarm is active.
//
// Deactivation may come from the capture loop (session closed or budget checked
// per tick) and from the controller's own budget timer. Every path is idempotent.
type Controller struct {
	cfg Config
	out Outputs
	log zerolog.Logger

	mu    sync.Mutex
	state *State
	gen   uint64
	stop  chan struct{}
	done  chan struct{}
	timer *time.Timer
}

func New(cfg Config, out Outputs, log zerolog.Logger) *Controller {
	if cfg.Phase <= 0 {
		cfg.Phase = DefaultPhase
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 5 * time.Second
	}
	return &Controller{cfg: cfg, out: out, log: log}
}

// Activate starts the blink cycle and fires the remote light.
// Returns false when an alarm is already active.
func (c *Controller) Activate(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != nil {
		return false
	}

	c.gen++
	gen := c.gen
	c.state = &State{ActivatedAt: now, Budget: c.cfg.Budget}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})

	go c.blink(c.stop, c.done)

	if c.cfg.Budget > 0 {
		c.timer = time.AfterFunc(c.cfg.Budget, func() { c.expireGen(gen) })
	}

	remotelight.Dispatch(c.cfg.Notifier, c.cfg.NotifyTimeout, c.log)

	c.log.Info().Dur("budget", c.cfg.Budget).Msg("alarm activated")
	return true
}

// Deactivate stops the cycle and forces every output off.
// Safe to call at any time; output failures are logged, never returned.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deactivateLocked("requested")
}

// Expire deactivates when the active alarm has used its budget at now.
// Reports whether it deactivated anything.
func (c *Controller) Expire(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil || !c.state.Expired(now) {
		return false
	}
	c.deactivateLocked("budget elapsed")
	return true
}

// Active reports whether an alarm is running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != nil
}

// Current returns a copy of the active State.
func (c *Controller) Current() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return State{}, false
	}
	return *c.state, true
}

// expireGen is the timer path; a stale timer from an older activation is ignored.
func (c *Controller) expireGen(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == nil || gen != c.gen {
		return
	}
	c.deactivateLocked("budget timer")
}

func (c *Controller) deactivateLocked(reason string) {
	wasActive := c.state != nil

	if wasActive {
		close(c.stop)
		<-c.done // blink goroutine no longer writes after this
		if c.timer != nil {
			c.timer.Stop()
			c.timer = nil
		}
		c.state = nil
	}

	c.apply(false, false, false, false)

	if wasActive {
		c.log.Info().Str("reason", reason).Msg("alarm deactivated")
	}
}

func (c *Controller) blink(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	t := time.NewTicker(c.cfg.Phase)
	defer t.Stop()

	alert := true
	for {
		if alert {
			c.apply(true, true, false, false)
		} else {
			c.apply(false, false, false, true)
		}

		select {
		case <-stop:
			return
		case <-t.C:
			alert = !alert
		}
	}
}

// apply writes one pattern; each pin is attempted even if another fails.
func (c *Controller) apply(siren, red, green, blue bool) {
	for _, w := range []struct {
		out  gpio.Output
		high bool
	}{
		{c.out.Siren, siren},
		{c.out.Red, red},
		{c.out.Green, green},
		{c.out.Blue, blue},
	} {
		if w.out == nil {
			continue
		}
		if err := w.out.Set(w.high); err != nil {
			c.log.Warn().Err(err).Str("pin", w.out.Name()).Msg("alarm output write failed")
		}
	}
}
