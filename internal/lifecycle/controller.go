// internal/lifecycle/controller.go
package lifecycle

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Step is one teardown action.
type Step struct {
	Name string
	Fn   func() error
}

// Controller owns the cooperative stop signal and the teardown sequence.
//
// Teardown runs every registered step exactly once, in registration order,
// no matter how many exit paths reach it. A failing step is logged and the
// remaining steps still run.
type Controller struct {
	log zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	reason string
	steps  []Step

	once sync.Once
}

// New derives the stop signal from parent (typically a signal.NotifyContext).
func New(parent context.Context, log zerolog.Logger) *Controller {
	ctx, cancel := context.WithCancel(parent)
	return &Controller{log: log, ctx: ctx, cancel: cancel}
}

// Context is done once a stop has been requested.
func (c *Controller) Context() context.Context {
	return c.ctx
}

// Stop requests shutdown. The first reason wins.
func (c *Controller) Stop(reason string) {
	c.mu.Lock()
	if c.reason == "" {
		c.reason = reason
		c.log.Info().Str("reason", reason).Msg("stop requested")
	}
	c.mu.Unlock()
	c.cancel()
}

// Reason returns why the controller stopped ("" while running).
func (c *Controller) Reason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reason == "" && c.ctx.Err() != nil {
		return "signal"
	}
	return c.reason
}

// OnTeardown appends a step. Steps added after Teardown are ignored.
func (c *Controller) OnTeardown(name string, fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = append(c.steps, Step{Name: name, Fn: fn})
}

// Teardown stops the controller and runs the steps once.
// Later calls return immediately after the first has finished.
func (c *Controller) Teardown() {
	c.once.Do(func() {
		c.cancel()

		c.mu.Lock()
		steps := c.steps
		c.steps = nil
		c.mu.Unlock()

		for _, s := range steps {
			c.run(s)
		}
		c.log.Info().Int("steps", len(steps)).Msg("teardown complete")
	})
}

// run executes one step; a panic is contained so later steps still run.
func (c *Controller) run(s Step) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Str("step", s.Name).Interface("panic", r).Msg("teardown step panicked")
		}
	}()

	if err := s.Fn(); err != nil {
		c.log.Warn().Err(err).Str("step", s.Name).Msg("teardown step failed")
		return
	}
	c.log.Debug().Str("step", s.Name).Msg("teardown step done")
}
