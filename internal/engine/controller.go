// Package engine drives a simulation: it serializes every mutation the
// UI can trigger and runs the auto-play loop as an explicit,
// cancellable scheduled task.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/econsim/internal/sim"
)

// Controller owns one simulation. All reads and writes go through its
// mutex, so observers always see a fully-updated state; a step runs to
// completion before the next control event is processed.
type Controller struct {
	mu  sync.Mutex
	sim *sim.Sim

	interval    time.Duration
	minInterval time.Duration
	cancel      chan struct{} // non-nil while auto-play runs

	// OnChange, when set, is invoked after every completed mutation
	// (outside the lock). Transports use it to push fresh state.
	OnChange func()
}

// NewController wraps a simulation with the given default auto-play
// interval and the floor it may be lowered to.
func NewController(s *sim.Sim, interval, minInterval time.Duration) *Controller {
	if interval < minInterval {
		interval = minInterval
	}
	return &Controller{
		sim:         s,
		interval:    interval,
		minInterval: minInterval,
	}
}

// Variant returns the wrapped simulation's variant.
func (c *Controller) Variant() sim.Variant {
	return c.sim.Config.Variant
}

// Step advances the simulation by one step.
func (c *Controller) Step() {
	c.mu.Lock()
	c.sim.Step()
	c.mu.Unlock()
	c.notify()
}

// StepN advances the simulation by n steps sequentially.
func (c *Controller) StepN(n int) {
	c.mu.Lock()
	c.sim.StepN(n)
	c.mu.Unlock()
	c.notify()
}

// Reset cancels auto-play if active and reinitializes the simulation.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.stopLocked()
	c.sim.Reset()
	c.mu.Unlock()
	c.notify()
}

// StartAuto begins periodic stepping at the current interval. No-op if
// already running.
func (c *Controller) StartAuto() {
	c.mu.Lock()
	if c.cancel == nil {
		stop := make(chan struct{})
		c.cancel = stop
		go c.runAuto(stop, c.interval)
		slog.Info("auto-play started", "variant", c.sim.Config.Variant.String(), "interval", c.interval)
	}
	c.mu.Unlock()
	c.notify()
}

// StopAuto cancels auto-play. The state is left exactly as of the last
// completed step.
func (c *Controller) StopAuto() {
	c.mu.Lock()
	c.stopLocked()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) stopLocked() {
	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
		slog.Info("auto-play stopped", "variant", c.sim.Config.Variant.String(), "step", c.sim.StepIndex)
	}
}

// Running reports whether auto-play is active.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// SetInterval updates the auto-play interval, clamped to the configured
// floor. If auto-play is active the timer is cancelled and rescheduled
// immediately at the new interval. Returns the applied value.
func (c *Controller) SetInterval(d time.Duration) time.Duration {
	if d < c.minInterval {
		d = c.minInterval
	}

	c.mu.Lock()
	c.interval = d
	if c.cancel != nil {
		close(c.cancel)
		stop := make(chan struct{})
		c.cancel = stop
		go c.runAuto(stop, d)
	}
	c.mu.Unlock()

	c.notify()
	return d
}

// Interval returns the current auto-play interval.
func (c *Controller) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// SetRedistributionRate forwards to the simulation under the lock and
// returns the clamped value.
func (c *Controller) SetRedistributionRate(rate float64) float64 {
	c.mu.Lock()
	applied := c.sim.SetRedistributionRate(rate)
	c.mu.Unlock()
	c.notify()
	return applied
}

// SetBreadFraction forwards to the simulation under the lock and
// returns the clamped value.
func (c *Controller) SetBreadFraction(f float64) float64 {
	c.mu.Lock()
	applied := c.sim.SetBreadFraction(f)
	c.mu.Unlock()
	c.notify()
	return applied
}

// runAuto is the auto-play loop: exactly one step per tick, no overlap
// and no backlog, until the stop channel closes.
func (c *Controller) runAuto(stop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			// A reschedule or stop may have raced the tick.
			select {
			case <-stop:
				c.mu.Unlock()
				return
			default:
			}
			c.sim.Step()
			c.mu.Unlock()
			c.notify()
		}
	}
}

func (c *Controller) notify() {
	if c.OnChange != nil {
		c.OnChange()
	}
}
