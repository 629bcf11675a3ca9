// Package autoplay emits periodic "advance" ticks with pause/resume gating.
//
// The timer is armed exactly when it is enabled and not suspended. Every
// transition into the armed state schedules a fresh full period, so a long
// suspension never produces a burst of catch-up ticks.
//
// Each arming bumps a generation counter that is passed to the tick
// callback. A consumer that hops the tick onto another loop (a UI message
// queue) checks Valid(gen) before acting, which discards ticks that fired
// just before a Suspend or Stop.
package autoplay

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"scrollstage/internal/clock"
	"scrollstage/internal/domain"
)

// DefaultPeriod is the slider autoplay interval
const DefaultPeriod = 3 * time.Second

var (
	ErrInvalidPeriod = errors.New("autoplay period must be positive")
	ErrDisposed      = errors.New("autoplay timer disposed")
)

// Timer schedules ticks on a Clock
type Timer struct {
	mu       sync.Mutex
	period   time.Duration
	clock    clock.Clock
	onTick   func(gen uint64)
	state    domain.AutoplayState
	gen      uint64
	pending  clock.Timer
	disposed bool
}

// New creates a stopped timer
func New(period time.Duration, clk clock.Clock, onTick func(gen uint64)) (*Timer, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}
	if clk == nil {
		clk = clock.Real()
	}
	if onTick == nil {
		onTick = func(uint64) {}
	}
	return &Timer{period: period, clock: clk, onTick: onTick}, nil
}

// Period returns the configured tick period
func (t *Timer) Period() time.Duration {
	return t.period
}

// State returns the current gating flags
func (t *Timer) State() domain.AutoplayState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Valid reports whether a tick of generation gen may still take effect
func (t *Timer) Valid(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.disposed && t.state.Armed() && gen == t.gen
}

// Start enables autoplay
func (t *Timer) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return ErrDisposed
	}
	t.transition(func(s *domain.AutoplayState) { s.Enabled = true })
	return nil
}

// Stop disables autoplay; no further tick of the current generation fires
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transition(func(s *domain.AutoplayState) { s.Enabled = false })
}

// Suspend pauses ticks for a transient condition (hover, drag)
func (t *Timer) Suspend() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transition(func(s *domain.AutoplayState) { s.Suspended = true })
}

// Resume clears a suspension and restarts the full period
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.disposed {
		return
	}
	t.transition(func(s *domain.AutoplayState) { s.Suspended = false })
}

// Dispose stops the timer permanently
func (t *Timer) Dispose() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transition(func(s *domain.AutoplayState) { s.Enabled = false })
	t.disposed = true
}

// transition applies a flag change and arms or disarms on edges only.
// Must be called with t.mu held.
func (t *Timer) transition(apply func(*domain.AutoplayState)) {
	was := t.state.Armed()
	apply(&t.state)
	now := t.state.Armed() && !t.disposed

	switch {
	case !was && now:
		t.gen++
		t.schedule(t.gen)
	case was && !now:
		t.gen++
		t.cancel()
	}
}

// schedule arms one period for generation gen. Must be called with t.mu held.
func (t *Timer) schedule(gen uint64) {
	t.cancel()
	t.pending = t.clock.AfterFunc(t.period, func() { t.fire(gen) })
}

func (t *Timer) cancel() {
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if t.disposed || !t.state.Armed() || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.schedule(gen)
	t.mu.Unlock()

	t.onTick(gen)
}
