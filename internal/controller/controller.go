// Package controller composes the position model, gesture recognizer,
// autoplay timer and effect machine into one parameterized section
// controller.
//
// Exactly one input source drives a given controller's index: scroll for
// sections with sub-progress, pointer drag and autoplay for the rest.
// Autoplay is suspended while the section is hovered or dragged and
// resumes only once both conditions clear, so a tick and a gesture never
// commit competing index changes.
//
// All methods are safe for concurrent use. Timer ticks and bus handlers
// arrive on their own goroutines and serialize through the controller's
// mutex; listeners are called after the mutex is released.
package controller

import (
	"fmt"
	"sort"
	"sync"

	"pkt.systems/pslog"

	"scrollstage/internal/autoplay"
	"scrollstage/internal/clock"
	"scrollstage/internal/domain"
	"scrollstage/internal/eventbus"
	"scrollstage/internal/gesture"
	"scrollstage/internal/logx"
	"scrollstage/internal/position"
)

// Listener receives the controller state after every change
type Listener func(Snapshot)

// Controller owns one section's Cursor, GestureState and AutoplayState
type Controller struct {
	mu      sync.Mutex
	opts    Options
	items   []domain.Item
	cursor  domain.Cursor
	gesture *gesture.Recognizer
	timer   *autoplay.Timer
	sampler position.Sampler
	scroll  position.Sample
	hovered bool
	dark    bool
	closed  bool

	listeners    map[uint64]Listener
	nextListener uint64

	bus eventbus.EventBus
	log pslog.Logger
}

// Mount validates the section, acquires its timer and theme subscription
// and returns the controller with a single teardown func. If any step
// fails, everything acquired so far is released before returning.
func Mount(opts Options, items []domain.Item, deps Deps) (c *Controller, teardown func(), err error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("section %q: %w", opts.Name, err)
	}
	if len(items) == 0 {
		return nil, nil, fmt.Errorf("section %q: %w", opts.Name, domain.ErrNoItems)
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Log == nil {
		deps.Log = logx.Discard()
	}

	c = &Controller{
		opts:      opts,
		items:     append([]domain.Item(nil), items...),
		gesture:   gesture.New(opts.Threshold),
		dark:      deps.Dark,
		listeners: make(map[uint64]Listener),
		bus:       deps.Bus,
		log:       logx.WithSection(deps.Log, opts.Name),
	}

	var releases []func()
	defer func() {
		if err != nil {
			for i := len(releases) - 1; i >= 0; i-- {
				releases[i]()
			}
		}
	}()

	if opts.Autoplay > 0 {
		c.timer, err = autoplay.New(opts.Autoplay, deps.Clock, c.Tick)
		if err != nil {
			return nil, nil, fmt.Errorf("section %q: %w", opts.Name, err)
		}
		releases = append(releases, c.timer.Dispose)
		if err = c.timer.Start(); err != nil {
			return nil, nil, fmt.Errorf("section %q: %w", opts.Name, err)
		}
	}

	if c.bus != nil {
		unsub := c.bus.Subscribe(eventbus.EventThemeChanged, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ThemeChangedEvent); ok {
				c.SetDark(ev.Dark)
			}
		})
		releases = append(releases, unsub)
		c.bus.Publish(eventbus.SectionMountedEvent{Section: opts.Name, Items: len(items)})
	}

	c.log.Info("section mounted", "items", len(items), "effect", opts.Effect, "circular", opts.Circular, "autoplay", opts.Autoplay.String())

	var once sync.Once
	teardown = func() {
		once.Do(func() {
			c.mu.Lock()
			c.closed = true
			c.gesture.Abort()
			c.sampler.Reset()
			c.listeners = nil
			c.mu.Unlock()

			for i := len(releases) - 1; i >= 0; i-- {
				releases[i]()
			}
			if c.bus != nil {
				c.bus.Publish(eventbus.SectionClosedEvent{Section: opts.Name})
			}
			c.log.Info("section closed")
		})
	}
	return c, teardown, nil
}

// Options returns the section parameters
func (c *Controller) Options() Options {
	return c.opts
}

// Items returns the immutable item sequence
func (c *Controller) Items() []domain.Item {
	return c.items
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers a listener; the returned func removes it
func (c *Controller) Subscribe(l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return func() {}
	}
	c.nextListener++
	id := c.nextListener
	c.listeners[id] = l
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// OfferScroll queues a scroll sample. It reports true when the caller
// must schedule a Frame; samples arriving before that frame replace it.
func (c *Controller) OfferScroll(distance, scrollRange float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.opts.ScrollDriven() {
		return false
	}
	return c.sampler.Offer(position.Sample{Distance: distance, Range: scrollRange})
}

// Frame applies the latest queued scroll sample, if any
func (c *Controller) Frame() {
	c.update("scroll", func() bool {
		sample, ok := c.sampler.Take()
		if !ok || sample.Range <= 0 {
			// Single-screen content has no scroll mapping
			return false
		}
		return c.applyScrollLocked(sample)
	})
}

// ScrollTo applies a scroll sample immediately, bypassing the frame throttle
func (c *Controller) ScrollTo(distance, scrollRange float64) error {
	var err error
	c.update("scroll", func() bool {
		if !c.opts.ScrollDriven() {
			return false
		}
		if _, err = position.Compute(distance, scrollRange, len(c.items)); err != nil {
			return false
		}
		return c.applyScrollLocked(position.Sample{Distance: distance, Range: scrollRange})
	})
	return err
}

func (c *Controller) applyScrollLocked(s position.Sample) bool {
	cur, err := position.Compute(s.Distance, s.Range, len(c.items))
	if err != nil {
		return false
	}
	changed := cur != c.cursor || s != c.scroll
	c.cursor = cur
	if !c.opts.HasSubProgress {
		c.cursor.SubProgress = 0
	}
	c.scroll = s
	return changed
}

// PointerDown starts a drag. It reports false when the section is not
// draggable or a gesture is already in progress.
func (c *Controller) PointerDown(pointerID int, x float64) bool {
	var captured bool
	c.update("drag", func() bool {
		if !c.opts.Draggable {
			return false
		}
		captured = c.gesture.Down(pointerID, x)
		if captured {
			c.syncAutoplayLocked()
		}
		return captured
	})
	return captured
}

// PointerMove updates the live drag offset; it never changes the index
func (c *Controller) PointerMove(pointerID int, x float64) {
	c.update("drag", func() bool {
		_, ok := c.gesture.Move(pointerID, x)
		return ok
	})
}

// PointerUp ends the drag, committing at most one step
func (c *Controller) PointerUp(pointerID int) gesture.Release {
	return c.release(pointerID, false)
}

// PointerCancel is handled exactly like PointerUp
func (c *Controller) PointerCancel(pointerID int) gesture.Release {
	return c.release(pointerID, true)
}

func (c *Controller) release(pointerID int, cancel bool) gesture.Release {
	var rel gesture.Release
	var settled bool
	c.update("drag", func() bool {
		if !c.gesture.Dragging() {
			return false
		}
		if cancel {
			rel = c.gesture.Cancel(pointerID)
		} else {
			rel = c.gesture.Up(pointerID)
		}
		if c.gesture.Dragging() {
			// Release from a pointer we never captured
			return false
		}
		settled = true
		if rel.Committed {
			c.cursor.ActiveIndex = domain.Step(c.cursor.ActiveIndex, rel.Step, len(c.items), c.opts.Circular)
			c.log.Debug("drag committed", "step", rel.Step, "delta", rel.Delta, "index", c.cursor.ActiveIndex)
		}
		c.syncAutoplayLocked()
		return true
	})
	if settled && c.bus != nil {
		c.bus.Publish(eventbus.GestureSettledEvent{Section: c.opts.Name, Delta: rel.Delta, Committed: rel.Committed})
	}
	return rel
}

// HoverEnter suspends autoplay while the pointer rests on the section
func (c *Controller) HoverEnter() {
	c.setHover(true)
}

// HoverLeave resumes autoplay unless a drag is still in progress
func (c *Controller) HoverLeave() {
	c.setHover(false)
}

func (c *Controller) setHover(on bool) {
	c.update("hover", func() bool {
		if c.hovered == on {
			return false
		}
		c.hovered = on
		c.syncAutoplayLocked()
		return true
	})
}

// syncAutoplayLocked suspends autoplay while hovered or dragging
func (c *Controller) syncAutoplayLocked() {
	if c.timer == nil {
		return
	}
	if c.hovered || c.gesture.Dragging() {
		c.timer.Suspend()
	} else {
		c.timer.Resume()
	}
}

// Tick advances a circular section by one item. Ticks whose generation
// was invalidated by a suspend, stop or teardown are ignored.
func (c *Controller) Tick(gen uint64) {
	c.update("autoplay", func() bool {
		if c.timer == nil || !c.timer.Valid(gen) {
			return false
		}
		c.cursor.ActiveIndex = domain.Step(c.cursor.ActiveIndex, 1, len(c.items), true)
		return true
	})
}

// JumpTo moves straight to index, as dots and step buttons do.
//
// For scroll-driven sections it returns the scroll offset the caller must
// scroll to; index == N is accepted and yields the offset just past the
// section. Drag-driven sections clamp (or wrap, when circular) the index
// and return 0.
func (c *Controller) JumpTo(index int) float64 {
	var target float64
	c.update("jump", func() bool {
		n := len(c.items)
		if c.opts.ScrollDriven() {
			if index < 0 {
				index = 0
			}
			// A jump supersedes any sample still waiting for a frame
			c.sampler.Reset()
			target = position.TargetOffset(index, c.scroll.Range, n)
			if index >= n {
				return false
			}
			next := domain.Cursor{ActiveIndex: index}
			changed := next != c.cursor || c.scroll.Distance != target
			c.cursor = next
			c.scroll.Distance = target
			return changed
		}

		next := domain.Step(index, 0, n, c.opts.Circular)
		if next == c.cursor.ActiveIndex {
			return false
		}
		c.cursor = domain.Cursor{ActiveIndex: next}
		return true
	})
	return target
}

// Next advances one item. On the last step of a scroll-driven section it
// jumps past the section.
func (c *Controller) Next() float64 {
	return c.JumpTo(c.Snapshot().Cursor.ActiveIndex + 1)
}

// Prev moves back one item. On the first step of a scroll-driven section
// it rewinds to the start of that step; clamped drag sections stay put.
func (c *Controller) Prev() float64 {
	s := c.Snapshot()
	if s.AtStart() {
		if c.opts.ScrollDriven() {
			return c.JumpTo(0)
		}
		return 0
	}
	return c.JumpTo(s.Cursor.ActiveIndex - 1)
}

// SetDark applies the externally supplied theme signal
func (c *Controller) SetDark(dark bool) {
	c.update("theme", func() bool {
		if c.dark == dark {
			return false
		}
		c.dark = dark
		return true
	})
}

// update runs fn under the lock, then publishes index changes and
// notifies listeners outside it.
func (c *Controller) update(source string, fn func() bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	old := c.cursor.ActiveIndex
	if !fn() {
		c.mu.Unlock()
		return
	}
	snap := c.snapshotLocked()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if snap.Cursor.ActiveIndex != old {
		c.log.Debug("cursor changed", "from", old, "to", snap.Cursor.ActiveIndex, "source", source)
		if c.bus != nil {
			c.bus.Publish(eventbus.CursorChangedEvent{
				Section:  c.opts.Name,
				OldIndex: old,
				NewIndex: snap.Cursor.ActiveIndex,
				Source:   source,
			})
		}
	}
	for _, l := range listeners {
		l(snap)
	}
}

func (c *Controller) listenersLocked() []Listener {
	ids := make([]uint64, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = c.listeners[id]
	}
	return out
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Name:        c.opts.Name,
		Items:       len(c.items),
		Cursor:      c.cursor,
		Gesture:     c.gesture.State(),
		Hovered:     c.hovered,
		Dark:        c.dark,
		Effect:      c.opts.Effect,
		Circular:    c.opts.Circular,
		ScrollDist:  c.scroll.Distance,
		ScrollRange: c.scroll.Range,
	}
	if c.timer != nil {
		s.Autoplay = c.timer.State()
	}
	return s
}
