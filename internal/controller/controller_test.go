package controller

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrollstage/internal/clock"
	"scrollstage/internal/domain"
	"scrollstage/internal/eventbus"
	"scrollstage/internal/logx"
)

func items(n int) []domain.Item {
	payloads := make([]domain.Payload, n)
	for i := range payloads {
		payloads[i] = domain.Payload{Number: domain.StepLabel(i, n), Title: "item"}
	}
	return domain.NewItems(payloads)
}

var (
	processOpts  = Options{Name: "process", HasSubProgress: true, Effect: domain.EffectZoom}
	heroOpts     = Options{Name: "hero", Circular: true, Draggable: true, Autoplay: 3 * time.Second, Effect: domain.EffectFade}
	servicesOpts = Options{Name: "services", Draggable: true, Effect: domain.EffectSlide}
)

func mount(t *testing.T, opts Options, n int, deps Deps) *Controller {
	t.Helper()
	if deps.Log == nil {
		deps.Log = logx.Discard()
	}
	c, teardown, err := Mount(opts, items(n), deps)
	require.NoError(t, err)
	t.Cleanup(teardown)
	return c
}

func TestAutoplayCyclesCircularSection(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	c := mount(t, heroOpts, 4, Deps{Clock: clk})

	var seen []int
	c.Subscribe(func(s Snapshot) { seen = append(seen, s.Cursor.ActiveIndex) })

	clk.Advance(12 * time.Second)
	assert.Equal(t, []int{1, 2, 3, 0}, seen)
	assert.Equal(t, 0, c.Snapshot().Cursor.ActiveIndex)
}

func TestDragCommitsOneStepAndClamps(t *testing.T) {
	c := mount(t, servicesOpts, 3, Deps{})

	drag := func(dx float64) {
		require.True(t, c.PointerDown(1, 200))
		c.PointerMove(1, 200+dx)
		c.PointerUp(1)
	}

	drag(-80)
	assert.Equal(t, 1, c.Snapshot().Cursor.ActiveIndex)

	drag(-80)
	drag(-400)
	assert.Equal(t, 2, c.Snapshot().Cursor.ActiveIndex, "clamped at the last item")

	drag(30)
	assert.Equal(t, 2, c.Snapshot().Cursor.ActiveIndex, "below threshold")

	drag(120)
	assert.Equal(t, 1, c.Snapshot().Cursor.ActiveIndex)
}

func TestDragOffsetFollowsPointer(t *testing.T) {
	c := mount(t, servicesOpts, 3, Deps{})

	require.True(t, c.PointerDown(7, 100))
	c.PointerMove(7, 60)
	s := c.Snapshot()
	assert.True(t, s.Dragging())
	assert.Equal(t, -40.0, s.Gesture.CurrentDeltaX)
	assert.Equal(t, 0, s.Cursor.ActiveIndex, "moves never change the index")
	assert.False(t, s.Track().Animated)

	assert.False(t, c.PointerDown(8, 10), "second pointer is ignored")

	rel := c.PointerCancel(7)
	assert.False(t, rel.Committed)
	assert.False(t, c.Snapshot().Dragging())
}

func TestScrollSectionTracksScrollPosition(t *testing.T) {
	c := mount(t, processOpts, 4, Deps{})

	require.NoError(t, c.ScrollTo(250, 1000))
	s := c.Snapshot()
	assert.Equal(t, 1, s.Cursor.ActiveIndex)
	assert.InDelta(t, 0.0, s.Cursor.SubProgress, 1e-9)

	require.NoError(t, c.ScrollTo(999.9, 1000))
	assert.Equal(t, 3, c.Snapshot().Cursor.ActiveIndex)

	require.NoError(t, c.ScrollTo(-50, 1000))
	assert.Equal(t, 0, c.Snapshot().Cursor.ActiveIndex)

	assert.Error(t, c.ScrollTo(10, 0))
}

func TestScrollNearEndSelectsLastItem(t *testing.T) {
	c := mount(t, processOpts, 5, Deps{})

	require.NoError(t, c.ScrollTo(399, 400))
	assert.Equal(t, 4, c.Snapshot().Cursor.ActiveIndex)

	require.NoError(t, c.ScrollTo(400, 400))
	assert.Equal(t, 4, c.Snapshot().Cursor.ActiveIndex)
}

func TestScrollFramesCoalesce(t *testing.T) {
	c := mount(t, processOpts, 4, Deps{})

	assert.True(t, c.OfferScroll(100, 1000))
	assert.False(t, c.OfferScroll(300, 1000))
	assert.False(t, c.OfferScroll(600, 1000))

	var calls int
	c.Subscribe(func(Snapshot) { calls++ })
	c.Frame()
	c.Frame()

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, c.Snapshot().Cursor.ActiveIndex)
	assert.True(t, c.OfferScroll(700, 1000), "next sample needs a new frame")
}

func TestScrollFrameIgnoresEmptyRange(t *testing.T) {
	c := mount(t, processOpts, 4, Deps{})
	c.OfferScroll(100, 0)
	c.Frame()
	assert.Equal(t, domain.Cursor{}, c.Snapshot().Cursor)
}

func TestJumpToScrollSection(t *testing.T) {
	c := mount(t, processOpts, 4, Deps{})
	require.NoError(t, c.ScrollTo(0, 1000))

	assert.Equal(t, 500.0, c.JumpTo(2))
	assert.Equal(t, 2, c.Snapshot().Cursor.ActiveIndex)

	assert.Equal(t, 1002.0, c.JumpTo(4), "past the section")
	assert.Equal(t, 2, c.Snapshot().Cursor.ActiveIndex)

	c.JumpTo(3)
	assert.Equal(t, 1002.0, c.Next())
	assert.Equal(t, 500.0, c.Prev())
}

func TestJumpToDiscardsQueuedScroll(t *testing.T) {
	c := mount(t, processOpts, 4, Deps{})
	require.NoError(t, c.ScrollTo(0, 1600))

	assert.True(t, c.OfferScroll(100, 1600))
	assert.Equal(t, 1200.0, c.JumpTo(3))
	c.Frame()

	s := c.Snapshot()
	assert.Equal(t, 3, s.Cursor.ActiveIndex)
	assert.Equal(t, 1200.0, s.ScrollDist)
	assert.True(t, c.OfferScroll(1250, 1600), "queue is empty after the jump")
}

func TestPrevRewindsFirstStep(t *testing.T) {
	c := mount(t, processOpts, 4, Deps{})
	require.NoError(t, c.ScrollTo(200, 1600))
	require.Equal(t, domain.Cursor{ActiveIndex: 0, SubProgress: 0.5}, c.Snapshot().Cursor)

	var calls int
	c.Subscribe(func(Snapshot) { calls++ })
	assert.Equal(t, 0.0, c.Prev())

	s := c.Snapshot()
	assert.Equal(t, domain.Cursor{}, s.Cursor)
	assert.Equal(t, 0.0, s.ScrollDist)
	assert.Equal(t, 1, calls)

	assert.Equal(t, 0.0, c.Prev())
	assert.Equal(t, 1, calls, "already at the start")
}

func TestJumpToDragSection(t *testing.T) {
	c := mount(t, servicesOpts, 3, Deps{})

	c.JumpTo(2)
	assert.True(t, c.Snapshot().AtEnd())
	c.Next()
	assert.Equal(t, 2, c.Snapshot().Cursor.ActiveIndex)

	c.JumpTo(0)
	assert.True(t, c.Snapshot().AtStart())
	c.Prev()
	assert.Equal(t, 0, c.Snapshot().Cursor.ActiveIndex)
}

func TestCircularNextPrevWrap(t *testing.T) {
	c := mount(t, heroOpts, 4, Deps{Clock: clock.NewFake(time.Unix(0, 0))})

	c.Prev()
	assert.Equal(t, 3, c.Snapshot().Cursor.ActiveIndex)
	c.Next()
	assert.Equal(t, 0, c.Snapshot().Cursor.ActiveIndex)
}

func TestHoverSuspendsAutoplay(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	c := mount(t, heroOpts, 4, Deps{Clock: clk})

	clk.Advance(2 * time.Second)
	c.HoverEnter()
	assert.True(t, c.Snapshot().Autoplay.Suspended)

	clk.Advance(10 * time.Second)
	assert.Equal(t, 0, c.Snapshot().Cursor.ActiveIndex)

	c.HoverLeave()
	clk.Advance(2 * time.Second)
	assert.Equal(t, 0, c.Snapshot().Cursor.ActiveIndex, "resume restarts the full period")
	clk.Advance(time.Second)
	assert.Equal(t, 1, c.Snapshot().Cursor.ActiveIndex)
}

func TestDragAndHoverBothGateAutoplay(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	c := mount(t, heroOpts, 4, Deps{Clock: clk})

	c.HoverEnter()
	require.True(t, c.PointerDown(1, 300))
	c.HoverLeave()
	assert.True(t, c.Snapshot().Autoplay.Suspended, "drag still in progress")

	clk.Advance(6 * time.Second)
	assert.Equal(t, 0, c.Snapshot().Cursor.ActiveIndex)

	c.PointerMove(1, 200)
	c.PointerUp(1)
	assert.Equal(t, 1, c.Snapshot().Cursor.ActiveIndex)
	assert.False(t, c.Snapshot().Autoplay.Suspended)

	clk.Advance(3 * time.Second)
	assert.Equal(t, 2, c.Snapshot().Cursor.ActiveIndex)
}

func TestTeardownStopsEverything(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	bus := eventbus.New(logx.Discard())
	defer bus.Close()

	c, teardown, err := Mount(heroOpts, items(4), Deps{Clock: clk, Bus: bus, Log: logx.Discard()})
	require.NoError(t, err)
	require.Equal(t, 1, bus.Subscribers(eventbus.EventThemeChanged))

	var calls int
	c.Subscribe(func(Snapshot) { calls++ })

	teardown()
	teardown()

	assert.Zero(t, clk.Pending())
	assert.Zero(t, bus.Subscribers(eventbus.EventThemeChanged))

	clk.Advance(10 * time.Second)
	c.Next()
	c.PointerDown(1, 0)
	assert.Zero(t, calls)
	assert.Equal(t, 0, c.Snapshot().Cursor.ActiveIndex)
}

func TestThemeSignalFromBus(t *testing.T) {
	bus := eventbus.New(logx.Discard())
	defer bus.Close()

	c := mount(t, servicesOpts, 3, Deps{Bus: bus})
	assert.False(t, c.Snapshot().Dark)

	bus.Publish(eventbus.ThemeChangedEvent{Dark: true})
	require.Eventually(t, func() bool { return c.Snapshot().Dark }, time.Second, 5*time.Millisecond)
}

func TestCursorEventsArePublished(t *testing.T) {
	bus := eventbus.New(logx.Discard())
	defer bus.Close()

	var mu sync.Mutex
	var got []eventbus.CursorChangedEvent
	bus.Subscribe(eventbus.EventCursorChanged, func(e eventbus.DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.(eventbus.CursorChangedEvent))
	})

	c := mount(t, servicesOpts, 3, Deps{Bus: bus})
	c.PointerDown(1, 100)
	c.PointerMove(1, 0)
	c.PointerUp(1)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, eventbus.CursorChangedEvent{Section: "services", OldIndex: 0, NewIndex: 1, Source: "drag"}, got[0])
}

func TestMountRejectsConflictingOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		n    int
		want error
	}{
		{"scroll and drag", Options{HasSubProgress: true, Draggable: true, Effect: domain.EffectBlink}, 3, ErrScrollDragConflict},
		{"autoplay on scroll", Options{HasSubProgress: true, Autoplay: time.Second, Effect: domain.EffectBlink}, 3, ErrAutoplayOnScroll},
		{"autoplay clamped", Options{Autoplay: time.Second, Effect: domain.EffectBlink}, 3, ErrAutoplayNotCircular},
		{"unknown effect", Options{Effect: "wobble"}, 3, domain.ErrUnknownEffect},
		{"no items", servicesOpts, 0, domain.ErrNoItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, teardown, err := Mount(tt.opts, items(tt.n), Deps{})
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, c)
			assert.Nil(t, teardown)
		})
	}
}

func TestSnapshotStyles(t *testing.T) {
	c := mount(t, servicesOpts, 3, Deps{})
	c.JumpTo(1)

	styles := c.Snapshot().Styles()
	require.Len(t, styles, 3)
	assert.Equal(t, 1.0, styles[1].Opacity)
	assert.Equal(t, -100.0, styles[0].Transform.TranslateXPercent)
	assert.Equal(t, 100.0, styles[2].Transform.TranslateXPercent)
}
