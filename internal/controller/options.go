package controller

import (
	"errors"
	"fmt"
	"time"

	"pkt.systems/pslog"

	"scrollstage/internal/clock"
	"scrollstage/internal/domain"
	"scrollstage/internal/eventbus"
)

var (
	ErrScrollDragConflict  = errors.New("scroll-driven sections cannot be dragged")
	ErrAutoplayNotCircular = errors.New("autoplay requires a circular section")
	ErrAutoplayOnScroll    = errors.New("scroll-driven sections cannot autoplay")
)

// Options parameterizes one section's controller.
//
// The three site sections are all instances of the same controller:
//
//	process  {HasSubProgress: true, Effect: zoom}
//	hero     {Circular: true, Draggable: true, Autoplay: 3s, Effect: fade}
//	services {Draggable: true, Effect: slide}
type Options struct {
	Name           string
	Circular       bool
	HasSubProgress bool
	Draggable      bool
	Effect         domain.Effect
	Autoplay       time.Duration // zero disables autoplay
	Threshold      float64       // drag commit threshold in px; zero uses the default
}

// ScrollDriven reports whether the scroll position is the index source
func (o Options) ScrollDriven() bool {
	return o.HasSubProgress
}

// Validate rejects combinations where two input sources would fight
func (o Options) Validate() error {
	if _, err := domain.ParseEffect(string(o.Effect)); err != nil {
		return err
	}
	if o.HasSubProgress && o.Draggable {
		return ErrScrollDragConflict
	}
	if o.Autoplay < 0 {
		return fmt.Errorf("autoplay period %v is negative", o.Autoplay)
	}
	if o.Autoplay > 0 && o.HasSubProgress {
		return ErrAutoplayOnScroll
	}
	if o.Autoplay > 0 && !o.Circular {
		return ErrAutoplayNotCircular
	}
	return nil
}

// Deps are the collaborators a controller acquires on mount
type Deps struct {
	Clock clock.Clock
	Bus   eventbus.EventBus // optional; carries the theme signal in and cursor events out
	Log   pslog.Logger
	Dark  bool // initial theme
}
