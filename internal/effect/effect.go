// Package effect computes the visual pose of an item from its relation to
// the active index. Everything here is a pure function of its arguments.
package effect

import (
	"fmt"
	"strings"
	"time"

	"scrollstage/internal/domain"
)

const (
	// Duration of the opacity/transform/filter transition
	Duration = 700 * time.Millisecond
	// Easing used by every pose transition
	Easing = "cubic-bezier(0.4,0,0.2,1)"
)

// Visibility is the CSS visibility target
type Visibility string

const (
	Visible Visibility = "visible"
	Hidden  Visibility = "hidden"
)

// Transform is a horizontal translate (percent of own width) plus uniform scale.
// The zero value is not the identity; use Identity.
type Transform struct {
	TranslateXPercent float64
	Scale             float64
}

// Identity is the resting transform
var Identity = Transform{TranslateXPercent: 0, Scale: 1}

// IsIdentity reports whether t neither moves nor scales
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// Filter is a blur radius and contrast multiplier
type Filter struct {
	BlurPx   float64
	Contrast float64
}

// NoFilter leaves the item untouched
var NoFilter = Filter{BlurPx: 0, Contrast: 1}

// Transition describes how the item animates toward its targets
type Transition struct {
	Duration        time.Duration
	Easing          string
	VisibilityDelay time.Duration
}

// Params is the bundle the presentation layer applies to one item
type Params struct {
	Opacity    float64
	Visibility Visibility
	Transform  Transform
	Filter     Filter
	Transition Transition
}

// Compute returns the animation targets for an item. It is total over
// every relation and effect; unknown effects behave like fade.
func Compute(rel domain.Relation, eff domain.Effect) Params {
	if rel == domain.RelationActive {
		// Visible immediately so the item is interactable the instant it activates.
		return Params{
			Opacity:    1,
			Visibility: Visible,
			Transform:  Identity,
			Filter:     NoFilter,
			Transition: Transition{Duration: Duration, Easing: Easing},
		}
	}

	// Hidden only after the fade-out finishes.
	p := Params{
		Opacity:    0,
		Visibility: Hidden,
		Transform:  Identity,
		Filter:     NoFilter,
		Transition: Transition{Duration: Duration, Easing: Easing, VisibilityDelay: Duration},
	}

	switch eff {
	case domain.EffectBlink:
		p.Filter = Filter{BlurPx: 16, Contrast: 4}
	case domain.EffectSlide:
		// Future items wait on the right, past items leave to the left.
		if rel == domain.RelationFuture {
			p.Transform.TranslateXPercent = 100
		} else {
			p.Transform.TranslateXPercent = -100
		}
	case domain.EffectZoom:
		if rel == domain.RelationFuture {
			p.Transform.Scale = 0.85
		} else {
			p.Transform.Scale = 1.15
		}
		p.Filter = Filter{BlurPx: 12, Contrast: 1}
	}
	return p
}

// ForItems computes params for every item in a sequence of length n
func ForItems(n, active int, eff domain.Effect) []Params {
	out := make([]Params, n)
	for i := range out {
		out[i] = Compute(domain.RelationOf(i, active), eff)
	}
	return out
}

// CSS renders the params as an inline style declaration list
func (p Params) CSS() string {
	var b strings.Builder
	fmt.Fprintf(&b, "opacity: %s; visibility: %s; ", num(p.Opacity), p.Visibility)
	fmt.Fprintf(&b, "transform: translateX(%s%%) scale(%s); ", num(p.Transform.TranslateXPercent), num(p.Transform.Scale))
	fmt.Fprintf(&b, "filter: blur(%spx) contrast(%s); ", num(p.Filter.BlurPx), num(p.Filter.Contrast))

	dur := seconds(p.Transition.Duration)
	fmt.Fprintf(&b, "transition: opacity %[1]s %[2]s, transform %[1]s %[2]s, filter %[1]s %[2]s, visibility 0s linear %[3]s;",
		dur, p.Transition.Easing, seconds(p.Transition.VisibilityDelay))
	return b.String()
}

func num(f float64) string {
	return fmt.Sprintf("%g", f)
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%gs", d.Seconds())
}
