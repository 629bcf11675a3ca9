package domain

import (
	"fmt"
	"strings"
)

// Payload is the display data carried by an item. The controller never reads it.
type Payload struct {
	Number      string `toml:"number,omitempty"`
	Title       string `toml:"title"`
	Label       string `toml:"label,omitempty"`
	Category    string `toml:"category,omitempty"`
	Description string `toml:"description,omitempty"`
	Image       string `toml:"image,omitempty"`
	ColorLight  string `toml:"color_light,omitempty"`
	ColorDark   string `toml:"color_dark,omitempty"`
	BgLight     string `toml:"bg_light,omitempty"`
	BgDark      string `toml:"bg_dark,omitempty"`
}

// Accent returns the foreground color for the current theme
func (p Payload) Accent(dark bool) string {
	if dark && p.ColorDark != "" {
		return p.ColorDark
	}
	return p.ColorLight
}

// Background returns the background color for the current theme
func (p Payload) Background(dark bool) string {
	if dark && p.BgDark != "" {
		return p.BgDark
	}
	return p.BgLight
}

// Item is one slide, process step or card
type Item struct {
	Index   int
	Payload Payload
}

// NewItems indexes payloads in order
func NewItems(payloads []Payload) []Item {
	items := make([]Item, len(payloads))
	for i, p := range payloads {
		items[i] = Item{Index: i, Payload: p}
	}
	return items
}

// Cursor is the controller's position within the item sequence.
// ActiveIndex is always in [0, N-1]; SubProgress is always in [0, 1).
type Cursor struct {
	ActiveIndex int     `json:"active_index"`
	SubProgress float64 `json:"sub_progress"`
}

// Overall returns how far through the whole sequence the cursor is, in [0, 1)
func (c Cursor) Overall(n int) float64 {
	if n < 1 {
		return 0
	}
	return (float64(c.ActiveIndex) + c.SubProgress) / float64(n)
}

// GesturePhase is the pointer drag lifecycle
type GesturePhase int

const (
	PhaseIdle GesturePhase = iota
	PhaseDragging
)

func (p GesturePhase) String() string {
	switch p {
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// GestureState is owned by exactly one recognizer
type GestureState struct {
	Phase         GesturePhase `json:"phase"`
	PointerID     int          `json:"pointer_id"`
	OriginX       float64      `json:"origin_x"`
	CurrentDeltaX float64      `json:"current_delta_x"`
}

// AutoplayState gates the autoplay timer
type AutoplayState struct {
	Enabled   bool `json:"enabled"`
	Suspended bool `json:"suspended"`
}

// Armed reports whether ticks should be scheduled
func (s AutoplayState) Armed() bool {
	return s.Enabled && !s.Suspended
}

// Relation classifies an item against the active index
type Relation int

const (
	RelationPast Relation = iota
	RelationActive
	RelationFuture
)

func (r Relation) String() string {
	switch r {
	case RelationPast:
		return "past"
	case RelationActive:
		return "active"
	default:
		return "future"
	}
}

// RelationOf is recomputed on every cursor change, never cached
func RelationOf(index, active int) Relation {
	switch {
	case index < active:
		return RelationPast
	case index == active:
		return RelationActive
	default:
		return RelationFuture
	}
}

// Effect is the visual transition variant for an item sequence
type Effect string

const (
	EffectBlink Effect = "blink"
	EffectSlide Effect = "slide"
	EffectZoom  Effect = "zoom"
	EffectFade  Effect = "fade"
)

// Effects lists every supported variant
var Effects = []Effect{EffectBlink, EffectSlide, EffectZoom, EffectFade}

// ParseEffect maps a config string to an Effect
func ParseEffect(s string) (Effect, error) {
	e := Effect(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Effects {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEffect, s)
}

// Step moves index by delta. Circular sequences wrap modulo n,
// others clamp to [0, n-1].
func Step(index, delta, n int, circular bool) int {
	if n < 1 {
		return 0
	}
	next := index + delta
	if circular {
		next %= n
		if next < 0 {
			next += n
		}
		return next
	}
	if next < 0 {
		return 0
	}
	if next > n-1 {
		return n - 1
	}
	return next
}

// StepLabel renders the "01 / 04" counter
func StepLabel(index, n int) string {
	width := len(fmt.Sprint(n))
	if width < 2 {
		width = 2
	}
	return fmt.Sprintf("%0*d / %0*d", width, index+1, width, n)
}
