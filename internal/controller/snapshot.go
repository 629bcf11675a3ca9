package controller

import (
	"scrollstage/internal/domain"
	"scrollstage/internal/effect"
)

// Snapshot is a plain copy of a controller's state, handed to the
// presentation layer after every change.
type Snapshot struct {
	Name        string               `json:"name"`
	Items       int                  `json:"items"`
	Cursor      domain.Cursor        `json:"cursor"`
	Gesture     domain.GestureState  `json:"gesture"`
	Autoplay    domain.AutoplayState `json:"autoplay"`
	Hovered     bool                 `json:"hovered"`
	Dark        bool                 `json:"dark"`
	Effect      domain.Effect        `json:"effect"`
	Circular    bool                 `json:"circular"`
	ScrollDist  float64              `json:"scroll_distance"`
	ScrollRange float64              `json:"scroll_range"`
}

// Dragging reports whether a gesture is in progress
func (s Snapshot) Dragging() bool {
	return s.Gesture.Phase == domain.PhaseDragging
}

// Relation classifies item i against the active index
func (s Snapshot) Relation(i int) domain.Relation {
	return domain.RelationOf(i, s.Cursor.ActiveIndex)
}

// Styles returns the animation targets for every item
func (s Snapshot) Styles() []effect.Params {
	return effect.ForItems(s.Items, s.Cursor.ActiveIndex, s.Effect)
}

// Track returns the strip position for drag-driven sections
func (s Snapshot) Track() effect.TrackStyle {
	return effect.Track(s.Cursor.ActiveIndex, s.Gesture.CurrentDeltaX, s.Dragging())
}

// Progress is the fraction of the whole sequence already passed
func (s Snapshot) Progress() float64 {
	return s.Cursor.Overall(s.Items)
}

// AtStart reports whether a "previous" control should be disabled
func (s Snapshot) AtStart() bool {
	return !s.Circular && s.Cursor.ActiveIndex == 0
}

// AtEnd reports whether the cursor sits on the last item of a clamped sequence
func (s Snapshot) AtEnd() bool {
	return !s.Circular && s.Cursor.ActiveIndex == s.Items-1
}
