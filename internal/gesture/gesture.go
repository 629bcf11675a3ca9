package gesture

import (
	"math"

	"scrollstage/internal/domain"
)

// DefaultThreshold is the drag distance, in px, that commits a step
const DefaultThreshold = 50.0

// Release is the outcome of a finished gesture
type Release struct {
	Step      int     // -1, 0 or +1
	Delta     float64 // final horizontal displacement
	Committed bool
}

// Recognizer tracks one pointer drag on one interactive element
type Recognizer struct {
	threshold float64
	state     domain.GestureState
}

// New creates a recognizer; a non-positive threshold falls back to the default
func New(threshold float64) *Recognizer {
	if !(threshold > 0) {
		threshold = DefaultThreshold
	}
	return &Recognizer{threshold: threshold}
}

// Threshold returns the commit threshold in px
func (r *Recognizer) Threshold() float64 {
	return r.threshold
}

// State returns a copy of the gesture state
func (r *Recognizer) State() domain.GestureState {
	return r.state
}

// Dragging reports whether a gesture is in progress
func (r *Recognizer) Dragging() bool {
	return r.state.Phase == domain.PhaseDragging
}

// Offset is the live, reversible visual offset while dragging
func (r *Recognizer) Offset() float64 {
	if !r.Dragging() {
		return 0
	}
	return r.state.CurrentDeltaX
}

// Down captures the pointer. A second pointer-down while a gesture is
// active is refused so the element never has two concurrent captures.
func (r *Recognizer) Down(pointerID int, x float64) bool {
	if r.Dragging() {
		return false
	}
	r.state = domain.GestureState{
		Phase:     domain.PhaseDragging,
		PointerID: pointerID,
		OriginX:   x,
	}
	return true
}

// Move updates the delta for the captured pointer. Moves from other
// pointers, or with no gesture active, are ignored.
func (r *Recognizer) Move(pointerID int, x float64) (float64, bool) {
	if !r.Dragging() || pointerID != r.state.PointerID {
		return 0, false
	}
	r.state.CurrentDeltaX = x - r.state.OriginX
	return r.state.CurrentDeltaX, true
}

// Up ends the gesture and decides whether it produced a step
func (r *Recognizer) Up(pointerID int) Release {
	if !r.Dragging() || pointerID != r.state.PointerID {
		return Release{}
	}
	delta := r.state.CurrentDeltaX
	r.state = domain.GestureState{}

	rel := Release{Delta: delta}
	if math.Abs(delta) > r.threshold {
		rel.Committed = true
		if delta < 0 {
			rel.Step = 1
		} else {
			rel.Step = -1
		}
	}
	return rel
}

// Cancel is treated exactly like Up
func (r *Recognizer) Cancel(pointerID int) Release {
	return r.Up(pointerID)
}

// Abort drops any gesture regardless of pointer, committing nothing.
// Used when the owning element loses focus or is torn down.
func (r *Recognizer) Abort() Release {
	if !r.Dragging() {
		return Release{}
	}
	delta := r.state.CurrentDeltaX
	r.state = domain.GestureState{}
	return Release{Delta: delta}
}
