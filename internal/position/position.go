// Package position maps a continuous scroll offset onto a discrete cursor.
//
// A scroll-driven section distributes its N items evenly over a scroll range
// (container height minus viewport height). Compute is the forward mapping,
// TargetOffset the inverse used by explicit "jump to step" controls.
package position

import (
	"errors"
	"fmt"
	"math"

	"scrollstage/internal/domain"
)

const (
	// Epsilon keeps p strictly below 1 so floor(p*N) never reaches N
	Epsilon = 1e-4
	// PastEndMargin is added to the range when jumping past the last item
	PastEndMargin = 2.0
)

// ErrEmptyRange means the container fits in one screen; callers check this first
var ErrEmptyRange = errors.New("scroll range must be positive")

// Compute converts how far a container has scrolled into a cursor.
func Compute(scrolledDistance, scrollRange float64, itemCount int) (domain.Cursor, error) {
	if itemCount < 1 {
		return domain.Cursor{}, domain.ErrNoItems
	}
	if !(scrollRange > 0) {
		return domain.Cursor{}, fmt.Errorf("%w: got %v", ErrEmptyRange, scrollRange)
	}

	p := scrolledDistance / scrollRange
	if math.IsNaN(p) || p < 0 {
		p = 0
	}
	if p > 1-Epsilon {
		p = 1 - Epsilon
	}

	scaled := p * float64(itemCount)
	active := int(math.Floor(scaled))
	if active > itemCount-1 {
		active = itemCount - 1
	}
	sub := scaled - math.Floor(scaled)
	if sub >= 1 {
		sub = 0
	}
	return domain.Cursor{ActiveIndex: active, SubProgress: sub}, nil
}

// TargetOffset is the scroll offset at which item index begins.
// index >= itemCount is the sentinel for "just past the tracked section".
func TargetOffset(index int, scrollRange float64, itemCount int) float64 {
	if itemCount < 1 {
		return 0
	}
	if index >= itemCount {
		return scrollRange + PastEndMargin
	}
	if index < 0 {
		index = 0
	}
	return float64(index) / float64(itemCount) * scrollRange
}

// SegmentLength is the scroll distance allotted to each item
func SegmentLength(scrollRange float64, itemCount int) float64 {
	if itemCount < 1 {
		return 0
	}
	return scrollRange / float64(itemCount)
}
