package effect

import (
	"fmt"
	"time"
)

const (
	// SettleDuration is how long the carousel strip takes to come to rest
	SettleDuration = 450 * time.Millisecond
	// SettleEasing is the strip's settle curve
	SettleEasing = "cubic-bezier(0.25, 0.46, 0.45, 0.94)"
)

// TrackStyle positions a horizontal strip of full-width items
type TrackStyle struct {
	IndexOffsetPercent float64 // -index * 100
	DragOffsetPx       float64
	Animated           bool // false while the strip follows the pointer
}

// Track computes the strip position. While dragging the strip follows the
// pointer with no transition; on release it animates either to the new
// index (committed step) or back to rest (snap-back).
func Track(index int, offsetPx float64, dragging bool) TrackStyle {
	if !dragging {
		offsetPx = 0
	}
	return TrackStyle{
		IndexOffsetPercent: -float64(index) * 100,
		DragOffsetPx:       offsetPx,
		Animated:           !dragging,
	}
}

// CSS renders the strip's transform and transition
func (t TrackStyle) CSS() string {
	transition := "none"
	if t.Animated {
		transition = fmt.Sprintf("transform %s %s", seconds(SettleDuration), SettleEasing)
	}
	return fmt.Sprintf("transform: translateX(calc(%s%% + %spx)); transition: %s;",
		num(t.IndexOffsetPercent), num(t.DragOffsetPx), transition)
}
