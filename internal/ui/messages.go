package ui

import (
	"scrollstage/internal/controller"
	"scrollstage/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// snapshotMsg is sent when a controller changed outside of Update,
// e.g. on an autoplay tick or a theme signal
type snapshotMsg struct {
	section  int
	snapshot controller.Snapshot
}

// frameMsg flushes the queued scroll sample of a section
type frameMsg struct {
	section int
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
