package domain

import "errors"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCursorChanged  EventType = "CursorChanged"
	EventGestureSettled EventType = "GestureSettled"
	EventThemeChanged   EventType = "ThemeChanged"
	EventSectionMounted EventType = "SectionMounted"
	EventSectionClosed  EventType = "SectionClosed"
	EventConfigLoaded   EventType = "ConfigLoaded"
	EventConfigSaved    EventType = "ConfigSaved"
	EventError          EventType = "Error"
)

// Sentinel errors shared across packages
var (
	ErrNoItems       = errors.New("item sequence is empty")
	ErrUnknownEffect = errors.New("unknown effect")
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CursorChangedEvent is emitted when a section's active index changes
type CursorChangedEvent struct {
	Section  string
	OldIndex int
	NewIndex int
	Source   string // "scroll", "drag", "autoplay", "jump"
}

func (e CursorChangedEvent) Type() EventType { return EventCursorChanged }

// GestureSettledEvent is emitted when a drag ends, committed or not
type GestureSettledEvent struct {
	Section   string
	Delta     float64
	Committed bool
}

func (e GestureSettledEvent) Type() EventType { return EventGestureSettled }

// ThemeChangedEvent carries the externally supplied dark/light signal
type ThemeChangedEvent struct {
	Dark bool
}

func (e ThemeChangedEvent) Type() EventType { return EventThemeChanged }

// SectionMountedEvent is emitted once a controller has acquired its resources
type SectionMountedEvent struct {
	Section string
	Items   int
}

func (e SectionMountedEvent) Type() EventType { return EventSectionMounted }

// SectionClosedEvent is emitted after teardown
type SectionClosedEvent struct {
	Section string
}

func (e SectionClosedEvent) Type() EventType { return EventSectionClosed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Sections int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
