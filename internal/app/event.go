package app

import (
	"fmt"

	"github.com/guidoenr/wallvis/internal/layout"
)

// EventKind identifies a host callback.
type EventKind int

const (
	EventProperty EventKind = iota
	EventAudio
	EventTrack
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventProperty:
		return "property"
	case EventAudio:
		return "audio"
	case EventTrack:
		return "track"
	case EventResize:
		return "resize"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one host callback queued for the engine goroutine.
type Event struct {
	Kind     EventKind
	Name     string
	Value    any
	Frame    []float64
	Text     string
	Viewport layout.Viewport
}

// PropertyEvent builds an apply-property event.
func PropertyEvent(name string, value any) Event {
	return Event{Kind: EventProperty, Name: name, Value: value}
}

// AudioEvent builds a render event.
func AudioEvent(frame []float64) Event {
	return Event{Kind: EventAudio, Frame: frame}
}

// TrackEvent builds a set-track-text event.
func TrackEvent(text string) Event {
	return Event{Kind: EventTrack, Text: text}
}

// ResizeEvent builds a viewport resize event.
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Viewport: layout.Viewport{Width: width, Height: height}}
}
