package web

import (
	"fmt"

	"github.com/guidoenr/wallvis/internal/app"
	"github.com/guidoenr/wallvis/internal/layout"
	"github.com/guidoenr/wallvis/internal/overlay"
	"github.com/guidoenr/wallvis/internal/render"
)

// Message is an inbound host callback. The same shape is accepted on the
// websocket (with Type set) and, per route, on the REST endpoints.
type Message struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Value  any    `json:"value,omitempty"`
	Frame  []any  `json:"frame,omitempty"`
	Text   string `json:"text,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Event converts the message into an engine event.
func (m Message) Event() (app.Event, error) {
	switch m.Type {
	case "property":
		if m.Name == "" {
			return app.Event{}, fmt.Errorf("property message without name")
		}
		return app.PropertyEvent(m.Name, m.Value), nil
	case "audio":
		return app.AudioEvent(render.FrameFromValues(m.Frame)), nil
	case "track":
		return app.TrackEvent(m.Text), nil
	case "resize":
		if m.Width <= 0 || m.Height <= 0 || m.Width > layout.MaxViewportDimension || m.Height > layout.MaxViewportDimension {
			return app.Event{}, fmt.Errorf("invalid viewport %dx%d", m.Width, m.Height)
		}
		return app.ResizeEvent(m.Width, m.Height), nil
	default:
		return app.Event{}, fmt.Errorf("unknown message type %q", m.Type)
	}
}

// SceneMessage is pushed to websocket clients whenever the scene changes.
type SceneMessage struct {
	Type  string        `json:"type"`
	Scene overlay.Scene `json:"scene"`
}

// FontInfo describes one font table slot.
type FontInfo struct {
	Index  int    `json:"index"`
	Family string `json:"family"`
}
