package overlay

import (
	"github.com/guidoenr/wallvis/internal/clock"
	"github.com/guidoenr/wallvis/internal/layout"
)

// Background describes the background layers.
type Background struct {
	Mode  layout.BackgroundMode `json:"mode"`
	Color string                `json:"color,omitempty"`
	Image string                `json:"image"`
	Video string                `json:"video"`
}

// TrackState is the track text element.
type TrackState struct {
	Text   string       `json:"text"`
	Color  string       `json:"color"`
	Layout layout.Track `json:"layout"`
}

// ClockState is the clock container and its three lines.
type ClockState struct {
	Text   clock.Text        `json:"text"`
	Layout layout.Clock      `json:"layout"`
	Fonts  layout.ClockFonts `json:"fonts"`
}

// Scene is every outbound attribute the host applies to its elements.
type Scene struct {
	Viewport   layout.Viewport   `json:"viewport"`
	Surface    layout.Size       `json:"surface"`
	Spectrum   layout.Placement  `json:"spectrum"`
	Track      TrackState        `json:"track"`
	Clock      ClockState        `json:"clock"`
	Visibility layout.Visibility `json:"visibility"`
	Background Background        `json:"background"`
}
