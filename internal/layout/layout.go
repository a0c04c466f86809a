// Package layout derives on-screen geometry from the configuration store and
// the current viewport. Every function here is pure: the same inputs always
// produce the same output.
package layout

import (
	"math"

	"github.com/guidoenr/wallvis/internal/params"
)

// SurfacePadding is added to the amplitude to size the render surface.
const SurfacePadding = 40

// TrackBaseSize is the track text font size at scale 1.
const TrackBaseSize = 50

// MaxViewportDimension bounds each viewport side in pixels.
const MaxViewportDimension = 8192

// Viewport is the host window size in pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether the viewport has a drawable area.
func (v Viewport) Valid() bool { return v.Width > 0 && v.Height > 0 }

// Clamp limits each side to MaxViewportDimension.
func (v Viewport) Clamp() Viewport {
	return Viewport{Width: min(v.Width, MaxViewportDimension), Height: min(v.Height, MaxViewportDimension)}
}

// Size is the pixel resolution of the render surface.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Surface returns the internal resolution of the spectrum surface.
func Surface(p *params.Parameters, vp Viewport) Size {
	if vp.Width <= 0 {
		return Size{}
	}
	amp := p.Amplitude
	if math.IsNaN(amp) || amp < 0 {
		amp = 0
	}
	amp = math.Min(amp, params.MaxAmplitude)
	h := int(math.Floor(amp)) + SurfacePadding
	return Size{Width: min(vp.Width, MaxViewportDimension), Height: h}
}

// Placement is the displayed box of the surface in viewport pixels.
type Placement struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

// Spectrum centers the stretched surface on (spectrumX, spectrumY).
func Spectrum(p *params.Parameters, vp Viewport, surface Size) Placement {
	w := float64(vp.Width) * p.SpectrumScale
	h := float64(surface.Height)
	cx := float64(vp.Width) * p.SpectrumX
	cy := float64(vp.Height) * p.SpectrumY
	return Placement{
		Width:  w,
		Height: h,
		Left:   cx - w/2,
		Top:    cy - h/2,
	}
}

// ClockLine is the geometry of one clock element. Left is a percentage of
// the viewport width, Top is absolute.
type ClockLine struct {
	LeftPercent float64 `json:"leftPercent"`
	Top         float64 `json:"top"`
	FontSize    float64 `json:"fontSize"`
}

// Clock holds the three clock lines.
type Clock struct {
	Day  ClockLine `json:"day"`
	Date ClockLine `json:"date"`
	Time ClockLine `json:"time"`
}

// ClockLayout positions the day, date and time lines.
func ClockLayout(p *params.Parameters, vp Viewport) Clock {
	h := float64(vp.Height)
	return Clock{
		Day:  clockLine(p.Day, h),
		Date: clockLine(p.Date, h),
		Time: clockLine(p.Time, h),
	}
}

func clockLine(f params.ClockField, viewportHeight float64) ClockLine {
	return ClockLine{
		LeftPercent: f.X * 100,
		Top:         viewportHeight * f.Y,
		FontSize:    f.BaseSize * f.Scale,
	}
}

// ClockFonts holds the resolved family chain per clock line.
type ClockFonts struct {
	Day  string `json:"day"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Fonts resolves the clock font indices against the font table.
func Fonts(p *params.Parameters) ClockFonts {
	return ClockFonts{
		Day:  params.FontFamily(p.Day.Font),
		Date: params.FontFamily(p.Date.Font),
		Time: params.FontFamily(p.Time.Font),
	}
}

// Track is the placement of the track text block.
type Track struct {
	FontSize float64 `json:"fontSize"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
}

// TrackText anchors the visual center of the text block at (textX, textY).
func TrackText(p *params.Parameters, vp Viewport, text string, m Measurer) Track {
	size := TrackBaseSize * p.TextScale
	var ext Extent
	if m != nil {
		ext = m.Measure(text, size)
	}
	return Track{
		FontSize: size,
		Left:     float64(vp.Width)*p.TextX - (ext.Width+1)/2,
		Top:      float64(vp.Height)*p.TextY - (ext.Height+1)/2,
	}
}

// Visibility is the shown/hidden state of every element.
type Visibility struct {
	Visualizer bool `json:"visualizer"`
	TrackText  bool `json:"trackText"`
	Clock      bool `json:"clock"`
	Day        bool `json:"day"`
	Date       bool `json:"date"`
	Time       bool `json:"time"`
}

// Visible gates the track text on the visualizer and each clock line on the
// master clock flag.
func Visible(p *params.Parameters) Visibility {
	return Visibility{
		Visualizer: p.ShowVisualizer,
		TrackText:  p.ShowVisualizer && p.ShowTrackText,
		Clock:      p.ShowClock,
		Day:        p.ShowClock && p.ShowDay,
		Date:       p.ShowClock && p.ShowDate,
		Time:       p.ShowClock && p.ShowTime,
	}
}

// BackgroundMode selects which background layer is shown.
type BackgroundMode string

const (
	BackgroundFallback BackgroundMode = "fallback"
	BackgroundImage    BackgroundMode = "image"
	BackgroundVideo    BackgroundMode = "video"
)

// Background picks video over image over the plain fallback.
func Background(p *params.Parameters) BackgroundMode {
	switch {
	case p.UseVideo:
		return BackgroundVideo
	case p.UseImage:
		return BackgroundImage
	default:
		return BackgroundFallback
	}
}
