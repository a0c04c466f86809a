// Package overlay is the reactive core of the wallpaper: it owns the
// configuration store, applies host property updates, keeps the derived
// scene in sync and renders amplitude frames.
//
// An Overlay is not safe for concurrent use. Callers must deliver entry
// points one at a time, in order.
package overlay

import (
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/guidoenr/wallvis/internal/clock"
	"github.com/guidoenr/wallvis/internal/layout"
	"github.com/guidoenr/wallvis/internal/params"
	"github.com/guidoenr/wallvis/internal/render"
)

// Overlay ties the store, the renderer and the derived scene together.
type Overlay struct {
	params   params.Parameters
	viewport layout.Viewport
	renderer *render.Renderer
	measurer layout.Measurer
	now      func() time.Time
	scene    Scene
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithClock replaces the time source used by Tick.
func WithClock(now func() time.Time) Option {
	return func(o *Overlay) { o.now = now }
}

// WithMeasurer replaces the track text measurer.
func WithMeasurer(m layout.Measurer) Option {
	return func(o *Overlay) { o.measurer = m }
}

// WithViewport sets the initial viewport.
func WithViewport(vp layout.Viewport) Option {
	return func(o *Overlay) { o.viewport = vp }
}

// New creates an Overlay with default configuration and derives the full
// scene once.
func New(opts ...Option) *Overlay {
	o := &Overlay{
		params:   params.Defaults(),
		measurer: layout.NewFaceMeasurer(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.viewport = o.viewport.Clamp()
	o.renderer = render.New(layout.Size{})
	o.recompute(params.RecomputeAll)
	return o
}

// ApplyProperty writes a host property and reruns the passes that depend
// on it. It reports whether the name was recognized.
func (o *Overlay) ApplyProperty(name string, value any) bool {
	if o == nil {
		return false
	}
	rc, ok := o.params.Apply(name, value)
	if !ok {
		return false
	}
	o.recompute(rc)
	return true
}

// Render draws one amplitude frame. Hidden visualizers and empty frames
// draw nothing.
func (o *Overlay) Render(frame []float64) bool {
	if o == nil || !o.params.ShowVisualizer {
		return false
	}
	return o.renderer.Render(o.params, frame)
}

// SetTrackText replaces the track text and applies the configured color.
func (o *Overlay) SetTrackText(text string) {
	if o == nil {
		return
	}
	o.scene.Track.Text = text
	o.recompute(params.RecomputeTrackColor | params.RecomputeTrackText)
}

// Tick refreshes the clock text.
func (o *Overlay) Tick() {
	if o == nil {
		return
	}
	o.recompute(params.RecomputeClockText)
}

// Resize re-derives every viewport dependent pass from scratch. Sides above
// layout.MaxViewportDimension are clamped.
func (o *Overlay) Resize(vp layout.Viewport) {
	if o == nil {
		return
	}
	o.viewport = vp.Clamp()
	o.recompute(params.RecomputeSurface | params.RecomputeSpectrum | params.RecomputeClockLayout | params.RecomputeTrackText)
}

// Scene returns a copy of the derived scene.
func (o *Overlay) Scene() Scene {
	if o == nil {
		return Scene{}
	}
	return o.scene
}

// Params returns a copy of the configuration store.
func (o *Overlay) Params() params.Parameters {
	if o == nil {
		return params.Defaults()
	}
	return o.params
}

// Surface returns the render surface pixels.
func (o *Overlay) Surface() *image.RGBA {
	if o == nil {
		return nil
	}
	return o.renderer.Surface()
}

// Preview composes the background color and the placed surface into dst.
func (o *Overlay) Preview(dst *image.RGBA) {
	if o == nil || dst == nil {
		return
	}
	var surface *image.RGBA
	if o.scene.Visibility.Visualizer {
		surface = o.renderer.Surface()
	}
	render.Compose(dst, surface, o.scene.Spectrum, previewBackground(o.scene.Background.Color))
}

func (o *Overlay) recompute(rc params.Recompute) {
	p := &o.params
	s := &o.scene
	s.Viewport = o.viewport

	if rc.Has(params.RecomputeSurface) {
		s.Surface = layout.Surface(p, o.viewport)
		o.renderer.Resize(s.Surface)
	}
	if rc.Has(params.RecomputeSpectrum) || rc.Has(params.RecomputeSurface) {
		s.Spectrum = layout.Spectrum(p, o.viewport, s.Surface)
	}
	if rc.Has(params.RecomputeTrackColor) {
		s.Track.Color = p.TextColor
	}
	if rc.Has(params.RecomputeTrackText) {
		s.Track.Layout = layout.TrackText(p, o.viewport, s.Track.Text, o.measurer)
	}
	if rc.Has(params.RecomputeClockLayout) {
		s.Clock.Layout = layout.ClockLayout(p, o.viewport)
	}
	if rc.Has(params.RecomputeClockFonts) {
		s.Clock.Fonts = layout.Fonts(p)
	}
	if rc.Has(params.RecomputeClockText) {
		s.Clock.Text = clock.Format(o.now(), p.TimeFormat, p.ShowSeconds)
	}
	if rc.Has(params.RecomputeVisibility) {
		s.Visibility = layout.Visible(p)
	}
	if rc.Has(params.RecomputeImageSource) {
		s.Background.Image = p.ImagePath
	}
	if rc.Has(params.RecomputeVideoSource) {
		s.Background.Video = p.VideoPath
	}
	if rc.Has(params.RecomputeBackground) {
		s.Background.Mode = layout.Background(p)
	}
	if rc.Has(params.RecomputeBackgroundColor) {
		s.Background.Color = p.BackgroundColor
	}
}

func previewBackground(css string) color.Color {
	if !strings.HasPrefix(strings.TrimSpace(css), "#") {
		return color.Black
	}
	c := params.HexToTriple(css)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
