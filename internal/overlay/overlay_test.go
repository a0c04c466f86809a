package overlay

import (
	"image"
	"math"
	"testing"
	"time"

	"github.com/guidoenr/wallvis/internal/layout"
	"github.com/guidoenr/wallvis/internal/params"
)

var viewport = layout.Viewport{Width: 1280, Height: 720}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 3, 14, 5, 9, 0, time.UTC)
}

func newTestOverlay() *Overlay {
	return New(WithViewport(viewport), WithClock(fixedNow))
}

func TestNewDerivesFullScene(t *testing.T) {
	o := newTestOverlay()
	s := o.Scene()
	if s.Surface != (layout.Size{Width: 1280, Height: 340}) {
		t.Fatalf("surface=%+v", s.Surface)
	}
	if !s.Visibility.Visualizer || !s.Visibility.Clock || !s.Visibility.TrackText {
		t.Fatalf("defaults should show everything: %+v", s.Visibility)
	}
	if s.Background.Mode != layout.BackgroundVideo || s.Background.Video != params.DefaultVideoPath {
		t.Fatalf("background=%+v", s.Background)
	}
	if s.Clock.Text.Time != "02:05:09 PM" {
		t.Fatalf("clock time=%q", s.Clock.Text.Time)
	}
	if s.Clock.Fonts.Day != params.FontFamily(0) {
		t.Fatalf("day font=%q", s.Clock.Fonts.Day)
	}
}

func TestUnknownPropertyIsNoop(t *testing.T) {
	o := newTestOverlay()
	before := o.Scene()
	if o.ApplyProperty("sparkles", true) {
		t.Fatalf("unknown property reported as applied")
	}
	if o.Scene() != before || o.Params() != params.Defaults() {
		t.Fatalf("unknown property changed state")
	}
}

func TestTimeFormatAndSeconds(t *testing.T) {
	o := newTestOverlay()
	o.ApplyProperty("timeFormat", 1.0)
	o.ApplyProperty("showSeconds", true)
	o.Tick()
	if got := o.Scene().Clock.Text.Time; got != "14:05:09" {
		t.Fatalf("24h time=%q want 14:05:09", got)
	}

	o = newTestOverlay()
	o.ApplyProperty("showSeconds", false)
	o.Tick()
	if got := o.Scene().Clock.Text.Time; got != "02:05 PM" {
		t.Fatalf("12h time=%q want \"02:05 PM\"", got)
	}
}

func TestDayYAboveViewport(t *testing.T) {
	o := newTestOverlay()
	o.ApplyProperty("dayY", 1.0)
	top := o.Scene().Clock.Layout.Day.Top
	if math.Abs(top-(-0.05*720)) > 1e-9 {
		t.Fatalf("day top=%f want %f", top, -0.05*720)
	}
}

func TestAmplitudeResizesSurface(t *testing.T) {
	o := newTestOverlay()
	o.ApplyProperty("amplitude", 100.0)
	s := o.Scene()
	if s.Surface.Height != 140 {
		t.Fatalf("surface height=%d want 140", s.Surface.Height)
	}
	if s.Spectrum.Height != 140 {
		t.Fatalf("placement height=%f want 140", s.Spectrum.Height)
	}
	if b := o.Surface().Bounds(); b.Dy() != 140 || b.Dx() != 1280 {
		t.Fatalf("renderer surface=%v", b)
	}
}

func TestResizeRederivesLayout(t *testing.T) {
	o := newTestOverlay()
	o.SetTrackText("Artist - Title")
	o.Resize(layout.Viewport{Width: 800, Height: 600})
	s := o.Scene()

	fresh := New(WithViewport(layout.Viewport{Width: 800, Height: 600}), WithClock(fixedNow))
	fresh.SetTrackText("Artist - Title")
	want := fresh.Scene()

	if s.Surface != want.Surface || s.Spectrum != want.Spectrum || s.Clock.Layout != want.Clock.Layout || s.Track != want.Track {
		t.Fatalf("resize left stale layout:\n got=%+v\nwant=%+v", s, want)
	}
}

func TestRepeatedUpdatesAreIdempotent(t *testing.T) {
	o := newTestOverlay()
	o.ApplyProperty("spectrumX", 30.0)
	first := o.Scene()
	for i := 0; i < 5; i++ {
		o.ApplyProperty("spectrumX", 30.0)
		o.Resize(viewport)
	}
	if o.Scene() != first {
		t.Fatalf("repeated updates drifted")
	}
}

func TestTrackTextColorAndVisibility(t *testing.T) {
	o := newTestOverlay()
	o.ApplyProperty("textColor", "#00FF00")
	o.SetTrackText("Now Playing")
	s := o.Scene()
	if s.Track.Color != "#00FF00" || s.Track.Text != "Now Playing" {
		t.Fatalf("track=%+v", s.Track)
	}
	o.ApplyProperty("showVisualizer", false)
	if o.Scene().Visibility.TrackText {
		t.Fatalf("track text should hide with the visualizer")
	}
}

func TestRenderHonorsVisibility(t *testing.T) {
	o := newTestOverlay()
	if !o.Render([]float64{0.5, 1}) {
		t.Fatalf("expected render")
	}
	if o.Render(nil) {
		t.Fatalf("empty frame should not render")
	}
	o.ApplyProperty("showVisualizer", false)
	if o.Render([]float64{0.5, 1}) {
		t.Fatalf("hidden visualizer should not render")
	}
}

func TestRenderDoesNotMutateStore(t *testing.T) {
	o := newTestOverlay()
	before := o.Params()
	o.Render([]float64{0.1, 0.9, 250})
	if o.Params() != before {
		t.Fatalf("render mutated the store")
	}
}

func TestNilOverlayIsSafe(t *testing.T) {
	var o *Overlay
	o.ApplyProperty("opacity", 10.0)
	o.SetTrackText("x")
	o.Tick()
	o.Resize(viewport)
	o.Preview(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if o.Render([]float64{1}) {
		t.Fatalf("nil overlay rendered")
	}
	if o.Surface() != nil {
		t.Fatalf("nil overlay has a surface")
	}
}

func TestRenderBeforeViewportIsNoop(t *testing.T) {
	o := New(WithClock(fixedNow))
	if o.Render([]float64{1, 1}) {
		t.Fatalf("render without a viewport should be a no-op")
	}
}

func TestPreviewPlacesSurface(t *testing.T) {
	o := New(WithViewport(layout.Viewport{Width: 200, Height: 400}), WithClock(fixedNow))
	o.ApplyProperty("glow", false)
	o.ApplyProperty("background", "#000000")
	o.Render([]float64{1})
	dst := image.NewRGBA(image.Rect(0, 0, 200, 400))
	o.Preview(dst)

	s := o.Scene()
	cx := int(s.Spectrum.Left + s.Spectrum.Width/4)
	cy := int(s.Spectrum.Top + s.Spectrum.Height/2)
	if dst.RGBAAt(cx, cy).R == 0 {
		t.Fatalf("expected bar pixels at (%d,%d)", cx, cy)
	}
	if got := dst.RGBAAt(2, 2); got.R != 0 || got.A != 255 {
		t.Fatalf("background pixel=%v", got)
	}
}

func TestExtremeValuesStayBounded(t *testing.T) {
	o := newTestOverlay()
	o.ApplyProperty("amplitude", 1e12)
	if got := o.Scene().Surface; got != (layout.Size{Width: 1280, Height: params.MaxAmplitude + layout.SurfacePadding}) {
		t.Fatalf("surface=%+v want amplitude ceiling", got)
	}
	o.ApplyProperty("amplitude", "Infinity")
	if got := o.Scene().Surface.Height; got != params.DefaultAmplitude+layout.SurfacePadding {
		t.Fatalf("non-finite amplitude surface height=%d want default", got)
	}
	o.ApplyProperty("glowStrength", 1e6)
	if got := o.Params().GlowStrength; got != params.MaxGlowStrength {
		t.Fatalf("glowStrength=%f want %d", got, params.MaxGlowStrength)
	}

	o.Resize(layout.Viewport{Width: 1 << 30, Height: math.MaxInt32})
	s := o.Scene()
	if s.Viewport != (layout.Viewport{Width: layout.MaxViewportDimension, Height: layout.MaxViewportDimension}) {
		t.Fatalf("viewport=%+v want clamped", s.Viewport)
	}
	if s.Surface.Width != layout.MaxViewportDimension {
		t.Fatalf("surface width=%d want %d", s.Surface.Width, layout.MaxViewportDimension)
	}

	o.Resize(layout.Viewport{Width: 200, Height: 100})
	if !o.Render([]float64{1, 0.5}) {
		t.Fatalf("frame should draw after extreme updates")
	}
}
