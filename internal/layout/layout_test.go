package layout

import (
	"math"
	"testing"

	"github.com/guidoenr/wallvis/internal/params"
)

type fixedMeasurer Extent

func (f fixedMeasurer) Measure(string, float64) Extent { return Extent(f) }

var hd = Viewport{Width: 1920, Height: 1080}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSurfaceFollowsAmplitude(t *testing.T) {
	p := params.Defaults()
	got := Surface(&p, hd)
	if got != (Size{Width: 1920, Height: 340}) {
		t.Fatalf("surface=%+v want 1920x340", got)
	}
	if s := Surface(&p, Viewport{}); s != (Size{}) {
		t.Fatalf("empty viewport should give empty surface, got %+v", s)
	}
}

func TestSpectrumPlacementCentered(t *testing.T) {
	p := params.Defaults()
	surface := Surface(&p, hd)
	got := Spectrum(&p, hd, surface)
	vw, vh := float64(hd.Width), float64(hd.Height)
	want := Placement{
		Width:  vw * 0.8,
		Height: 340,
		Left:   vw*0.5 - vw*0.8/2,
		Top:    vh*0.8 - 170,
	}
	if !near(got.Width, want.Width) || !near(got.Height, want.Height) || !near(got.Left, want.Left) || !near(got.Top, want.Top) {
		t.Fatalf("placement=%+v want=%+v", got, want)
	}
}

func TestClockLayoutDayAboveTop(t *testing.T) {
	p := params.Defaults()
	p.Apply("dayY", 1.0)
	c := ClockLayout(&p, hd)
	if !near(c.Day.Top, -0.05*1080) {
		t.Fatalf("day top=%f want %f", c.Day.Top, -0.05*1080)
	}
	if c.Time.FontSize != 60 || c.Date.FontSize != 20 || c.Day.FontSize != 30 {
		t.Fatalf("unexpected font sizes %+v", c)
	}
	if c.Date.LeftPercent != 50 {
		t.Fatalf("date left=%f want 50%%", c.Date.LeftPercent)
	}
}

func TestTrackTextCenteredOnAnchor(t *testing.T) {
	p := params.Defaults()
	m := fixedMeasurer{Width: 199, Height: 59}
	got := TrackText(&p, hd, "Song", m)
	if got.FontSize != 50 {
		t.Fatalf("font size=%f want 50", got.FontSize)
	}
	if !near(got.Left, 860) || !near(got.Top, 510) {
		t.Fatalf("track=%+v", got)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	p := params.Defaults()
	p.Apply("timeScale", 73.0)
	p.Apply("spectrumX", 12.0)
	m := NewFaceMeasurer()
	surface := Surface(&p, hd)
	for i := 0; i < 3; i++ {
		if ClockLayout(&p, hd) != ClockLayout(&p, hd) {
			t.Fatalf("clock layout not idempotent")
		}
		if Spectrum(&p, hd, surface) != Spectrum(&p, hd, Surface(&p, hd)) {
			t.Fatalf("spectrum placement not idempotent")
		}
		if TrackText(&p, hd, "Artist - Title", m) != TrackText(&p, hd, "Artist - Title", m) {
			t.Fatalf("track text not idempotent")
		}
	}
}

func TestVisibilityGating(t *testing.T) {
	p := params.Defaults()
	p.ShowClock = false
	p.ShowVisualizer = false
	v := Visible(&p)
	if v.Day || v.Date || v.Time || v.Clock {
		t.Fatalf("clock lines must hide with master flag: %+v", v)
	}
	if v.TrackText {
		t.Fatalf("track text must hide with visualizer")
	}
	p.ShowClock = true
	p.ShowDate = false
	v = Visible(&p)
	if !v.Day || v.Date || !v.Time {
		t.Fatalf("per-line flags not honored: %+v", v)
	}
}

func TestBackgroundPriority(t *testing.T) {
	p := params.Defaults()
	p.UseImage = true
	if Background(&p) != BackgroundVideo {
		t.Fatalf("video should win")
	}
	p.UseVideo = false
	if Background(&p) != BackgroundImage {
		t.Fatalf("image expected")
	}
	p.UseImage = false
	if Background(&p) != BackgroundFallback {
		t.Fatalf("fallback expected")
	}
}

func TestFaceMeasurerScales(t *testing.T) {
	m := NewFaceMeasurer()
	small := m.Measure("abcd", 13)
	big := m.Measure("abcd", 26)
	if small.Width != 28 {
		t.Fatalf("width at 13px=%f want 28", small.Width)
	}
	if big.Width != 2*small.Width || big.Height != 2*small.Height {
		t.Fatalf("extent should scale with size: %+v vs %+v", small, big)
	}
	if e := m.Measure("", 50); e != (Extent{}) {
		t.Fatalf("empty text should measure zero, got %+v", e)
	}
	two := m.Measure("ab\ncd", 13)
	if two.Height <= small.Height {
		t.Fatalf("two lines should be taller")
	}
}

func TestSurfaceBounded(t *testing.T) {
	cases := []struct {
		amplitude float64
		vp        Viewport
		want      Size
	}{
		{1e12, hd, Size{Width: 1920, Height: params.MaxAmplitude + SurfacePadding}},
		{math.Inf(1), hd, Size{Width: 1920, Height: params.MaxAmplitude + SurfacePadding}},
		{math.NaN(), hd, Size{Width: 1920, Height: SurfacePadding}},
		{-50, hd, Size{Width: 1920, Height: SurfacePadding}},
		{300, Viewport{Width: 1 << 30, Height: 100}, Size{Width: MaxViewportDimension, Height: 340}},
	}
	for _, tc := range cases {
		p := params.Defaults()
		p.Amplitude = tc.amplitude
		if got := Surface(&p, tc.vp); got != tc.want {
			t.Fatalf("Surface(amp=%v, %+v)=%+v want %+v", tc.amplitude, tc.vp, got, tc.want)
		}
	}
}

func TestViewportClamp(t *testing.T) {
	got := Viewport{Width: 100000, Height: 720}.Clamp()
	if got != (Viewport{Width: MaxViewportDimension, Height: 720}) {
		t.Fatalf("clamp=%+v", got)
	}
	if hd.Clamp() != hd {
		t.Fatalf("in-range viewport must be unchanged")
	}
}
