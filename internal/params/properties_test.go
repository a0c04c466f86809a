package params

import (
	"math"
	"testing"
)

func TestApplyUnknownNameIsIgnored(t *testing.T) {
	p := Defaults()
	before := p
	rc, ok := p.Apply("notAProperty", 12.0)
	if ok || rc != RecomputeNone {
		t.Fatalf("unknown name: ok=%v rc=%b", ok, rc)
	}
	if p != before {
		t.Fatalf("unknown name mutated the store")
	}
}

func TestApplySpectrumScaleClamps(t *testing.T) {
	p := Defaults()
	rc, ok := p.Apply("spectrumScale", 200.0)
	if !ok {
		t.Fatalf("spectrumScale not recognized")
	}
	if !approx(p.SpectrumScale, 1.5) {
		t.Fatalf("spectrumScale=%f want 1.5", p.SpectrumScale)
	}
	if !rc.Has(RecomputeSpectrum) || rc.Has(RecomputeClockLayout) {
		t.Fatalf("unexpected recompute set %b", rc)
	}
	p.Apply("spectrumScale", 10.0)
	if !approx(p.SpectrumScale, 0.5) {
		t.Fatalf("spectrumScale=%f want 0.5", p.SpectrumScale)
	}
	p.Apply("spectrumScale", "bogus")
	if !approx(p.SpectrumScale, 0.8) {
		t.Fatalf("spectrumScale=%f want default 0.8", p.SpectrumScale)
	}
}

func TestApplyAmplitudeTriggersSurfaceResize(t *testing.T) {
	p := Defaults()
	rc, _ := p.Apply("amplitude", 120.0)
	if p.Amplitude != 120 {
		t.Fatalf("amplitude=%f want 120", p.Amplitude)
	}
	if !rc.Has(RecomputeSurface | RecomputeSpectrum) {
		t.Fatalf("amplitude must resize surface and reposition spectrum, got %b", rc)
	}
	p.Apply("amplitude", "loud")
	if p.Amplitude != DefaultAmplitude {
		t.Fatalf("non-numeric amplitude=%f want default", p.Amplitude)
	}
}

func TestApplyClockFieldOnlyTouchesClockLayout(t *testing.T) {
	p := Defaults()
	rc, _ := p.Apply("dayY", 1.0)
	if rc != RecomputeClockLayout {
		t.Fatalf("dayY recompute=%b want clock layout only", rc)
	}
	if !approx(p.Day.Y, -0.05) {
		t.Fatalf("dayY=%f want -0.05", p.Day.Y)
	}
	p.Apply("timeX", 25.0)
	if !approx(p.Time.X, 0.25) {
		t.Fatalf("timeX=%f want 0.25", p.Time.X)
	}
}

func TestApplyClockScaleDoubleRange(t *testing.T) {
	p := Defaults()
	p.Apply("dayScale", 100.0)
	if !approx(p.Day.Scale, 2.0) {
		t.Fatalf("dayScale=%f want 2.0", p.Day.Scale)
	}
	p.Apply("dateScale", 50.0)
	if !approx(p.Date.Scale, 1.0) {
		t.Fatalf("dateScale=%f want 1.0", p.Date.Scale)
	}
	p.Apply("dateScale", "?")
	if !approx(p.Date.Scale, 1.0) {
		t.Fatalf("non-numeric dateScale should keep previous, got %f", p.Date.Scale)
	}
	p.Apply("timeScale", 400.0)
	if !approx(p.Time.Scale, 2.0) {
		t.Fatalf("timeScale=%f want clamped 2.0", p.Time.Scale)
	}
}

func TestApplyTextScaleCeiling(t *testing.T) {
	p := Defaults()
	p.Apply("textScale", 180.0)
	if !approx(p.TextScale, 1.5) {
		t.Fatalf("textScale=%f want 1.5", p.TextScale)
	}
	p.Apply("textScale", nil)
	if !approx(p.TextScale, 1.5) {
		t.Fatalf("textScale=%f want previous 1.5", p.TextScale)
	}
}

func TestApplyFontKeepsLastGood(t *testing.T) {
	p := Defaults()
	p.Apply("timeFont", "Courier New")
	if p.Time.Font != 8 {
		t.Fatalf("timeFont=%d want 8", p.Time.Font)
	}
	p.Apply("timeFont", "Wingdings")
	if p.Time.Font != 8 {
		t.Fatalf("timeFont=%d want previous 8", p.Time.Font)
	}
}

func TestApplyColorsAndOpacity(t *testing.T) {
	p := Defaults()
	p.Apply("color1", "#102030")
	p.Apply("color2", "not a color")
	p.Apply("opacity", 40.0)
	if p.Color1 != (RGB{0x10, 0x20, 0x30}) {
		t.Fatalf("color1=%v", p.Color1)
	}
	if p.Color2 != White {
		t.Fatalf("color2=%v want white", p.Color2)
	}
	if !approx(p.Opacity, 0.4) {
		t.Fatalf("opacity=%f want 0.4", p.Opacity)
	}
}

func TestApplyFlagsAndFormat(t *testing.T) {
	p := Defaults()
	p.Apply("showClock", false)
	p.Apply("glow", 0.0)
	p.Apply("timeFormat", 1.0)
	p.Apply("showSeconds", "")
	if p.ShowClock || p.Glow || p.ShowSeconds {
		t.Fatalf("flags not cleared: %+v", p)
	}
	if p.TimeFormat != Format24Hour {
		t.Fatalf("timeFormat=%v want 24-hour", p.TimeFormat)
	}
}

func TestEveryPropertyIsNamed(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range PropertyNames() {
		if name == "" {
			t.Fatalf("unnamed property binding")
		}
		if seen[name] {
			t.Fatalf("duplicate property name %q", name)
		}
		seen[name] = true
		prop, ok := Lookup(name)
		if !ok || prop.String() != name {
			t.Fatalf("lookup round trip failed for %q", name)
		}
	}
}

func TestApplyNumericExtremes(t *testing.T) {
	cases := []struct {
		name  string
		value any
		get   func(p Parameters) float64
		want  float64
	}{
		{"amplitude", 1e12, func(p Parameters) float64 { return p.Amplitude }, MaxAmplitude},
		{"amplitude", math.Inf(1), func(p Parameters) float64 { return p.Amplitude }, DefaultAmplitude},
		{"amplitude", "Infinity", func(p Parameters) float64 { return p.Amplitude }, DefaultAmplitude},
		{"amplitude", -5.0, func(p Parameters) float64 { return p.Amplitude }, DefaultAmplitude},
		{"glowStrength", 1e6, func(p Parameters) float64 { return p.GlowStrength }, MaxGlowStrength},
		{"glowStrength", -3.0, func(p Parameters) float64 { return p.GlowStrength }, 0},
		{"glowStrength", "inf", func(p Parameters) float64 { return p.GlowStrength }, 0},
		{"spectrumScale", math.Inf(-1), func(p Parameters) float64 { return p.SpectrumScale }, 0.8},
		{"opacity", 1e300, func(p Parameters) float64 { return p.Opacity }, 1},
		{"timeScale", "-Infinity", func(p Parameters) float64 { return p.Time.Scale }, 1},
		{"dayY", -1e9, func(p Parameters) float64 { return p.Day.Y }, -0.05},
	}
	for _, tc := range cases {
		p := Defaults()
		p.Apply(tc.name, tc.value)
		if got := tc.get(p); !approx(got, tc.want) {
			t.Fatalf("%s=%v stored %f want %f", tc.name, tc.value, got, tc.want)
		}
	}
}

func TestApplyColorStringsKeepPrevious(t *testing.T) {
	p := Defaults()
	p.Apply("textColor", "rgb(1, 2, 3)")
	p.Apply("textColor", 42.0)
	if p.TextColor != "rgb(1, 2, 3)" {
		t.Fatalf("textColor=%q want previous value", p.TextColor)
	}
	p.Apply("background", "#101010")
	p.Apply("background", nil)
	if p.BackgroundColor != "#101010" {
		t.Fatalf("background=%q want previous value", p.BackgroundColor)
	}
}
