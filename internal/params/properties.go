package params

import "math"

// Recompute is the set of derived passes a property change invalidates.
type Recompute uint16

const (
	RecomputeSurface Recompute = 1 << iota
	RecomputeSpectrum
	RecomputeTrackText
	RecomputeTrackColor
	RecomputeClockLayout
	RecomputeClockFonts
	RecomputeClockText
	RecomputeVisibility
	RecomputeBackground
	RecomputeImageSource
	RecomputeVideoSource
	RecomputeBackgroundColor

	RecomputeNone Recompute = 0
	RecomputeAll            = RecomputeBackgroundColor<<1 - 1
)

// Has reports whether every pass in other is part of r.
func (r Recompute) Has(other Recompute) bool {
	return r&other == other && other != 0
}

// Property identifies a recognized host parameter.
type Property int

const (
	PropColor1 Property = iota
	PropColor2
	PropBackground
	PropGlow
	PropGlowStrength
	PropTextColor
	PropAmplitude
	PropSpectrumScale
	PropSpectrumX
	PropSpectrumY
	PropTextScale
	PropTextX
	PropTextY
	PropUseImage
	PropImagePath
	PropUseVideo
	PropVideoPath
	PropOpacity
	PropShowVisualizer
	PropShowTrackText
	PropShowClock
	PropShowDay
	PropShowDate
	PropShowTime
	PropShowSeconds
	PropTimeFormat
	PropDayFont
	PropDateFont
	PropTimeFont
	PropDayScale
	PropDayX
	PropDayY
	PropDateScale
	PropDateX
	PropDateY
	PropTimeScale
	PropTimeX
	PropTimeY

	propertyCount
)

type binding struct {
	name      string
	apply     func(p *Parameters, v any)
	recompute Recompute
}

var (
	spectrumScaleDomain = Domain{Min: 50, Max: 150}
	clockScale          = percentScale(PercentDomain, 2.0)
	textScale           = percentScale(spectrumScaleDomain, 1.0)
)

// cssColor accepts any string; the host validates CSS colors itself.
func cssColor(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

var bindings = [propertyCount]binding{
	PropColor1: {"color1", func(p *Parameters, v any) { p.Color1 = HexToTriple(v) }, RecomputeNone},
	PropColor2: {"color2", func(p *Parameters, v any) { p.Color2 = HexToTriple(v) }, RecomputeNone},
	PropBackground: {"background", func(p *Parameters, v any) {
		p.BackgroundColor = KeepPrevious(p.BackgroundColor, cssColor, v)
	}, RecomputeBackgroundColor},
	PropGlow: {"glow", func(p *Parameters, v any) { p.Glow = Truthy(v) }, RecomputeNone},
	PropGlowStrength: {"glowStrength", func(p *Parameters, v any) {
		f, _ := Number(v)
		p.GlowStrength = clamp(f, 0, MaxGlowStrength)
	}, RecomputeNone},
	PropTextColor: {"textColor", func(p *Parameters, v any) {
		p.TextColor = KeepPrevious(p.TextColor, cssColor, v)
	}, RecomputeTrackColor},
	PropAmplitude: {"amplitude", func(p *Parameters, v any) {
		f, ok := Number(v)
		if !ok || f <= 0 {
			f = DefaultAmplitude
		}
		p.Amplitude = math.Min(f, MaxAmplitude)
	}, RecomputeSurface | RecomputeSpectrum},
	PropSpectrumScale: {"spectrumScale", func(p *Parameters, v any) {
		f, ok := Number(v)
		if !ok {
			f = 80
		}
		p.SpectrumScale = clamp(f, spectrumScaleDomain.Min, spectrumScaleDomain.Max) / 100
	}, RecomputeSpectrum},
	PropSpectrumX: {"spectrumX", func(p *Parameters, v any) { p.SpectrumX = SliderToUnit(v, 50, PercentDomain) }, RecomputeSpectrum},
	PropSpectrumY: {"spectrumY", func(p *Parameters, v any) { p.SpectrumY = SliderToUnit(v, 80, PercentDomain) }, RecomputeSpectrum},
	PropTextScale: {"textScale", func(p *Parameters, v any) { p.TextScale = KeepPrevious(p.TextScale, textScale, v) }, RecomputeTrackText},
	PropTextX:     {"textX", func(p *Parameters, v any) { p.TextX = SliderToUnit(v, 50, PercentDomain) }, RecomputeTrackText},
	PropTextY:     {"textY", func(p *Parameters, v any) { p.TextY = SliderToUnit(v, 50, PercentDomain) }, RecomputeTrackText},
	PropUseImage:  {"useImg", func(p *Parameters, v any) { p.UseImage = Truthy(v) }, RecomputeBackground},
	PropImagePath: {"imgPath", func(p *Parameters, v any) {
		p.ImagePath = FormatMediaPath(v, "images", DefaultImagePath)
	}, RecomputeImageSource | RecomputeBackground},
	PropUseVideo: {"useVideo", func(p *Parameters, v any) { p.UseVideo = Truthy(v) }, RecomputeBackground},
	PropVideoPath: {"videoPath", func(p *Parameters, v any) {
		p.VideoPath = FormatMediaPath(v, "video", DefaultVideoPath)
	}, RecomputeVideoSource | RecomputeBackground},
	PropOpacity:        {"opacity", func(p *Parameters, v any) { p.Opacity = SliderToUnit(v, 100, PercentDomain) }, RecomputeNone},
	PropShowVisualizer: {"showVisualizer", func(p *Parameters, v any) { p.ShowVisualizer = Truthy(v) }, RecomputeVisibility},
	PropShowTrackText:  {"showTrackText", func(p *Parameters, v any) { p.ShowTrackText = Truthy(v) }, RecomputeVisibility},
	PropShowClock:      {"showClock", func(p *Parameters, v any) { p.ShowClock = Truthy(v) }, RecomputeVisibility},
	PropShowDay:        {"showClockDayOfWeek", func(p *Parameters, v any) { p.ShowDay = Truthy(v) }, RecomputeVisibility},
	PropShowDate:       {"showClockDate", func(p *Parameters, v any) { p.ShowDate = Truthy(v) }, RecomputeVisibility},
	PropShowTime:       {"showClockTime", func(p *Parameters, v any) { p.ShowTime = Truthy(v) }, RecomputeVisibility},
	PropShowSeconds:    {"showSeconds", func(p *Parameters, v any) { p.ShowSeconds = Truthy(v) }, RecomputeClockText},
	PropTimeFormat:     {"timeFormat", func(p *Parameters, v any) { p.TimeFormat = ParseTimeFormat(v) }, RecomputeClockText},
	PropDayFont:        {"dayFont", func(p *Parameters, v any) { p.Day.Font = ResolveFontIndex(v, p.Day.Font) }, RecomputeClockFonts},
	PropDateFont:       {"dateFont", func(p *Parameters, v any) { p.Date.Font = ResolveFontIndex(v, p.Date.Font) }, RecomputeClockFonts},
	PropTimeFont:       {"timeFont", func(p *Parameters, v any) { p.Time.Font = ResolveFontIndex(v, p.Time.Font) }, RecomputeClockFonts},
	PropDayScale:       {"dayScale", func(p *Parameters, v any) { p.Day.Scale = KeepPrevious(p.Day.Scale, clockScale, v) }, RecomputeClockLayout},
	PropDayX:           {"dayX", func(p *Parameters, v any) { p.Day.X = SliderToUnit(v, 50, PercentDomain) }, RecomputeClockLayout},
	PropDayY:           {"dayY", func(p *Parameters, v any) { p.Day.Y = YSliderToOffset(v, 10) }, RecomputeClockLayout},
	PropDateScale:      {"dateScale", func(p *Parameters, v any) { p.Date.Scale = KeepPrevious(p.Date.Scale, clockScale, v) }, RecomputeClockLayout},
	PropDateX:          {"dateX", func(p *Parameters, v any) { p.Date.X = SliderToUnit(v, 50, PercentDomain) }, RecomputeClockLayout},
	PropDateY:          {"dateY", func(p *Parameters, v any) { p.Date.Y = YSliderToOffset(v, 16) }, RecomputeClockLayout},
	PropTimeScale:      {"timeScale", func(p *Parameters, v any) { p.Time.Scale = KeepPrevious(p.Time.Scale, clockScale, v) }, RecomputeClockLayout},
	PropTimeX:          {"timeX", func(p *Parameters, v any) { p.Time.X = SliderToUnit(v, 50, PercentDomain) }, RecomputeClockLayout},
	PropTimeY:          {"timeY", func(p *Parameters, v any) { p.Time.Y = YSliderToOffset(v, 24) }, RecomputeClockLayout},
}

var propertyByName = func() map[string]Property {
	m := make(map[string]Property, propertyCount)
	for i, b := range bindings {
		m[b.name] = Property(i)
	}
	return m
}()

func (prop Property) String() string {
	if prop < 0 || prop >= propertyCount {
		return "unknown"
	}
	return bindings[prop].name
}

// Lookup resolves a host property name.
func Lookup(name string) (Property, bool) {
	prop, ok := propertyByName[name]
	return prop, ok
}

// PropertyNames lists every recognized name in declaration order.
func PropertyNames() []string {
	out := make([]string, propertyCount)
	for i, b := range bindings {
		out[i] = b.name
	}
	return out
}

// Apply normalizes v into the store and returns the passes that depend on
// the property. Unknown names are ignored and report false.
func (p *Parameters) Apply(name string, v any) (Recompute, bool) {
	prop, ok := Lookup(name)
	if !ok {
		return RecomputeNone, false
	}
	return p.ApplyProperty(prop, v), true
}

// ApplyProperty is Apply for an already resolved property.
func (p *Parameters) ApplyProperty(prop Property, v any) Recompute {
	if prop < 0 || prop >= propertyCount {
		return RecomputeNone
	}
	b := bindings[prop]
	b.apply(p, v)
	return b.recompute
}
