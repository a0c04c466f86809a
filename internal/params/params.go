package params

// RGB is a color triple in 0-255 components.
type RGB struct {
	R, G, B uint8
}

// White is the fallback color for anything that fails to parse.
var White = RGB{255, 255, 255}

// TimeFormat selects the clock's hour rendering.
type TimeFormat int

const (
	Format12Hour TimeFormat = iota
	Format24Hour
)

func (f TimeFormat) String() string {
	if f == Format24Hour {
		return "24-hour"
	}
	return "12-hour"
}

// ClockField holds the tunables of one clock line.
type ClockField struct {
	Font     int
	Scale    float64
	X        float64
	Y        float64
	BaseSize float64
}

// Parameters is the configuration store. Coordinates are normalized.
type Parameters struct {
	Color1       RGB
	Color2       RGB
	Glow         bool
	GlowStrength float64
	Amplitude    float64
	Opacity      float64

	SpectrumScale float64
	SpectrumX     float64
	SpectrumY     float64

	TextScale float64
	TextX     float64
	TextY     float64
	TextColor string

	BackgroundColor string
	UseImage        bool
	ImagePath       string
	UseVideo        bool
	VideoPath       string

	ShowVisualizer bool
	ShowTrackText  bool
	ShowClock      bool
	ShowDay        bool
	ShowDate       bool
	ShowTime       bool
	ShowSeconds    bool
	TimeFormat     TimeFormat

	Day  ClockField
	Date ClockField
	Time ClockField
}

const (
	DefaultAmplitude = 300
	// MaxAmplitude bounds the bar height and with it the surface height.
	MaxAmplitude     = 4096
	// MaxGlowStrength bounds the glow blur radius.
	MaxGlowStrength  = 100
	DefaultImagePath = "images/background.png"
	DefaultVideoPath = "video/background.mp4"
)

// Defaults returns the startup configuration.
func Defaults() Parameters {
	return Parameters{
		Color1:       RGB{255, 214, 107},
		Color2:       RGB{255, 139, 43},
		Glow:         true,
		GlowStrength: 10,
		Amplitude:    DefaultAmplitude,
		Opacity:      1.0,

		SpectrumScale: 0.8,
		SpectrumX:     0.5,
		SpectrumY:     0.8,

		TextScale: 1.0,
		TextX:     0.5,
		TextY:     0.5,
		TextColor: "#FFFFFF",

		UseImage:  false,
		ImagePath: DefaultImagePath,
		UseVideo:  true,
		VideoPath: DefaultVideoPath,

		ShowVisualizer: true,
		ShowTrackText:  true,
		ShowClock:      true,
		ShowDay:        true,
		ShowDate:       true,
		ShowTime:       true,
		ShowSeconds:    true,
		TimeFormat:     Format12Hour,

		Day:  ClockField{Font: 0, Scale: 1.0, X: 0.5, Y: 0.10, BaseSize: 30},
		Date: ClockField{Font: 0, Scale: 1.0, X: 0.5, Y: 0.16, BaseSize: 20},
		Time: ClockField{Font: 0, Scale: 1.0, X: 0.5, Y: 0.24, BaseSize: 60},
	}
}
