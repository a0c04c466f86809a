package params

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Domain is the closed raw range a host slider reports.
type Domain struct {
	Min, Max float64
}

// SliderDomain is the 1..100 range host sliders use unless stated otherwise.
var SliderDomain = Domain{Min: 1, Max: 100}

// PercentDomain is the 0..100 range of the position and opacity sliders.
var PercentDomain = Domain{Min: 0, Max: 100}

const yTopOffset = -0.05

// Number coerces a host value to a float. Booleans count as 0/1 and numeric
// strings are parsed; everything else, NaN and infinities included, is
// non-numeric.
func Number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint8:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Truthy reports whether a host value enables a flag.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	if f, ok := Number(v); ok {
		return f != 0
	}
	return true
}

// ClampUnit coerces v and clamps it into [0,1]; non-numeric yields 0.
func ClampUnit(v any) float64 {
	f, ok := Number(v)
	if !ok {
		return 0
	}
	return clamp(f, 0, 1)
}

// SliderToUnit maps raw from domain d onto [0,1]. Non-numeric input uses def,
// which is expressed in raw slider units.
func SliderToUnit(raw any, def float64, d Domain) float64 {
	f, ok := Number(raw)
	if !ok {
		f = def
	}
	if d.Max <= d.Min {
		return 0
	}
	f = clamp(f, d.Min, d.Max)
	return (f - d.Min) / (d.Max - d.Min)
}

// YSliderToOffset maps a 1..100 slider onto [-0.05, 1.0]. A raw value of 1
// places the anchor 5% above the top edge.
func YSliderToOffset(raw any, def float64) float64 {
	n := SliderToUnit(raw, def, SliderDomain)
	return yTopOffset + n*(1-yTopOffset)
}

// HexToTriple parses "#rgb", "rgb", "#rrggbb" or "rrggbb". Anything else
// yields White.
func HexToTriple(v any) RGB {
	s, ok := v.(string)
	if !ok {
		return White
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return White
	}
	var out [3]uint8
	for i := range out {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return White
		}
		out[i] = uint8(n)
	}
	return RGB{out[0], out[1], out[2]}
}

// ParseFontIndex accepts an integral index, a numeric string or a font label.
func ParseFontIndex(v any) (int, bool) {
	switch x := v.(type) {
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			return validFont(n)
		}
		idx, ok := fontLabels[x]
		return idx, ok
	case bool, nil:
		return 0, false
	}
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return validFont(int(f))
}

func validFont(n int) (int, bool) {
	if n < 0 || n >= FontCount {
		return 0, false
	}
	return n, true
}

// ResolveFontIndex returns the index v names, or current when v is not a
// valid font. The result is always a valid slot.
func ResolveFontIndex(v any, current int) int {
	if _, ok := validFont(current); !ok {
		current = 0
	}
	return KeepPrevious(current, ParseFontIndex, v)
}

// KeepPrevious parses v and returns prev when parsing fails.
func KeepPrevious[T any](prev T, parse func(any) (T, bool), v any) T {
	if next, ok := parse(v); ok {
		return next
	}
	return prev
}

// ParseTimeFormat maps 1, "1" and "24-hour" to 24-hour and anything else to
// 12-hour.
func ParseTimeFormat(v any) TimeFormat {
	switch x := v.(type) {
	case string:
		if x == "24-hour" || x == "1" {
			return Format24Hour
		}
	case bool, nil:
	default:
		if f, ok := Number(x); ok && f == 1 {
			return Format24Hour
		}
	}
	return Format12Hour
}

// FormatMediaPath normalizes a background asset path. Bare file names are
// placed under dir.
func FormatMediaPath(v any, dir, def string) string {
	s, _ := v.(string)
	if s == "" {
		return def
	}
	s = strings.ReplaceAll(s, "\\", "/")
	if !strings.Contains(s, "/") {
		return dir + "/" + s
	}
	return s
}

func percentScale(d Domain, factor float64) func(any) (float64, bool) {
	return func(v any) (float64, bool) {
		f, ok := Number(v)
		if !ok {
			return 0, false
		}
		return clamp(f, d.Min, d.Max) / 100 * factor, true
	}
}

func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
