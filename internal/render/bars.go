package render

import "math"

// BarGap is the fraction of each slot left empty between bars.
const BarGap = 0.1

// Bar is one filled rectangle in surface pixels.
type Bar struct {
	Index  int
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Normalize maps a magnitude to [0,1]. Values above 1 are byte-scaled.
func Normalize(v float64) float64 {
	if v > 1.0 {
		v /= 255.0
	}
	return clamp01(v)
}

// Bars lays out one bar per sample, vertically centered on the surface
// midline. NaN samples are skipped but still occupy their slot.
func Bars(frame []float64, width, height int, amplitude float64) []Bar {
	if len(frame) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	slot := float64(width) / float64(len(frame))
	midY := float64(height) / 2

	bars := make([]Bar, 0, len(frame))
	for i, v := range frame {
		if math.IsNaN(v) {
			continue
		}
		h := math.Max(1, Normalize(v)*amplitude)
		bars = append(bars, Bar{
			Index:  i,
			X:      float64(i) * slot,
			Y:      midY - h/2,
			Width:  slot * (1 - BarGap),
			Height: h,
		})
	}
	return bars
}

// FrameFromValues converts a decoded host array into a frame. Entries that
// are not numbers become NaN so the renderer skips them.
func FrameFromValues(values []any) []float64 {
	frame := make([]float64, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case float64:
			frame[i] = x
		case float32:
			frame[i] = float64(x)
		case int:
			frame[i] = float64(x)
		case int64:
			frame[i] = float64(x)
		default:
			frame[i] = math.NaN()
		}
	}
	return frame
}

func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
