package layout

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Extent is the measured size of a text block in pixels.
type Extent struct {
	Width  float64
	Height float64
}

// Measurer reports the rendered extent of text at a font size.
type Measurer interface {
	Measure(text string, fontSize float64) Extent
}

// FaceMeasurer approximates text extents by scaling a fixed bitmap face to
// the requested size.
type FaceMeasurer struct {
	Face font.Face
	// LineHeight is the line box height as a multiple of the font size.
	LineHeight float64
}

// NewFaceMeasurer returns a measurer backed by the 7x13 basic font.
func NewFaceMeasurer() *FaceMeasurer {
	return &FaceMeasurer{Face: basicfont.Face7x13, LineHeight: 1.15}
}

// Measure implements Measurer.
func (m *FaceMeasurer) Measure(text string, fontSize float64) Extent {
	if text == "" || fontSize <= 0 || m.Face == nil {
		return Extent{}
	}
	metrics := m.Face.Metrics()
	faceHeight := float64(metrics.Height.Ceil())
	if faceHeight <= 0 {
		return Extent{}
	}
	scale := fontSize / faceHeight

	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		if w := font.MeasureString(m.Face, line).Ceil(); w > widest {
			widest = w
		}
	}
	lineHeight := m.LineHeight
	if lineHeight <= 0 {
		lineHeight = 1
	}
	return Extent{
		Width:  float64(widest) * scale,
		Height: float64(len(lines)) * fontSize * lineHeight,
	}
}
