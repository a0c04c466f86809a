package render

import (
	"image/color"

	"github.com/guidoenr/wallvis/internal/params"
)

// gradient is a horizontal two-stop ramp sampled at pixel centers.
type gradient struct {
	columns []color.NRGBA
}

func (g *gradient) build(width int, from, to params.RGB, alpha float64) {
	if cap(g.columns) < width {
		g.columns = make([]color.NRGBA, width)
	}
	g.columns = g.columns[:width]
	a := uint8(clamp01(alpha)*255 + 0.5)
	for x := range g.columns {
		t := (float64(x) + 0.5) / float64(width)
		g.columns[x] = color.NRGBA{
			R: mix(from.R, to.R, t),
			G: mix(from.G, to.G, t),
			B: mix(from.B, to.B, t),
			A: a,
		}
	}
}

func (g *gradient) at(x int) color.NRGBA {
	if len(g.columns) == 0 {
		return color.NRGBA{}
	}
	if x < 0 {
		x = 0
	} else if x >= len(g.columns) {
		x = len(g.columns) - 1
	}
	return g.columns[x]
}

func mix(a, b uint8, t float64) uint8 {
	v := float64(a)*(1-t) + float64(b)*t
	return uint8(v + 0.5)
}
