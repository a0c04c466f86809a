package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/guidoenr/wallvis/internal/layout"
)

// Compose draws a viewport-sized preview: bg, then the surface stretched
// into its placement box. A nil bg leaves dst transparent.
func Compose(dst *image.RGBA, surface *image.RGBA, pl layout.Placement, bg color.Color) {
	if dst == nil {
		return
	}
	if bg != nil {
		xdraw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	} else {
		clear(dst.Pix)
	}
	if surface == nil || pl.Width <= 0 || pl.Height <= 0 {
		return
	}
	box := image.Rect(
		int(math.Round(pl.Left)),
		int(math.Round(pl.Top)),
		int(math.Round(pl.Left+pl.Width)),
		int(math.Round(pl.Top+pl.Height)),
	)
	if box.Empty() {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, box, surface, surface.Bounds(), xdraw.Over, nil)
}
