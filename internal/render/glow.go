package render

import (
	"image"

	"github.com/disintegration/imaging"
)

// glow blurs an alpha mask the way a canvas shadow with shadowBlur=strength
// does: a gaussian with sigma strength/2.
type glow struct {
	out  *image.Alpha
	size image.Point
}

func (g *glow) resize(w, h int) {
	if g.size.X == w && g.size.Y == h && g.out != nil {
		return
	}
	g.size = image.Pt(w, h)
	g.out = image.NewAlpha(image.Rect(0, 0, w, h))
}

func (g *glow) apply(mask *image.Alpha, strength float64) *image.Alpha {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	g.resize(w, h)

	sigma := glowSigma(strength, w, h)
	if sigma <= 0 {
		copy(g.out.Pix, mask.Pix)
		return g.out
	}

	blurred := imaging.Blur(mask, sigma)
	for y := 0; y < h; y++ {
		src := blurred.Pix[y*blurred.Stride : y*blurred.Stride+w*4]
		dst := g.out.Pix[y*g.out.Stride : y*g.out.Stride+w]
		for x := range dst {
			dst[x] = src[x*4+3]
		}
	}
	return g.out
}

// glowSigma converts a shadow strength into a gaussian sigma. The kernel
// spans three sigmas, so sigmas wider than a third of the surface are
// capped: they cannot spread the mask any further.
func glowSigma(strength float64, w, h int) float64 {
	if !(strength > 0) {
		return 0
	}
	sigma := strength / 2
	if limit := float64(max(w, h)) / 3; sigma > limit {
		sigma = limit
	}
	return sigma
}
