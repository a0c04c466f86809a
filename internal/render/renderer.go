package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/guidoenr/wallvis/internal/layout"
	"github.com/guidoenr/wallvis/internal/params"
)

// Renderer draws amplitude frames as a bar chart onto its surface.
type Renderer struct {
	surface  *image.RGBA
	mask     *image.Alpha
	raster   vector.Rasterizer
	gradient gradient
	glow     glow
	bars     int
}

// New creates a Renderer with a surface of the given size.
func New(size layout.Size) *Renderer {
	r := &Renderer{}
	r.Resize(size)
	return r
}

// Resize reallocates the surface when the size changes. It is the only
// place pixels are allocated.
func (r *Renderer) Resize(size layout.Size) {
	if size.Width <= 0 || size.Height <= 0 {
		r.surface = nil
		r.mask = nil
		return
	}
	if r.surface != nil && r.surface.Bounds().Dx() == size.Width && r.surface.Bounds().Dy() == size.Height {
		return
	}
	rect := image.Rect(0, 0, size.Width, size.Height)
	r.surface = image.NewRGBA(rect)
	r.mask = image.NewAlpha(rect)
}

// Size reports the current surface resolution.
func (r *Renderer) Size() layout.Size {
	if r == nil || r.surface == nil {
		return layout.Size{}
	}
	b := r.surface.Bounds()
	return layout.Size{Width: b.Dx(), Height: b.Dy()}
}

// Surface returns the pixels of the last rendered frame.
func (r *Renderer) Surface() *image.RGBA {
	if r == nil {
		return nil
	}
	return r.surface
}

// BarCount is the length of the last drawn frame.
func (r *Renderer) BarCount() int { return r.bars }

// Render draws frame using the style in p. It reports false and leaves the
// surface untouched when there is nothing to draw.
func (r *Renderer) Render(p params.Parameters, frame []float64) bool {
	if r == nil || r.surface == nil || len(frame) == 0 {
		return false
	}
	b := r.surface.Bounds()
	w, h := b.Dx(), b.Dy()

	clear(r.surface.Pix)
	clear(r.mask.Pix)
	r.bars = len(frame)

	bars := Bars(frame, w, h, amplitude(p.Amplitude))
	if len(bars) == 0 {
		return true
	}

	r.raster.Reset(w, h)
	fw, fh := float64(w), float64(h)
	for _, bar := range bars {
		// Clip to the surface so the rasterizer never walks off-screen rows.
		x0 := float32(math.Max(bar.X, 0))
		y0 := float32(math.Max(bar.Y, 0))
		x1 := float32(math.Min(bar.X+bar.Width, fw))
		y1 := float32(math.Min(bar.Y+bar.Height, fh))
		r.raster.MoveTo(x0, y0)
		r.raster.LineTo(x1, y0)
		r.raster.LineTo(x1, y1)
		r.raster.LineTo(x0, y1)
		r.raster.ClosePath()
	}
	r.raster.Draw(r.mask, b, image.Opaque, image.Point{})

	// Global alpha multiplies the gradient's own alpha, as on a 2D canvas.
	opacity := clamp01(p.Opacity)
	r.gradient.build(w, p.Color1, p.Color2, opacity)

	if p.Glow && p.GlowStrength > 0 {
		shadow := r.glow.apply(r.mask, min(p.GlowStrength, params.MaxGlowStrength))
		tint := color.NRGBA{R: p.Color2.R, G: p.Color2.G, B: p.Color2.B, A: uint8(opacity*255 + 0.5)}
		fillMask(r.surface, shadow, func(int) color.NRGBA { return tint }, opacity)
	}

	fillMask(r.surface, r.mask, r.gradient.at, opacity)
	return true
}

// amplitude bounds the bar height scale to [0, params.MaxAmplitude].
func amplitude(a float64) float64 {
	if math.IsNaN(a) || a < 0 {
		return 0
	}
	return math.Min(a, params.MaxAmplitude)
}

// fillMask composites a per-column color through mask onto dst with the
// over operator, scaling coverage by alpha.
func fillMask(dst *image.RGBA, mask *image.Alpha, colorAt func(x int) color.NRGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	for y := 0; y < h; y++ {
		mrow := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		drow := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x, m := range mrow {
			if m == 0 {
				continue
			}
			c := colorAt(x)
			a := float64(m) / 255 * float64(c.A) / 255 * alpha
			if a <= 0 {
				continue
			}
			i := x * 4
			inv := 1 - a
			drow[i+0] = blend(c.R, a, drow[i+0], inv)
			drow[i+1] = blend(c.G, a, drow[i+1], inv)
			drow[i+2] = blend(c.B, a, drow[i+2], inv)
			drow[i+3] = blend(255, a, drow[i+3], inv)
		}
	}
}

// blend computes premultiplied src*a + dst*(1-a).
func blend(src uint8, a float64, dst uint8, inv float64) uint8 {
	v := float64(src)*a + float64(dst)*inv
	if v > 255 {
		v = 255
	}
	return uint8(v + 0.5)
}
