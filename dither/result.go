package dither

import (
	"image"
	"image/color"

	"github.com/bodgit/retroimg/palette"
)

// Result is a quantized image: one palette index per pixel plus the
// effective palette the indices refer to. It implements image.Image.
type Result struct {
	// Pix holds the palette indices in row-major order.
	Pix []int
	// Stride is the Pix distance between two vertically adjacent pixels.
	Stride int
	// Rect is the image bounds.
	Rect image.Rectangle
	// Palette is the effective palette.
	Palette palette.Palette
}

// NewResult returns a Result with all indices set to zero.
func NewResult(r image.Rectangle, p palette.Palette) *Result {
	return &Result{
		Pix:     make([]int, r.Dx()*r.Dy()),
		Stride:  r.Dx(),
		Rect:    r,
		Palette: p,
	}
}

// ColorModel returns the effective palette as a color.Palette.
func (r *Result) ColorModel() color.Model {
	return r.Palette.Colors()
}

// Bounds returns the domain for which At can return non-zero color.
func (r *Result) Bounds() image.Rectangle {
	return r.Rect
}

// At returns the color of the pixel at (x, y).
func (r *Result) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(r.Rect)) || len(r.Palette) == 0 {
		return color.RGBA{}
	}
	return r.Palette[r.ColorIndexAt(x, y)]
}

// PixOffset returns the index of the Pix element corresponding to (x, y).
func (r *Result) PixOffset(x, y int) int {
	return (y-r.Rect.Min.Y)*r.Stride + (x - r.Rect.Min.X)
}

// ColorIndexAt returns the palette index of the pixel at (x, y).
func (r *Result) ColorIndexAt(x, y int) int {
	if !(image.Point{x, y}.In(r.Rect)) {
		return 0
	}
	return r.Pix[r.PixOffset(x, y)]
}

// SetColorIndex sets the palette index of the pixel at (x, y).
func (r *Result) SetColorIndex(x, y, index int) {
	if !(image.Point{x, y}.In(r.Rect)) {
		return
	}
	r.Pix[r.PixOffset(x, y)] = index
}

// Expand converts the indices back to full colors.
func (r *Result) Expand() *image.RGBA {
	m := image.NewRGBA(r.Rect)
	for y := r.Rect.Min.Y; y < r.Rect.Max.Y; y++ {
		for x := r.Rect.Min.X; x < r.Rect.Max.X; x++ {
			c := r.Palette[r.Pix[r.PixOffset(x, y)]]
			i := m.PixOffset(x, y)
			m.Pix[i+0] = c.R
			m.Pix[i+1] = c.G
			m.Pix[i+2] = c.B
			m.Pix[i+3] = 0xff
		}
	}
	return m
}

// Paletted converts r to an *image.Paletted. It fails if the palette has
// more than 256 entries.
func (r *Result) Paletted() (*image.Paletted, bool) {
	if len(r.Palette) > 256 {
		return nil, false
	}
	m := image.NewPaletted(r.Rect, r.Palette.Colors())
	for y := r.Rect.Min.Y; y < r.Rect.Max.Y; y++ {
		for x := r.Rect.Min.X; x < r.Rect.Max.X; x++ {
			m.SetColorIndex(x, y, uint8(r.Pix[r.PixOffset(x, y)]))
		}
	}
	return m, true
}

// Used returns the number of distinct palette indices present in r.
func (r *Result) Used() int {
	seen := make(map[int]struct{})
	for _, i := range r.Pix {
		seen[i] = struct{}{}
	}
	return len(seen)
}
