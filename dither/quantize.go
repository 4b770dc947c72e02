/*
Package dither maps the pixels of an image onto an effective palette. Pixels
are either mapped independently to their nearest palette entry, or with the
quantization error diffused to the pixels not yet visited, or with an ordered
threshold matrix.
*/
package dither

import (
	"image"
	"image/color"

	"github.com/bodgit/retroimg/palette"
	dither2 "github.com/makeworld-the-better-one/dither/v2"
)

type options struct {
	serpentine bool
}

// Option configures Quantize.
type Option func(*options)

// WithSerpentine alternates the direction of every other row during error
// diffusion.
func WithSerpentine() Option {
	return func(o *options) {
		o.serpentine = true
	}
}

// Quantize maps every pixel of m through mp using method. Error diffusion
// visits pixels in row-major order, left to right and top to bottom unless
// serpentine traversal is requested. Areas of a single color are never
// dithered so a uniform image maps every pixel to the same nearest entry.
func Quantize(m image.Image, mp Mapper, method Method, opts ...Option) (*Result, error) {
	if mp == nil {
		return nil, ErrEmptyPalette
	}
	if pm, ok := mp.(*paletteMapper); ok && len(pm.p) == 0 {
		return nil, ErrEmptyPalette
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	b := m.Bounds()
	r := NewResult(b, nil)

	switch {
	case method.ErrorDiffusion():
		diffuse(r, m, mp, weights(matrices[method]), o.serpentine)
	case method.Ordered():
		size := bayerSizes[method]
		ordered(r, m, mp, dither2.Bayer(size, size, spread(mp)/0xff))
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r.Pix[r.PixOffset(x, y)], _ = mp.Map(palette.Opaque(m.At(x, y)))
			}
		}
	}

	r.Palette = mp.Palette()
	if len(r.Pix) > 0 && len(r.Palette) == 0 {
		return nil, ErrEmptyPalette
	}

	return r, nil
}

func clamp(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 0xff:
		return 0xff
	}
	return v
}

func round(v float32) uint8 {
	return uint8(clamp(v) + 0.5)
}

func diffuse(r *Result, m image.Image, mp Mapper, ws []weight, serpentine bool) {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	// Working copy of the image, one float per channel
	src := make([]color.RGBA, w*h)
	buf := make([]float32, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := palette.Opaque(m.At(b.Min.X+x, b.Min.Y+y))
			src[y*w+x] = c
			i := (y*w + x) * 3
			buf[i+0] = float32(c.R)
			buf[i+1] = float32(c.G)
			buf[i+2] = float32(c.B)
		}
	}

	for y := 0; y < h; y++ {
		dir, x0, x1 := 1, 0, w
		if serpentine && y&1 == 1 {
			dir, x0, x1 = -1, w-1, -1
		}
		for x := x0; x != x1; x += dir {
			i := (y*w + x) * 3
			idx, c := mp.Map(color.RGBA{round(buf[i]), round(buf[i+1]), round(buf[i+2]), 0xff})
			r.Pix[y*r.Stride+x] = idx

			er := buf[i+0] - float32(c.R)
			eg := buf[i+1] - float32(c.G)
			eb := buf[i+2] - float32(c.B)
			if er == 0 && eg == 0 && eb == 0 {
				continue
			}

			for _, k := range ws {
				nx, ny := x+k.dx*dir, y+k.dy
				if nx < 0 || nx >= w || ny >= h {
					continue
				}
				// Flat areas map straight to their nearest entry
				if src[ny*w+nx] == src[y*w+x] {
					continue
				}
				j := (ny*w + nx) * 3
				// Saturate so the next read sees a valid intensity
				buf[j+0] = clamp(buf[j+0] + er*k.w)
				buf[j+1] = clamp(buf[j+1] + eg*k.w)
				buf[j+2] = clamp(buf[j+2] + eb*k.w)
			}
		}
	}
}

// flat reports whether the pixel at (x, y) has the same color as each of its
// horizontal and vertical neighbors.
func flat(m image.Image, x, y int, c color.RGBA) bool {
	b := m.Bounds()
	for _, d := range [...]image.Point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		p := image.Pt(x+d.X, y+d.Y)
		if p.In(b) && palette.Opaque(m.At(p.X, p.Y)) != c {
			return false
		}
	}
	return true
}

func ordered(r *Result, m image.Image, mp Mapper, pm dither2.PixelMapper) {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := palette.Opaque(m.At(x, y))
			if !flat(m, x, y, c) {
				dr, dg, db := pm(x-b.Min.X, y-b.Min.Y, uint16(c.R)*0x101, uint16(c.G)*0x101, uint16(c.B)*0x101)
				c = color.RGBA{uint8(dr >> 8), uint8(dg >> 8), uint8(db >> 8), 0xff}
			}
			r.Pix[r.PixOffset(x, y)], _ = mp.Map(c)
		}
	}
}
