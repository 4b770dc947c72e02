package selector

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/retroimg/palette"
	"github.com/ericpauley/go-quantize/quantize"
)

// reduce returns at most n colors representing m, each passed through fn
// which maps a color to one the standard can display. When m has no more than
// n distinct displayable colors they are used as they are.
func reduce(m image.Image, fn func(color.RGBA) color.RGBA, n int) palette.Palette {
	h := histogramOf(countColors(m, fn))
	if len(h) <= n {
		return h.palette()
	}

	// Quantize the mapped image so the median cut only sees colors the
	// standard can display
	b := m.Bounds()
	mapped := image.NewRGBA(b)
	draw.Draw(mapped, b, m, b.Min, draw.Src)
	for i := 0; i < len(mapped.Pix); i += 4 {
		c := fn(color.RGBA{mapped.Pix[i+0], mapped.Pix[i+1], mapped.Pix[i+2], 0xff})
		mapped.Pix[i+0], mapped.Pix[i+1], mapped.Pix[i+2], mapped.Pix[i+3] = c.R, c.G, c.B, c.A
	}

	q := quantize.MedianCutQuantizer{}
	cp := q.Quantize(make(color.Palette, 0, n), mapped)

	p := make(palette.Palette, len(cp))
	for i, c := range cp {
		p[i] = fn(palette.Opaque(c))
	}
	return p.Unique()
}

// nearestIn returns a function mapping a color to the nearest entry of p.
func nearestIn(p palette.Palette, metric palette.Metric) func(color.RGBA) color.RGBA {
	cache := make(map[color.RGBA]color.RGBA)
	return func(c color.RGBA) color.RGBA {
		nc, ok := cache[c]
		if !ok {
			nc = p[p.Nearest(c, metric)]
			cache[c] = nc
		}
		return nc
	}
}
