package selector

import (
	"image"
	"image/color"
	"sort"

	"github.com/bodgit/retroimg/palette"
)

type bin struct {
	color color.RGBA
	count uint64
}

// histogram is the list of distinct colors of an image, most frequent
// first. Ties are ordered by RGB value so the order never depends on map
// iteration.
type histogram []bin

func (h histogram) Len() int {
	return len(h)
}

func (h histogram) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h histogram) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count > h[j].count
	}
	return rgbKey(h[i].color) < rgbKey(h[j].color)
}

func rgbKey(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func countColors(m image.Image, fn func(color.RGBA) color.RGBA) map[color.RGBA]uint64 {
	counts := make(map[color.RGBA]uint64)
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := palette.Opaque(m.At(x, y))
			if fn != nil {
				c = fn(c)
			}
			counts[c]++
		}
	}
	return counts
}

func newHistogram(m image.Image) histogram {
	return histogramOf(countColors(m, nil))
}

func histogramOf(counts map[color.RGBA]uint64) histogram {
	h := make(histogram, 0, len(counts))
	for c, n := range counts {
		h = append(h, bin{c, n})
	}
	sort.Sort(h)
	return h
}

func (h histogram) palette() palette.Palette {
	p := make(palette.Palette, len(h))
	for i, b := range h {
		p[i] = b.color
	}
	return p
}

// Score returns the total error of mapping every pixel of m to its nearest
// entry of p.
func Score(m image.Image, p palette.Palette, metric palette.Metric) uint64 {
	return newHistogram(m).score(p, metric)
}

func (h histogram) score(p palette.Palette, metric palette.Metric) uint64 {
	var loss uint64
	for _, b := range h {
		i := p.Nearest(b.color, metric)
		if i < 0 {
			continue
		}
		loss += b.count * metric.Loss(b.color, p[i])
	}
	return loss
}
