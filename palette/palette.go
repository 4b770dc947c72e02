/*
Package palette implements the color model shared by every stage of the
conversion: fixed palettes of 8-bit RGB colors, reduced bit depth color
spaces and the metrics used to measure the difference between two colors.
*/
package palette

import (
	"image/color"
)

// Palette is an ordered list of opaque colors. The position of a color is
// the pixel value stored in a quantized image so the order matters.
type Palette []color.RGBA

// RGB returns an opaque color.RGBA.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 0xff}
}

// Opaque converts any color to an opaque color.RGBA. Alpha is dropped after
// un-premultiplying, so a translucent color keeps its hue and intensity.
// Fully transparent colors become black.
func Opaque(c color.Color) color.RGBA {
	switch v := c.(type) {
	case color.RGBA:
		if v.A == 0xff {
			return v
		}
	case color.NRGBA:
		if v.A != 0 {
			return RGB(v.R, v.G, v.B)
		}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(n.R, n.G, n.B)
}

// Nearest returns the index of the color closest to c according to metric
// m. When two entries are equally close the lowest index wins. It returns -1
// for an empty palette.
func (p Palette) Nearest(c color.RGBA, m Metric) int {
	best, bestDist := -1, ^uint32(0)
	for i, pc := range p {
		d := m.Distance(c, pc)
		if d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return best
}

// Index returns the index of the first entry exactly equal to c, or -1.
func (p Palette) Index(c color.RGBA) int {
	c.A = 0xff
	for i, pc := range p {
		if pc == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c is present in p.
func (p Palette) Contains(c color.RGBA) bool {
	return p.Index(c) >= 0
}

// Colors returns p as a color.Palette for use with image.Paletted and the
// standard library encoders.
func (p Palette) Colors() color.Palette {
	cp := make(color.Palette, len(p))
	for i, c := range p {
		cp[i] = c
	}
	return cp
}

// Unique returns the entries of p with any repeated color removed, keeping
// the first occurrence.
func (p Palette) Unique() Palette {
	seen := make(map[color.RGBA]struct{}, len(p))
	u := make(Palette, 0, len(p))
	for _, c := range p {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		u = append(u, c)
	}
	return u
}

// FromColors converts a color.Palette, dropping alpha.
func FromColors(cp color.Palette) Palette {
	p := make(Palette, len(cp))
	for i, c := range cp {
		p[i] = Opaque(c)
	}
	return p
}
