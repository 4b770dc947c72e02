package palette

import (
	"image/color"
)

// Depth is a continuous color space storing each channel with a reduced
// number of bits.
type Depth struct {
	R, G, B uint8
}

// Size returns the number of colors the depth can represent.
func (d Depth) Size() int {
	return 1 << (d.R + d.G + d.B)
}

// Levels returns the number of levels available on the coarsest channel.
func (d Depth) Levels() int {
	bits := d.R
	if d.G < bits {
		bits = d.G
	}
	if d.B < bits {
		bits = d.B
	}
	return 1 << bits
}

// Map returns the representable color closest to c.
func (d Depth) Map(c color.RGBA) color.RGBA {
	return color.RGBA{
		reduce(c.R, d.R),
		reduce(c.G, d.G),
		reduce(c.B, d.B),
		0xff,
	}
}

// reduce rounds v to the nearest of the 2^bits levels and expands it back to
// eight bits by replicating the high bits into the low ones, the way a DAC
// with a narrower input would drive the full output range.
func reduce(v, bits uint8) uint8 {
	if bits >= 8 {
		return v
	}
	if bits == 0 {
		return 0
	}
	n := int(bits)
	top := 1<<n - 1
	level := (int(v)*top + 0x7f) / 0xff
	out := 0
	for shift := 8 - n; shift > -n; shift -= n {
		if shift >= 0 {
			out |= level << shift
		} else {
			out |= level >> -shift
		}
	}
	return uint8(out)
}
