package standard

import (
	"github.com/bodgit/retroimg/palette"
)

var egaPalette = makeEGAPalette()

// makeEGAPalette derives the 64 colors an EGA attribute register can select.
// The six bits are laid out as rgbRGB where the upper case bits contribute
// two thirds of the channel intensity and the lower case bits one third.
func makeEGAPalette() palette.Palette {
	p := make(palette.Palette, 64)
	for i := range p {
		p[i] = palette.RGB(
			egaChannel(i>>2&1, i>>5&1),
			egaChannel(i>>1&1, i>>4&1),
			egaChannel(i&1, i>>3&1),
		)
	}
	return p
}

func egaChannel(primary, secondary int) uint8 {
	return uint8(primary*0xaa + secondary*0x55)
}
