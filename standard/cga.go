package standard

import (
	"github.com/bodgit/retroimg/palette"
)

// The 16 RGBI colors of the CGA. Index 6 is brown rather than dark yellow as
// the monitor halves the green signal for that color.
const (
	Black = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	Yellow
	White
)

var cgaPalette = palette.Palette{
	palette.RGB(0x00, 0x00, 0x00),
	palette.RGB(0x00, 0x00, 0xaa),
	palette.RGB(0x00, 0xaa, 0x00),
	palette.RGB(0x00, 0xaa, 0xaa),
	palette.RGB(0xaa, 0x00, 0x00),
	palette.RGB(0xaa, 0x00, 0xaa),
	palette.RGB(0xaa, 0x55, 0x00),
	palette.RGB(0xaa, 0xaa, 0xaa),
	palette.RGB(0x55, 0x55, 0x55),
	palette.RGB(0x55, 0x55, 0xff),
	palette.RGB(0x55, 0xff, 0x55),
	palette.RGB(0x55, 0xff, 0xff),
	palette.RGB(0xff, 0x55, 0x55),
	palette.RGB(0xff, 0x55, 0xff),
	palette.RGB(0xff, 0xff, 0x55),
	palette.RGB(0xff, 0xff, 0xff),
}

var bwPalette = palette.Palette{
	palette.RGB(0x00, 0x00, 0x00),
	palette.RGB(0xff, 0xff, 0xff),
}

// SubPalette is one of the fixed foreground color triples of the CGA 320x200
// graphics modes. Pixel values 1 to 3 select Colors, pixel value 0 is the
// background which can be any of the 16 colors.
type SubPalette struct {
	Name   string
	Colors [3]int
}

// Sub-palettes of the CGA 320x200 modes, as indices into the CGA palette.
var (
	Mode4Palette0Low  = SubPalette{"mode 4 palette 0 low", [3]int{Green, Red, Brown}}
	Mode4Palette0High = SubPalette{"mode 4 palette 0 high", [3]int{LightGreen, LightRed, Yellow}}
	Mode4Palette1Low  = SubPalette{"mode 4 palette 1 low", [3]int{Cyan, Magenta, LightGray}}
	Mode4Palette1High = SubPalette{"mode 4 palette 1 high", [3]int{LightCyan, LightMagenta, White}}
	Mode5Low          = SubPalette{"mode 5 low", [3]int{Cyan, Red, LightGray}}
	Mode5High         = SubPalette{"mode 5 high", [3]int{LightCyan, LightRed, White}}
)

var mode4SubPalettes = []SubPalette{
	Mode4Palette0Low,
	Mode4Palette0High,
	Mode4Palette1Low,
	Mode4Palette1High,
}

var mode5SubPalettes = []SubPalette{
	Mode5Low,
	Mode5High,
}

// CGA returns a copy of the 16 color CGA palette.
func CGA() palette.Palette {
	return append(palette.Palette(nil), cgaPalette...)
}

// Palette builds the four color effective palette for the given background
// color, in hardware pixel value order.
func (sp SubPalette) Palette(background int) palette.Palette {
	return palette.Palette{
		cgaPalette[background],
		cgaPalette[sp.Colors[0]],
		cgaPalette[sp.Colors[1]],
		cgaPalette[sp.Colors[2]],
	}
}

func (sp SubPalette) String() string {
	return sp.Name
}
