/*
Package standard is the catalog of the emulated display adapters. Each
Standard knows its master palette or color depth and, for the restricted CGA
graphics modes, the fixed sub-palettes a program could choose between.

All tables are package level values built once and never modified; callers
receive copies so index order stays stable for every quantized image.
*/
package standard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bodgit/retroimg/palette"
)

// ErrInvalidStandard is returned for an unrecognised standard identifier.
var ErrInvalidStandard = errors.New("standard: invalid standard")

// Standard identifies an emulated display standard.
type Standard uint8

// Supported standards.
const (
	True24Bit Standard = iota
	VGA18Bit
	VGA16Bit
	CGAMode4
	CGAMode4High1
	CGAMode5
	BlackWhite
	FullCGA
	FullEGA
	numStandards
)

// Kind describes how the effective palette of a standard is obtained.
type Kind uint8

const (
	// Fixed standards use their whole master palette.
	Fixed Kind = iota
	// SubPaletted standards use three fixed colors out of one of several
	// sub-palettes plus a freely chosen background color.
	SubPaletted
	// Continuous standards have a color depth rather than a table and can
	// optionally be reduced to a number of simultaneous colors.
	Continuous
)

func (k Kind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case SubPaletted:
		return "sub-palette"
	case Continuous:
		return "continuous"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

type definition struct {
	name        string
	aliases     []string
	description string
	kind        Kind
	palette     palette.Palette
	depth       palette.Depth
	subPalettes []SubPalette
}

var definitions = [numStandards]definition{
	True24Bit: {
		name:        "true",
		aliases:     []string{"24bit"},
		description: "true color, 8 bits per channel",
		kind:        Continuous,
		depth:       palette.Depth{R: 8, G: 8, B: 8},
	},
	VGA18Bit: {
		name:        "vga",
		aliases:     []string{"18bit"},
		description: "VGA DAC, 6 bits per channel",
		kind:        Continuous,
		depth:       palette.Depth{R: 6, G: 6, B: 6},
	},
	VGA16Bit: {
		name:        "16bit",
		aliases:     []string{"high"},
		description: "high color, 5-6-5 bits per channel",
		kind:        Continuous,
		depth:       palette.Depth{R: 5, G: 6, B: 5},
	},
	CGAMode4: {
		name:        "cga",
		aliases:     []string{"cgamode4"},
		description: "CGA mode 4, best of the four sub-palettes plus background",
		kind:        SubPaletted,
		palette:     cgaPalette,
		subPalettes: mode4SubPalettes,
	},
	CGAMode4High1: {
		name:        "cgamode4high1",
		description: "CGA mode 4, high intensity palette 1 plus background",
		kind:        SubPaletted,
		palette:     cgaPalette,
		subPalettes: []SubPalette{Mode4Palette1High},
	},
	CGAMode5: {
		name:        "cgamode5",
		description: "CGA mode 5, best of the two intensities plus background",
		kind:        SubPaletted,
		palette:     cgaPalette,
		subPalettes: mode5SubPalettes,
	},
	BlackWhite: {
		name:        "bw",
		description: "monochrome, black and white",
		kind:        Fixed,
		palette:     bwPalette,
	},
	FullCGA: {
		name:        "fullcga",
		description: "all 16 CGA colors",
		kind:        Fixed,
		palette:     cgaPalette,
	},
	FullEGA: {
		name:        "ega",
		description: "all 64 EGA colors",
		kind:        Fixed,
		palette:     egaPalette,
	},
}

// All returns every standard in catalog order.
func All() []Standard {
	all := make([]Standard, numStandards)
	for i := range all {
		all[i] = Standard(i)
	}
	return all
}

// Parse returns the standard for a case-insensitive identifier such as "cga"
// or "18bit".
func Parse(s string) (Standard, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, d := range definitions {
		if s == d.name {
			return Standard(i), nil
		}
		for _, alias := range d.aliases {
			if s == alias {
				return Standard(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStandard, s)
}

func (s Standard) definition() definition {
	if s >= numStandards {
		return definition{}
	}
	return definitions[s]
}

// Valid reports whether s is a known standard.
func (s Standard) Valid() bool {
	return s < numStandards
}

func (s Standard) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Standard(%d)", uint8(s))
	}
	return definitions[s].name
}

// Aliases returns the alternative identifiers accepted by Parse.
func (s Standard) Aliases() []string {
	return append([]string(nil), s.definition().aliases...)
}

// Description returns a human readable summary.
func (s Standard) Description() string {
	return s.definition().description
}

// Kind returns how the effective palette is derived.
func (s Standard) Kind() Kind {
	return s.definition().kind
}

// Palette returns a copy of the master palette, or nil for continuous
// standards.
func (s Standard) Palette() palette.Palette {
	p := s.definition().palette
	if p == nil {
		return nil
	}
	return append(palette.Palette(nil), p...)
}

// Depth returns the color depth of a continuous standard.
func (s Standard) Depth() palette.Depth {
	return s.definition().depth
}

// SubPalettes returns the sub-palette variants a SubPaletted standard chooses
// between, in enumeration order.
func (s Standard) SubPalettes() []SubPalette {
	return append([]SubPalette(nil), s.definition().subPalettes...)
}

// Size returns the number of colors in the master palette or color space.
func (s Standard) Size() int {
	d := s.definition()
	if d.kind == Continuous {
		return d.depth.Size()
	}
	return len(d.palette)
}
