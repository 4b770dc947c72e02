package standard

import (
	"testing"

	"github.com/bodgit/retroimg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Standard
	}{
		{"bw", BlackWhite},
		{"cga", CGAMode4},
		{"cgamode4", CGAMode4},
		{"CGAMode4High1", CGAMode4High1},
		{"cgamode5", CGAMode5},
		{"fullcga", FullCGA},
		{"ega", FullEGA},
		{"16bit", VGA16Bit},
		{"high", VGA16Bit},
		{"vga", VGA18Bit},
		{"18bit", VGA18Bit},
		{"true", True24Bit},
		{" 24bit ", True24Bit},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}

	for _, in := range []string{"", "hercules", "cgamode6"} {
		_, err := Parse(in)
		assert.ErrorIs(t, err, ErrInvalidStandard, in)
	}
}

func TestRoundTripNames(t *testing.T) {
	for _, s := range All() {
		p, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, p)
		for _, alias := range s.Aliases() {
			p, err := Parse(alias)
			require.NoError(t, err)
			assert.Equal(t, s, p)
		}
		assert.NotEmpty(t, s.Description())
	}
	assert.False(t, Standard(200).Valid())
	assert.Equal(t, "Standard(200)", Standard(200).String())
}

func TestMasterPalettes(t *testing.T) {
	tests := []struct {
		standard Standard
		kind     Kind
		size     int
	}{
		{BlackWhite, Fixed, 2},
		{FullCGA, Fixed, 16},
		{FullEGA, Fixed, 64},
		{CGAMode4, SubPaletted, 16},
		{CGAMode4High1, SubPaletted, 16},
		{VGA16Bit, Continuous, 1 << 16},
		{VGA18Bit, Continuous, 1 << 18},
		{True24Bit, Continuous, 1 << 24},
	}

	for _, tt := range tests {
		t.Run(tt.standard.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.standard.Kind())
			assert.Equal(t, tt.size, tt.standard.Size())

			p := tt.standard.Palette()
			if tt.kind == Continuous {
				assert.Nil(t, p)
				return
			}
			assert.Len(t, p, tt.size)
			// Master palettes never repeat a color
			assert.Equal(t, p, p.Unique())
		})
	}
}

func TestPaletteIsCopied(t *testing.T) {
	p := FullCGA.Palette()
	p[0] = palette.RGB(1, 2, 3)
	assert.Equal(t, palette.RGB(0, 0, 0), FullCGA.Palette()[0])
}

func TestEGAContainsCGA(t *testing.T) {
	ega := FullEGA.Palette()
	for _, c := range CGA() {
		assert.True(t, ega.Contains(c), "%v", c)
	}
	assert.Equal(t, palette.RGB(0, 0, 0), ega[0])
	assert.Equal(t, palette.RGB(0, 0, 0xaa), ega[1])
	assert.Equal(t, palette.RGB(0xaa, 0x55, 0), ega[0x14])
	assert.Equal(t, palette.RGB(0xff, 0xff, 0xff), ega[63])
}

func TestSubPalettes(t *testing.T) {
	assert.Len(t, CGAMode4.SubPalettes(), 4)
	assert.Equal(t, []SubPalette{Mode4Palette1High}, CGAMode4High1.SubPalettes())
	assert.Len(t, CGAMode5.SubPalettes(), 2)
	assert.Empty(t, FullCGA.SubPalettes())

	p := Mode4Palette1High.Palette(Blue)
	assert.Equal(t, palette.Palette{
		palette.RGB(0x00, 0x00, 0xaa),
		palette.RGB(0x55, 0xff, 0xff),
		palette.RGB(0xff, 0x55, 0xff),
		palette.RGB(0xff, 0xff, 0xff),
	}, p)
	assert.Equal(t, "mode 4 palette 1 high", Mode4Palette1High.String())
}
