package dither

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/retroimg/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cga = palette.Palette{
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

func uniform(w, h int, c color.Color) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

func gradient(w, h int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, palette.RGB(uint8(x*255/(w-1)), uint8(y*255/(h-1)), uint8((x+y)*255/(w+h-2))))
		}
	}
	return m
}

func TestEmptyPalette(t *testing.T) {
	_, err := NewPaletteMapper(nil, palette.L2)
	assert.ErrorIs(t, err, ErrEmptyPalette)

	_, err = Quantize(uniform(1, 1, color.Black), nil, None)
	assert.ErrorIs(t, err, ErrEmptyPalette)
}

func TestIndicesInRange(t *testing.T) {
	m := gradient(32, 24)

	for _, method := range Methods() {
		t.Run(method.String(), func(t *testing.T) {
			mp, err := NewPaletteMapper(cga, palette.L2)
			require.NoError(t, err)

			r, err := Quantize(m, mp, method)
			require.NoError(t, err)
			require.Len(t, r.Pix, 32*24)
			assert.Equal(t, cga, r.Palette)
			for _, i := range r.Pix {
				assert.True(t, i >= 0 && i < len(cga))
			}

			// Expanding only reproduces palette colors
			e := r.Expand()
			for y := 0; y < 24; y++ {
				for x := 0; x < 32; x++ {
					assert.True(t, cga.Contains(e.RGBAAt(x, y)))
				}
			}
		})
	}
}

func TestUniformImage(t *testing.T) {
	colors := []color.RGBA{
		cga[12],
		palette.RGB(0x80, 0x80, 0x80),
		palette.RGB(200, 0, 0),
		palette.RGB(0x12, 0x34, 0x56),
	}

	for _, method := range Methods() {
		for _, serpentine := range []bool{false, true} {
			var opts []Option
			if serpentine {
				opts = append(opts, WithSerpentine())
			}
			for _, c := range colors {
				mp, err := NewPaletteMapper(cga, palette.L2)
				require.NoError(t, err)

				r, err := Quantize(uniform(16, 16, c), mp, method, opts...)
				require.NoError(t, err)

				want := cga.Nearest(c, palette.L2)
				for _, i := range r.Pix {
					assert.Equal(t, want, i, "%v %v", method, c)
				}
			}
		}
	}
}

func TestDiffusionAroundEdges(t *testing.T) {
	// Gray next to a white block still receives diffused error from the
	// boundary while the interior of the gray area stays flat
	bw := palette.Palette{palette.RGB(0, 0, 0), palette.RGB(0xff, 0xff, 0xff)}
	m := uniform(16, 8, palette.RGB(0x80, 0x80, 0x80))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.SetRGBA(x, y, palette.RGB(0xe0, 0xe0, 0xe0))
		}
	}

	mp, err := NewPaletteMapper(bw, palette.L2)
	require.NoError(t, err)
	r, err := Quantize(m, mp, FloydSteinberg)
	require.NoError(t, err)

	// The light block rounds up to white and pushes its negative error into
	// the first gray column, which rounds down to black
	assert.Equal(t, 1, r.ColorIndexAt(0, 0))
	assert.Equal(t, 0, r.ColorIndexAt(8, 0))
	assert.Equal(t, 2, r.Used())
}

func TestSinglePixelNearest(t *testing.T) {
	src := palette.RGB(200, 0, 0)

	best, bestDist := 0, ^uint32(0)
	for i, c := range cga {
		if d := palette.L2.Distance(src, c); d < bestDist {
			best, bestDist = i, d
		}
	}

	for _, method := range []Method{None, FloydSteinberg} {
		mp, err := NewPaletteMapper(cga, palette.L2)
		require.NoError(t, err)

		r, err := Quantize(uniform(1, 1, src), mp, method)
		require.NoError(t, err)
		assert.Equal(t, best, r.Pix[0])
		assert.Equal(t, palette.RGB(0xaa, 0x00, 0x00), r.Palette[r.Pix[0]])
	}
}

func TestDeterministic(t *testing.T) {
	m := gradient(20, 20)

	for _, serpentine := range []bool{false, true} {
		var opts []Option
		if serpentine {
			opts = append(opts, WithSerpentine())
		}

		mp1, err := NewPaletteMapper(cga, palette.L2)
		require.NoError(t, err)
		r1, err := Quantize(m, mp1, Stucki, opts...)
		require.NoError(t, err)

		mp2, err := NewPaletteMapper(cga, palette.L2)
		require.NoError(t, err)
		r2, err := Quantize(m, mp2, Stucki, opts...)
		require.NoError(t, err)

		assert.Equal(t, r1.Pix, r2.Pix)
	}
}

func TestDepthMapper(t *testing.T) {
	m := gradient(16, 16)
	d := palette.Depth{R: 6, G: 6, B: 6}

	r, err := Quantize(m, NewDepthMapper(d), FloydSteinberg)
	require.NoError(t, err)
	require.NotEmpty(t, r.Palette)
	assert.Equal(t, r.Palette, r.Palette.Unique())
	for _, c := range r.Palette {
		assert.Equal(t, c, d.Map(c))
	}
	for _, i := range r.Pix {
		assert.True(t, i >= 0 && i < len(r.Palette))
	}

	// True color without dithering is lossless
	r, err = Quantize(m, NewDepthMapper(palette.Depth{R: 8, G: 8, B: 8}), None)
	require.NoError(t, err)
	assert.Equal(t, m, r.Expand())
}

func TestSubsetMapper(t *testing.T) {
	_, err := NewSubsetMapper(cga, nil, palette.L2)
	assert.ErrorIs(t, err, ErrEmptyPalette)
	_, err = NewSubsetMapper(cga, []int{16}, palette.L2)
	assert.Error(t, err)

	mp, err := NewSubsetMapper(cga, []int{0, 15}, palette.L2)
	require.NoError(t, err)
	assert.Equal(t, cga, mp.Palette())

	i, c := mp.Map(palette.RGB(0xaa, 0, 0))
	assert.Equal(t, 0, i)
	assert.Equal(t, cga[0], c)
	i, c = mp.Map(palette.RGB(0xee, 0xee, 0xee))
	assert.Equal(t, 15, i)
	assert.Equal(t, cga[15], c)

	r, err := Quantize(gradient(16, 16), mp, FloydSteinberg)
	require.NoError(t, err)
	for _, i := range r.Pix {
		assert.True(t, i == 0 || i == 15)
	}
}

func TestResultImage(t *testing.T) {
	r := NewResult(image.Rect(2, 3, 5, 5), cga[:4])
	r.SetColorIndex(3, 4, 2)
	r.SetColorIndex(10, 10, 1)

	assert.Equal(t, image.Rect(2, 3, 5, 5), r.Bounds())
	assert.Equal(t, 2, r.ColorIndexAt(3, 4))
	assert.Equal(t, color.Color(cga[2]), r.At(3, 4))
	assert.Equal(t, color.Color(cga[0]), r.At(2, 3))
	assert.Equal(t, color.Color(color.RGBA{}), r.At(0, 0))
	assert.Equal(t, 2, r.Used())

	pm, ok := r.Paletted()
	require.True(t, ok)
	assert.Equal(t, uint8(2), pm.ColorIndexAt(3, 4))

	big := NewResult(image.Rect(0, 0, 1, 1), make(palette.Palette, 300))
	_, ok = big.Paletted()
	assert.False(t, ok)
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		p, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, p)
	}

	m, err := ParseMethod("on")
	require.NoError(t, err)
	assert.Equal(t, FloydSteinberg, m)

	m, err = ParseMethod("off")
	require.NoError(t, err)
	assert.Equal(t, None, m)

	_, err = ParseMethod("riemersma")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestWeights(t *testing.T) {
	ws := weights(matrices[FloydSteinberg])
	require.Len(t, ws, 4)
	assert.Equal(t, weight{1, 0, 7.0 / 16}, ws[0])
	assert.Equal(t, weight{-1, 1, 3.0 / 16}, ws[1])

	var sum float32
	for _, w := range weights(matrices[Stucki]) {
		assert.True(t, w.dy > 0 || w.dx > 0)
		sum += w.w
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}
