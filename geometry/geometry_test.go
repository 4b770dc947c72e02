package geometry

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)&1 == 0 {
				m.Set(x, y, color.White)
			} else {
				m.Set(x, y, color.Black)
			}
		}
	}
	return m
}

func TestCrop(t *testing.T) {
	m := checker(10, 10)

	c, err := Crop(m, image.Rect(2, 3, 6, 5))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Bounds().Dx())
	assert.Equal(t, 2, c.Bounds().Dy())

	r, g, b, _ := c.At(c.Bounds().Min.X, c.Bounds().Min.Y).RGBA()
	wr, wg, wb, _ := m.At(2, 3).RGBA()
	assert.Equal(t, []uint32{wr, wg, wb}, []uint32{r, g, b})

	_, err = Crop(m, image.Rect(20, 20, 30, 30))
	assert.ErrorIs(t, err, ErrEmptyCrop)
}

func TestUpscaleKeepsHardEdges(t *testing.T) {
	m := checker(4, 2)

	u, err := Upscale(m, image.Pt(16, 12))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 12), u.Bounds())

	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			assert.Equal(t, m.RGBAAt(x/4, y/6), u.RGBAAt(x, y))
		}
	}
}

func TestDownscale(t *testing.T) {
	m := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range m.Pix {
		m.Pix[i] = 0x80
	}

	for _, name := range []string{"catmullrom", "bilinear", "approxbilinear", "nearest"} {
		t.Run(name, func(t *testing.T) {
			f, err := ParseFilter(name)
			require.NoError(t, err)
			assert.Equal(t, name, f.String())

			d, err := Downscale(m, image.Pt(2, 2), f)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 2, 2), d.Bounds())
			c := d.RGBAAt(1, 1)
			for _, v := range []uint8{c.R, c.G, c.B, c.A} {
				assert.InDelta(t, 0x80, v, 1)
			}
		})
	}

	_, err := Downscale(m, image.Pt(0, 2), CatmullRom)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = ParseFilter("lanczos")
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestOutputSize(t *testing.T) {
	in := image.Pt(320, 200)

	tests := []struct {
		name          string
		width, height int
		ratio         Ratio
		want          image.Point
	}{
		{"pixel ratio only", 0, 0, Ratio{5, 6}, image.Pt(1600, 1200)},
		{"square pixels", 0, 0, Square, image.Pt(320, 200)},
		{"both", 1920, 1080, Ratio{5, 6}, image.Pt(1920, 1080)},
		{"width from ratio", 1600, 0, Ratio{5, 6}, image.Pt(1600, 1200)},
		{"height from ratio", 0, 1200, Ratio{5, 6}, image.Pt(1600, 1200)},
		{"width square", 640, 0, Square, image.Pt(640, 400)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputSize(in, tt.width, tt.height, tt.ratio)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := OutputSize(in, 0, 0, Ratio{0, 1})
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = OutputSize(image.Pt(0, 10), 0, 0, Square)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestParse(t *testing.T) {
	p, err := ParseResolution("427x200")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(427, 200), p)

	_, err = ParseResolution("427")
	assert.Error(t, err)
	_, err = ParseResolution("0x200")
	assert.ErrorIs(t, err, ErrInvalidSize)

	r, err := ParseRect("10,20,300,200")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(10, 20, 310, 220), r)

	_, err = ParseRect("10,20,300")
	assert.Error(t, err)

	ratio, err := ParseRatio("5:6")
	require.NoError(t, err)
	assert.Equal(t, Ratio{5, 6}, ratio)
	assert.Equal(t, "5:6", ratio.String())

	_, err = ParseRatio("5:-6")
	assert.ErrorIs(t, err, ErrInvalidSize)
}
