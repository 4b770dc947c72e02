package dither

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/bodgit/retroimg/palette"
)

// ErrEmptyPalette is returned when quantizing against a palette with no
// entries.
var ErrEmptyPalette = errors.New("dither: empty palette")

// Mapper assigns a palette index to a color.
type Mapper interface {
	// Map returns the index and color of the palette entry that
	// represents c.
	Map(c color.RGBA) (int, color.RGBA)
	// Palette returns the effective palette. For mappers that grow their
	// palette while mapping it is only complete once mapping is done.
	Palette() palette.Palette
}

type paletteMapper struct {
	p      palette.Palette
	metric palette.Metric
	cache  map[color.RGBA]int

	// When set only these entries of p are candidates
	indices []int
	sub     palette.Palette
}

// NewPaletteMapper returns a Mapper choosing the nearest entry of p by metric
// m, the lowest index winning ties.
func NewPaletteMapper(p palette.Palette, m palette.Metric) (Mapper, error) {
	if len(p) == 0 {
		return nil, ErrEmptyPalette
	}
	return &paletteMapper{
		p:      p,
		metric: m,
		cache:  make(map[color.RGBA]int),
	}, nil
}

// NewSubsetMapper is like NewPaletteMapper but only the entries of p at the
// given indices are used. Returned indices still refer to p.
func NewSubsetMapper(p palette.Palette, indices []int, m palette.Metric) (Mapper, error) {
	if len(p) == 0 || len(indices) == 0 {
		return nil, ErrEmptyPalette
	}
	sub := make(palette.Palette, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(p) {
			return nil, fmt.Errorf("dither: palette index %d out of range", idx)
		}
		sub[i] = p[idx]
	}
	return &paletteMapper{
		p:       p,
		metric:  m,
		cache:   make(map[color.RGBA]int),
		indices: indices,
		sub:     sub,
	}, nil
}

func (pm *paletteMapper) Map(c color.RGBA) (int, color.RGBA) {
	c.A = 0xff
	i, ok := pm.cache[c]
	if !ok {
		if pm.indices != nil {
			i = pm.indices[pm.sub.Nearest(c, pm.metric)]
		} else {
			i = pm.p.Nearest(c, pm.metric)
		}
		pm.cache[c] = i
	}
	return i, pm.p[i]
}

func (pm *paletteMapper) Palette() palette.Palette {
	return pm.p
}

type depthMapper struct {
	depth palette.Depth
	p     palette.Palette
	index map[color.RGBA]int
}

// NewDepthMapper returns a Mapper for a continuous color space. Each color
// is reduced to the depth and the distinct results are collected into the
// palette in the order they are first produced.
func NewDepthMapper(d palette.Depth) Mapper {
	return &depthMapper{
		depth: d,
		index: make(map[color.RGBA]int),
	}
}

func (dm *depthMapper) Map(c color.RGBA) (int, color.RGBA) {
	mc := dm.depth.Map(c)
	i, ok := dm.index[mc]
	if !ok {
		i = len(dm.p)
		dm.p = append(dm.p, mc)
		dm.index[mc] = i
	}
	return i, mc
}

func (dm *depthMapper) Palette() palette.Palette {
	return dm.p
}

// spread estimates the distance between neighboring representable levels
// on one channel, used to size the ordered dither threshold.
func spread(mp Mapper) float32 {
	switch m := mp.(type) {
	case *depthMapper:
		return 0xff / float32(m.depth.Levels()-1)
	case *paletteMapper:
		n := len(m.p)
		if m.indices != nil {
			n = len(m.indices)
		}
		return 0xff / float32(math.Cbrt(float64(n)))
	}
	return 0
}
