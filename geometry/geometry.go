/*
Package geometry implements the buffer to buffer transforms around color
reduction: cropping, scaling down to the emulated resolution and scaling back
up with hard pixel edges and an optional non-square pixel aspect ratio.
*/
package geometry

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

var (
	// ErrEmptyCrop is returned when the crop rectangle misses the image.
	ErrEmptyCrop = errors.New("geometry: crop rectangle outside image")
	// ErrInvalidSize is returned for a zero or negative size.
	ErrInvalidSize = errors.New("geometry: invalid size")
	// ErrInvalidFilter is returned by ParseFilter for an unknown name.
	ErrInvalidFilter = errors.New("geometry: invalid filter")
)

// Filter selects the interpolation used when scaling down.
type Filter uint8

// Supported filters.
const (
	CatmullRom Filter = iota
	BiLinear
	ApproxBiLinear
	NearestNeighbor
)

var filters = []struct {
	name   string
	interp draw.Interpolator
}{
	CatmullRom:      {"catmullrom", draw.CatmullRom},
	BiLinear:        {"bilinear", draw.BiLinear},
	ApproxBiLinear:  {"approxbilinear", draw.ApproxBiLinear},
	NearestNeighbor: {"nearest", draw.NearestNeighbor},
}

// ParseFilter returns the filter with the given case-insensitive name.
func ParseFilter(s string) (Filter, error) {
	for i, f := range filters {
		if strings.EqualFold(s, f.name) {
			return Filter(i), nil
		}
	}
	return CatmullRom, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
}

func (f Filter) String() string {
	if int(f) < len(filters) {
		return filters[f].name
	}
	return fmt.Sprintf("Filter(%d)", uint8(f))
}

func (f Filter) interpolator() draw.Interpolator {
	if int(f) < len(filters) {
		return filters[f].interp
	}
	return draw.CatmullRom
}

// Crop returns the part of m inside r, with r in the coordinate space of m.
func Crop(m image.Image, r image.Rectangle) (image.Image, error) {
	if r.Intersect(m.Bounds()).Empty() {
		return nil, ErrEmptyCrop
	}
	return imaging.Crop(m, r), nil
}

func scale(m image.Image, size image.Point, interp draw.Interpolator) (*image.RGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, size.X, size.Y)
	}
	dst := image.NewRGBA(image.Rectangle{Max: size})
	interp.Scale(dst, dst.Bounds(), m, m.Bounds(), draw.Src, nil)
	return dst, nil
}

// Downscale resizes m to size using filter f.
func Downscale(m image.Image, size image.Point, f Filter) (*image.RGBA, error) {
	return scale(m, size, f.interpolator())
}

// Upscale resizes m to size copying source pixels without blending.
func Upscale(m image.Image, size image.Point) (*image.RGBA, error) {
	return scale(m, size, draw.NearestNeighbor)
}
