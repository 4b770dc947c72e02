package geometry

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Ratio is the shape of a single pixel, W wide by H tall.
type Ratio struct {
	W, H int
}

// Square is the 1:1 pixel ratio.
var Square = Ratio{1, 1}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.W, r.H)
}

// OutputSize resolves the final resolution for an image of size in. When
// both width and height are given they are used as is. When only one of them
// is given the other follows from the display aspect ratio, which is the
// aspect ratio of in stretched by the pixel ratio r. When neither is given
// each pixel becomes r.W by r.H output pixels.
func OutputSize(in image.Point, width, height int, r Ratio) (image.Point, error) {
	if in.X <= 0 || in.Y <= 0 {
		return image.Point{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, in.X, in.Y)
	}
	if r.W <= 0 || r.H <= 0 {
		return image.Point{}, fmt.Errorf("%w: pixel ratio %v", ErrInvalidSize, r)
	}
	if width < 0 || height < 0 {
		return image.Point{}, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	// Display aspect ratio as a fraction
	num, den := in.X*r.W, in.Y*r.H

	switch {
	case width > 0 && height > 0:
		return image.Pt(width, height), nil
	case width > 0:
		return image.Pt(width, max(1, (width*den+num/2)/num)), nil
	case height > 0:
		return image.Pt(max(1, (height*num+den/2)/den), height), nil
	}
	return image.Pt(in.X*r.W, in.Y*r.H), nil
}

func parseInts(value, sep string, n int) ([]int, error) {
	parts := strings.Split(value, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("%q: expected %d components separated by %q", value, n, sep)
	}
	ints := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ints[i] = v
	}
	return ints, nil
}

// ParseResolution parses a "<width>x<height>" string.
func ParseResolution(value string) (image.Point, error) {
	v, err := parseInts(strings.ToLower(value), "x", 2)
	if err != nil {
		return image.Point{}, err
	}
	if v[0] <= 0 || v[1] <= 0 {
		return image.Point{}, fmt.Errorf("%w: %q", ErrInvalidSize, value)
	}
	return image.Pt(v[0], v[1]), nil
}

// ParseRect parses a "<left>,<top>,<width>,<height>" string.
func ParseRect(value string) (image.Rectangle, error) {
	v, err := parseInts(value, ",", 4)
	if err != nil {
		return image.Rectangle{}, err
	}
	if v[0] < 0 || v[1] < 0 || v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %q", ErrInvalidSize, value)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// ParseRatio parses a "<width>:<height>" pixel ratio.
func ParseRatio(value string) (Ratio, error) {
	v, err := parseInts(value, ":", 2)
	if err != nil {
		return Ratio{}, err
	}
	if v[0] <= 0 || v[1] <= 0 {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidSize, value)
	}
	return Ratio{v[0], v[1]}, nil
}
