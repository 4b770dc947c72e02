package dither

import (
	"errors"
	"fmt"
	"strings"

	dither2 "github.com/makeworld-the-better-one/dither/v2"
)

// ErrInvalidMethod is returned by ParseMethod for an unknown method name.
var ErrInvalidMethod = errors.New("dither: invalid method")

// Method selects how quantization error is hidden.
type Method uint8

// Dithering methods. The error diffusion kernels are those of the dither
// package.
const (
	None Method = iota
	FloydSteinberg
	FalseFloydSteinberg
	JarvisJudiceNinke
	Atkinson
	Stucki
	Burkes
	Sierra
	TwoRowSierra
	SierraLite
	Bayer4
	Bayer8
	numMethods
)

var methodNames = [numMethods]string{
	None:                "none",
	FloydSteinberg:      "floydsteinberg",
	FalseFloydSteinberg: "falsefloydsteinberg",
	JarvisJudiceNinke:   "jarvisjudiceninke",
	Atkinson:            "atkinson",
	Stucki:              "stucki",
	Burkes:              "burkes",
	Sierra:              "sierra",
	TwoRowSierra:        "tworowsierra",
	SierraLite:          "sierralite",
	Bayer4:              "bayer4",
	Bayer8:              "bayer8",
}

var matrices = map[Method]dither2.ErrorDiffusionMatrix{
	FloydSteinberg:      dither2.FloydSteinberg,
	FalseFloydSteinberg: dither2.FalseFloydSteinberg,
	JarvisJudiceNinke:   dither2.JarvisJudiceNinke,
	Atkinson:            dither2.Atkinson,
	Stucki:              dither2.Stucki,
	Burkes:              dither2.Burkes,
	Sierra:              dither2.Sierra,
	TwoRowSierra:        dither2.TwoRowSierra,
	SierraLite:          dither2.SierraLite,
}

var bayerSizes = map[Method]uint{
	Bayer4: 4,
	Bayer8: 8,
}

// Methods returns every method in declaration order.
func Methods() []Method {
	m := make([]Method, numMethods)
	for i := range m {
		m[i] = Method(i)
	}
	return m
}

// ParseMethod returns the method with the given case-insensitive name. The
// names "fs", "on" and "true" select FloydSteinberg, "off" and "false" None.
func ParseMethod(s string) (Method, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "fs", "on", "true":
		return FloydSteinberg, nil
	case "off", "false":
		return None, nil
	}
	for i, name := range methodNames {
		if s == name {
			return Method(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
}

func (m Method) String() string {
	if m >= numMethods {
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
	return methodNames[m]
}

// ErrorDiffusion reports whether m diffuses error to neighboring pixels.
func (m Method) ErrorDiffusion() bool {
	_, ok := matrices[m]
	return ok
}

// Ordered reports whether m is an ordered dither.
func (m Method) Ordered() bool {
	_, ok := bayerSizes[m]
	return ok
}

type weight struct {
	dx, dy int
	w      float32
}

// weights flattens an error diffusion matrix into offsets relative to the
// current pixel, which is the right-most zero of the first row.
func weights(edm dither2.ErrorDiffusionMatrix) []weight {
	if len(edm) == 0 {
		return nil
	}
	current := 0
	for x, w := range edm[0] {
		if w != 0 {
			break
		}
		current = x
	}
	var ws []weight
	for y, row := range edm {
		for x, w := range row {
			if w == 0 || (y == 0 && x <= current) {
				continue
			}
			ws = append(ws, weight{x - current, y, w})
		}
	}
	return ws
}
