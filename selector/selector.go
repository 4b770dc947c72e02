/*
Package selector decides the effective palette used to quantize one image
for one display standard.

Fixed standards use their master palette unchanged. Continuous standards map
through their color depth, optionally reduced to a maximum number of
colors with a median cut. The CGA sub-palette modes try every combination of
sub-palette and background color and keep the one with the lowest error.
*/
package selector

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/bodgit/retroimg/dither"
	"github.com/bodgit/retroimg/palette"
	"github.com/bodgit/retroimg/standard"
	"github.com/sirupsen/logrus"
)

// ErrInvalidColorCount is returned when the requested number of colors is
// not positive or larger than the color space of the standard.
var ErrInvalidColorCount = errors.New("selector: invalid color count")

// Selection is the effective palette chosen for an image.
type Selection struct {
	Standard standard.Standard
	Metric   palette.Metric

	// Palette is the effective palette. It is nil when a continuous
	// standard is used without a color limit, in which case colors are
	// mapped through Depth.
	Palette palette.Palette
	Depth   palette.Depth

	// Allowed lists the indices of Palette the quantizer may use when a
	// color limit leaves some entries unused. It is nil when every entry
	// may be used. Only sub-palette standards set it, their indices are the
	// pixel values of the hardware.
	Allowed []int

	// SubPalette and Background are only set for sub-palette standards.
	SubPalette *standard.SubPalette
	Background int

	// Loss is the error of mapping the image to Palette without dithering.
	// It is only computed for sub-palette standards.
	Loss uint64
}

// Mapper returns a dither.Mapper for the selection.
func (s *Selection) Mapper() (dither.Mapper, error) {
	if s.Palette == nil && s.Standard.Kind() == standard.Continuous {
		return dither.NewDepthMapper(s.Depth), nil
	}
	if s.Allowed != nil {
		return dither.NewSubsetMapper(s.Palette, s.Allowed, s.Metric)
	}
	return dither.NewPaletteMapper(s.Palette, s.Metric)
}

type options struct {
	maxColors int
	limited   bool
	metric    palette.Metric
	logger    logrus.FieldLogger
}

// Option configures Select.
type Option func(*options)

// WithMaxColors limits the number of simultaneous colors to n. A limit of at
// least the size of a fixed or sub-palette has no effect.
func WithMaxColors(n int) Option {
	return func(o *options) {
		o.maxColors = n
		o.limited = true
	}
}

// WithMetric sets the metric used to compare colors, L2 by default.
func WithMetric(m palette.Metric) Option {
	return func(o *options) {
		o.metric = m
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Select returns the effective palette for m rendered with standard s.
func Select(m image.Image, s standard.Standard, opts ...Option) (*Selection, error) {
	o := options{
		metric: palette.L2,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = discard()
	}

	if !s.Valid() {
		return nil, fmt.Errorf("%w: %v", standard.ErrInvalidStandard, s)
	}

	logger := o.logger.WithField("standard", s)

	sel := &Selection{
		Standard: s,
		Metric:   o.metric,
	}

	if o.limited && o.maxColors <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColorCount, o.maxColors)
	}

	switch s.Kind() {
	case standard.Fixed:
		sel.Palette = s.Palette()
		if o.limited && o.maxColors < len(sel.Palette) {
			sel.Palette = reduce(m, nearestIn(sel.Palette, o.metric), o.maxColors)
			logger.Debugf("Reduced to %d colors", len(sel.Palette))
		}
	case standard.Continuous:
		sel.Depth = s.Depth()
		if !o.limited {
			break
		}
		if o.maxColors > s.Size() {
			return nil, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidColorCount, o.maxColors, s.Size())
		}
		sel.Palette = reduce(m, sel.Depth.Map, o.maxColors)
		logger.Debugf("Reduced to %d colors", len(sel.Palette))
	case standard.SubPaletted:
		h := newHistogram(m)
		c, err := best(h, s.SubPalettes(), o.metric)
		if err != nil {
			return nil, err
		}
		sel.Palette = c.palette
		sel.SubPalette = &c.subPalette
		sel.Background = c.background
		sel.Loss = c.loss
		if o.limited && o.maxColors < len(sel.Palette) {
			sel.Allowed, sel.Loss = restrict(m, h, sel.Palette, o.maxColors, o.metric)
			logger.Debugf("Restricted to palette entries %v", sel.Allowed)
		}
		logger.WithFields(logrus.Fields{
			"subpalette": c.subPalette,
			"background": c.background,
			"loss":       sel.Loss,
		}).Debug("Selected sub-palette")
	}

	if sel.Palette != nil && len(sel.Palette) == 0 && !m.Bounds().Empty() {
		return nil, dither.ErrEmptyPalette
	}

	return sel, nil
}
