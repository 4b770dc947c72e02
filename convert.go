package retroimg

import (
	"image"

	"github.com/bodgit/retroimg/dither"
	"github.com/bodgit/retroimg/geometry"
	"github.com/bodgit/retroimg/selector"
	"github.com/sirupsen/logrus"
)

// Convert runs the whole pipeline on m. It returns the final image along with
// the quantized image at the emulated resolution.
func (c *Converter) Convert(m image.Image, opts Options) (image.Image, *dither.Result, error) {
	logger := c.logger.WithFields(logrus.Fields{
		"standard": opts.Standard,
		"dither":   opts.Dither,
	})

	var err error
	if !opts.Crop.Empty() {
		if m, err = geometry.Crop(m, opts.Crop); err != nil {
			return nil, nil, stageError(StageCrop, err)
		}
		logger.Debugf("Cropped to %v", opts.Crop)
	}

	if opts.Resolution != (image.Point{}) && opts.Resolution != m.Bounds().Size() {
		if m, err = geometry.Downscale(m, opts.Resolution, opts.Filter); err != nil {
			return nil, nil, stageError(StageDownscale, err)
		}
		logger.Debugf("Emulated internal resolution: %d x %d", opts.Resolution.X, opts.Resolution.Y)
	}

	selectOpts := []selector.Option{
		selector.WithMetric(opts.Metric),
		selector.WithLogger(logger),
	}
	if !opts.NoColorLimit {
		selectOpts = append(selectOpts, selector.WithMaxColors(opts.NumColors))
	}

	sel, err := selector.Select(m, opts.Standard, selectOpts...)
	if err != nil {
		return nil, nil, stageError(StageSelect, err)
	}

	mp, err := sel.Mapper()
	if err != nil {
		return nil, nil, stageError(StageQuantize, err)
	}

	var ditherOpts []dither.Option
	if opts.Serpentine {
		ditherOpts = append(ditherOpts, dither.WithSerpentine())
	}

	result, err := dither.Quantize(m, mp, opts.Dither, ditherOpts...)
	if err != nil {
		return nil, nil, stageError(StageQuantize, err)
	}
	logger.Debugf("Quantized to %d colors, %d used", len(result.Palette), result.Used())

	var out image.Image = result.Expand()
	if opts.Output != (image.Point{}) && opts.Output != out.Bounds().Size() {
		if out, err = geometry.Upscale(out, opts.Output); err != nil {
			return nil, nil, stageError(StageUpscale, err)
		}
		logger.Debugf("External resolution: %d x %d", opts.Output.X, opts.Output.Y)
	}

	return out, result, nil
}
