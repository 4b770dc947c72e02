package retroimg

import (
	"fmt"
	"image"

	"github.com/bodgit/retroimg/dither"
	"github.com/bodgit/retroimg/geometry"
	"github.com/bodgit/retroimg/palette"
	"github.com/bodgit/retroimg/standard"
)

// Options controls a conversion.
type Options struct {
	// Standard is the emulated display standard.
	Standard standard.Standard
	// NumColors is the maximum number of simultaneous colors for
	// continuous standards. It is ignored when NoColorLimit is set.
	NumColors    int
	NoColorLimit bool
	// Dither is the dithering method and Serpentine alternates the
	// direction of error diffusion on every other row.
	Dither     dither.Method
	Serpentine bool
	// Metric compares colors during palette selection and quantization.
	Metric palette.Metric
	// Crop is applied to the source image first unless it is empty.
	Crop image.Rectangle
	// Resolution is the emulated resolution. A zero value keeps the size
	// of the (cropped) source image.
	Resolution image.Point
	// Filter is used to scale down to Resolution.
	Filter geometry.Filter
	// Output is the final resolution. A zero value skips scaling up.
	Output image.Point
}

// DefaultOptions returns the options of a 427x200 VGA picture with 256
// colors, Floyd-Steinberg dithering and a 1920x1080 output.
func DefaultOptions() Options {
	return Options{
		Standard:   standard.VGA18Bit,
		NumColors:  256,
		Dither:     dither.FloydSteinberg,
		Metric:     palette.L2,
		Resolution: image.Pt(427, 200),
		Filter:     geometry.CatmullRom,
		Output:     image.Pt(1920, 1080),
	}
}

// Fingerprint returns a string identifying every option that affects the
// output.
func (o Options) Fingerprint() string {
	colors := "unlimited"
	if !o.NoColorLimit {
		colors = fmt.Sprint(o.NumColors)
	}
	serpentine := ""
	if o.Serpentine {
		serpentine = "+serpentine"
	}
	return fmt.Sprintf("%v/%s/%v%s/%v/%v/%v/%v/%v",
		o.Standard, colors, o.Dither, serpentine, o.Metric,
		o.Crop, o.Resolution, o.Filter, o.Output)
}
