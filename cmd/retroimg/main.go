package main

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/bodgit/retroimg"
	"github.com/bodgit/retroimg/bsave"
	"github.com/bodgit/retroimg/cache"
	"github.com/bodgit/retroimg/dither"
	"github.com/bodgit/retroimg/geometry"
	"github.com/bodgit/retroimg/palette"
	"github.com/bodgit/retroimg/standard"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func conversionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "standard",
			Aliases: []string{"S"},
			EnvVars: []string{"RETROIMG_STANDARD"},
			Value:   "vga",
			Usage:   "video standard to emulate, see the standards command",
		},
		&cli.StringFlag{
			Name:  "crop",
			Usage: "crop the source image to LEFT,TOP,WIDTH,HEIGHT first",
		},
		&cli.StringFlag{
			Name:  "res",
			Value: "427x200",
			Usage: "emulated internal resolution",
		},
		&cli.StringFlag{
			Name:    "out-size",
			Aliases: []string{"s"},
			Value:   "1920x1080",
			Usage:   "final output resolution",
		},
		&cli.StringFlag{
			Name:  "pixel-ratio",
			Usage: "pixel aspect ratio W:H, overrides --out-size",
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "final output width, overrides --out-size",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "final output height, overrides --out-size",
		},
		&cli.BoolFlag{
			Name:  "no-color-limit",
			Usage: "do not limit the number of simultaneous colors",
		},
		&cli.IntFlag{
			Name:    "num-colors",
			Aliases: []string{"c"},
			Value:   256,
			Usage:   "maximum number of simultaneous colors",
		},
		&cli.StringFlag{
			Name:    "dither",
			Aliases: []string{"d"},
			EnvVars: []string{"RETROIMG_DITHER"},
			Value:   dither.FloydSteinberg.String(),
			Usage:   "dithering method, one of " + methodNames(),
		},
		&cli.BoolFlag{
			Name:  "serpentine",
			Usage: "alternate the direction of error diffusion on every row",
		},
		&cli.StringFlag{
			Name:  "loss",
			Value: palette.L2.String(),
			Usage: "color distance, one of l1, l2, wl2 or lab",
		},
		&cli.StringFlag{
			Name:  "filter",
			Value: geometry.CatmullRom.String(),
			Usage: "downscaling filter, one of catmullrom, bilinear, approxbilinear or nearest",
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"RETROIMG_CACHE"},
			Usage:   "path to conversion cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}
}

func methodNames() string {
	var names []string
	for _, m := range dither.Methods() {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}

func newLogger(c *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func newConverter(c *cli.Context, logger logrus.FieldLogger) (*retroimg.Converter, func() error, error) {
	if c.String("cache") == "" {
		return retroimg.New(nil, logger), func() error { return nil }, nil
	}
	db, err := cache.New(c.String("cache"))
	if err != nil {
		return nil, nil, err
	}
	return retroimg.New(db, logger), db.Close, nil
}

func options(c *cli.Context) (retroimg.Options, error) {
	opts := retroimg.DefaultOptions()

	var err error
	if opts.Standard, err = standard.Parse(c.String("standard")); err != nil {
		return opts, err
	}
	if opts.Dither, err = dither.ParseMethod(c.String("dither")); err != nil {
		return opts, err
	}
	if opts.Metric, err = palette.ParseMetric(c.String("loss")); err != nil {
		return opts, err
	}
	if opts.Filter, err = geometry.ParseFilter(c.String("filter")); err != nil {
		return opts, err
	}
	if c.IsSet("crop") {
		if opts.Crop, err = geometry.ParseRect(c.String("crop")); err != nil {
			return opts, err
		}
	}
	if opts.Resolution, err = geometry.ParseResolution(c.String("res")); err != nil {
		return opts, err
	}

	opts.NumColors = c.Int("num-colors")
	opts.NoColorLimit = c.Bool("no-color-limit")
	opts.Serpentine = c.Bool("serpentine")

	if c.IsSet("pixel-ratio") || c.IsSet("width") || c.IsSet("height") {
		ratio := geometry.Square
		if c.IsSet("pixel-ratio") {
			if ratio, err = geometry.ParseRatio(c.String("pixel-ratio")); err != nil {
				return opts, err
			}
		}
		opts.Output, err = geometry.OutputSize(opts.Resolution, c.Int("width"), c.Int("height"), ratio)
	} else {
		opts.Output, err = geometry.ParseResolution(c.String("out-size"))
	}

	return opts, err
}

func bsaveMode(s standard.Standard) (bsave.Mode, error) {
	switch {
	case s.Kind() == standard.SubPaletted:
		return bsave.Mode320, nil
	case s == standard.BlackWhite:
		return bsave.Mode640, nil
	}
	return 0, fmt.Errorf("no BSAVE mode for standard %v", s)
}

// framebuffer returns result with the pixel values the hardware would store.
// Sub-palette results are already in hardware order, a color limited black
// and white result is not.
func framebuffer(s standard.Standard, result *dither.Result) (*image.Paletted, error) {
	if s.Kind() == standard.SubPaletted {
		pm, ok := result.Paletted()
		if !ok {
			return nil, fmt.Errorf("too many colors for BSAVE: %d", len(result.Palette))
		}
		return pm, nil
	}

	hw := s.Palette()
	pm := image.NewPaletted(result.Rect, hw.Colors())
	for y := result.Rect.Min.Y; y < result.Rect.Max.Y; y++ {
		for x := result.Rect.Min.X; x < result.Rect.Max.X; x++ {
			i := hw.Index(result.Palette[result.ColorIndexAt(x, y)])
			if i < 0 {
				return nil, fmt.Errorf("color not displayable by %v", s)
			}
			pm.SetColorIndex(x, y, uint8(i))
		}
	}
	return pm, nil
}

func writeBSAVE(file string, s standard.Standard, result *dither.Result) error {
	mode, err := bsaveMode(s)
	if err != nil {
		return err
	}
	pm, err := framebuffer(s, result)
	if err != nil {
		return err
	}
	b := new(bytes.Buffer)
	if err := bsave.Encode(b, pm, mode); err != nil {
		return err
	}
	return os.WriteFile(file, b.Bytes(), 0o644)
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	opts, err := options(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	in := c.Args().First()
	out := c.String("out")

	converter, closeFunc, err := newConverter(c, logger)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closeFunc()

	if !c.IsSet("bsave") {
		if err := converter.ConvertFile(in, out, opts); err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	}

	// The screen dump needs the quantized image so the cache is bypassed
	format, err := retroimg.FormatFromPath(out)
	if err != nil {
		return cli.Exit(err, 1)
	}

	f, err := os.Open(in)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer f.Close()

	m, _, err := retroimg.Decode(f)
	if err != nil {
		return cli.Exit(err, 1)
	}

	final, result, err := converter.Convert(m, opts)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := writeBSAVE(c.String("bsave"), opts.Standard, result); err != nil {
		return cli.Exit(err, 1)
	}

	w, err := os.Create(out)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer w.Close()

	if err := retroimg.Encode(w, final, format); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func batch(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := newLogger(c)

	opts, err := options(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	converter, closeFunc, err := newConverter(c, logger)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer closeFunc()

	if err := converter.Batch(c.Context, c.Args().Get(0), c.Args().Get(1), opts, c.Int("workers")); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func standards(c *cli.Context) error {
	for _, s := range standard.All() {
		size := fmt.Sprint(s.Size())
		if s.Kind() == standard.SubPaletted {
			size = fmt.Sprintf("4 of %d", s.Size())
		}
		fmt.Fprintf(c.App.Writer, "%-14s %-12s %-11s %-9s %s\n",
			s, strings.Join(s.Aliases(), ","), s.Kind(), size, s.Description())
	}
	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "retroimg"
	app.Usage = "Make images look as if they were shown on retro PC hardware"
	app.Version = "1.0.0"

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a single image",
			Description: "",
			ArgsUsage:   "FILE",
			Flags: append(append([]cli.Flag{
				&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Value:   "out.png",
					Usage:   "output file, the format follows the extension",
				},
				&cli.StringFlag{
					Name:  "bsave",
					Usage: "also write a BSAVE screen dump of the CGA framebuffer",
				},
			}, conversionFlags()...), commonFlags()...),
			Action: convert,
		},
		{
			Name:        "batch",
			Usage:       "Convert every image in a directory tree",
			Description: "",
			ArgsUsage:   "SOURCE DESTINATION",
			Flags: append(append([]cli.Flag{
				&cli.IntFlag{
					Name:    "workers",
					Aliases: []string{"j"},
					Value:   runtime.NumCPU(),
					Usage:   "number of concurrent conversions",
				},
			}, conversionFlags()...), commonFlags()...),
			Action: batch,
		},
		{
			Name:   "standards",
			Usage:  "List the supported video standards",
			Action: standards,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
