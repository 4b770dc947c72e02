package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidMetric is returned by ParseMetric for an unknown metric name.
var ErrInvalidMetric = errors.New("palette: invalid distance metric")

// Metric selects how the difference between two colors is measured.
type Metric uint8

const (
	// L2 is the Euclidean distance in the RGB cube.
	L2 Metric = iota
	// L1 is the Manhattan distance in the RGB cube.
	L1
	// WL2 is the Euclidean distance with the channels weighted 3:4:2 to
	// roughly follow the eye's sensitivity.
	WL2
	// Lab is the CIE76 distance in the CIE L*a*b* color space.
	Lab
)

// labScale turns the fractional Lab distance into an integer score.
const labScale = 1000

var metricNames = map[Metric]string{
	L2:  "L2",
	L1:  "L1",
	WL2: "WL2",
	Lab: "Lab",
}

func (m Metric) String() string {
	if s, ok := metricNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Metric(%d)", uint8(m))
}

// ParseMetric returns the metric with the given case-insensitive name.
func ParseMetric(s string) (Metric, error) {
	for m, name := range metricNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return L2, fmt.Errorf("%w: %q", ErrInvalidMetric, s)
}

// Distance returns a score that grows with the difference between a and b.
// Only the ordering of scores is meaningful; for L2 and WL2 the score is the
// squared distance. Distance(a, b) == Distance(b, a) and Distance(a, a) == 0.
func (m Metric) Distance(a, b color.RGBA) uint32 {
	dr := int32(a.R) - int32(b.R)
	dg := int32(a.G) - int32(b.G)
	db := int32(a.B) - int32(b.B)

	switch m {
	case L1:
		return uint32(abs(dr) + abs(dg) + abs(db))
	case WL2:
		return uint32(3*dr*dr + 4*dg*dg + 2*db*db)
	case Lab:
		if dr == 0 && dg == 0 && db == 0 {
			return 0
		}
		return uint32(math.Round(toColorful(a).DistanceLab(toColorful(b)) * labScale))
	default:
		return uint32(dr*dr + dg*dg + db*db)
	}
}

// Loss returns the linear distance between a and b, used when accumulating
// error over many pixels.
func (m Metric) Loss(a, b color.RGBA) uint64 {
	d := m.Distance(a, b)
	switch m {
	case L2, WL2:
		return uint64(math.Sqrt(float64(d)))
	default:
		return uint64(d)
	}
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
	}
}

func abs(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
