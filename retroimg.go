/*
Package retroimg converts images to look like they were shown on retro IBM PC
display hardware such as the CGA, EGA or VGA.

An image is cropped and scaled down to the emulated resolution, its colors
are reduced to what the chosen standard can display, optionally dithered, and
the result is scaled back up with hard pixel edges.
*/
package retroimg

import (
	"io"

	"github.com/bodgit/retroimg/cache"
	"github.com/sirupsen/logrus"
)

// Converter runs the conversion pipeline. A cache, when present, is used by
// ConvertFile to skip work already done.
type Converter struct {
	cache  *cache.DB
	logger logrus.FieldLogger
}

// New returns a Converter. Both the cache and the logger may be nil.
func New(db *cache.DB, logger logrus.FieldLogger) *Converter {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Converter{
		cache:  db,
		logger: logger,
	}
}
