package retroimg

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"io"
	"os"
)

// ConvertFile converts the image in file in and writes it to file out, the
// output format follows the extension of out.
func (c *Converter) ConvertFile(in, out string, opts Options) error {
	format, err := FormatFromPath(out)
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := Decode(io.TeeReader(f, h))
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	// Decoders may stop before the end of the file
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	sum := fmt.Sprintf("%X", h.Sum(nil))

	if c.cache != nil {
		b, err := c.cache.Find(sum, opts.Fingerprint(), format)
		if err != nil {
			return err
		}
		if b != nil {
			c.logger.Debugf("Cache hit for \"%s\"", in)
			return os.WriteFile(out, b, 0o644)
		}
	}

	b, err := c.convert(m, opts, format)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	if c.cache != nil {
		if err := c.cache.Store(sum, opts.Fingerprint(), format, b); err != nil {
			return err
		}
	}

	return os.WriteFile(out, b, 0o644)
}

func (c *Converter) convert(m image.Image, opts Options, format string) ([]byte, error) {
	out, result, err := c.Convert(m, opts)
	if err != nil {
		return nil, err
	}

	// Keep the output paletted if no scaling took place
	if out.Bounds() == result.Bounds() {
		if pm, ok := result.Paletted(); ok {
			out = pm
		}
	}

	b := new(bytes.Buffer)
	if err := Encode(b, out, format); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
