package retroimg

import (
	"errors"
	"fmt"
	"image"
	"image/gif"  // GIF decoder and encoder
	"image/jpeg" // JPEG decoder and encoder
	"image/png"  // PNG decoder and encoder
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"  // BMP decoder and encoder
	"golang.org/x/image/tiff" // TIFF decoder and encoder

	_ "golang.org/x/image/webp" // WEBP decoder
)

// ErrUnknownFormat is returned when no encoder matches a file extension.
var ErrUnknownFormat = errors.New("retroimg: unknown image format")

var extensions = map[string]string{
	".png":  "png",
	".gif":  "gif",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".bmp":  "bmp",
	".tif":  "tiff",
	".tiff": "tiff",
}

// FormatFromPath returns the encoding format for a file name.
func FormatFromPath(file string) (string, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(file))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(file))
}

// Decode decodes an image in any registered format.
func Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// Encode writes m to w in the given format. Quantized images are written
// as paletted images where the format supports it.
func Encode(w io.Writer, m image.Image, format string) error {
	switch format {
	case "png":
		encoder := &png.Encoder{CompressionLevel: png.BestCompression}
		return encoder.Encode(w, m)
	case "gif":
		numColors := 256
		if pm, ok := m.(*image.Paletted); ok {
			numColors = len(pm.Palette)
		}
		return gif.Encode(w, m, &gif.Options{NumColors: numColors})
	case "jpeg":
		return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
	case "bmp":
		return bmp.Encode(w, m)
	case "tiff":
		return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
