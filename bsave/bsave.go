/*
Package bsave implements the BASIC BSAVE memory dump format for the CGA
graphics framebuffer at segment B800h.

The 320x200 four color mode stores four pixels per byte and the 640x200
two color mode eight pixels per byte, most significant bits leftmost. Even
scanlines live in the first 8000 bytes and odd scanlines 8192 bytes further
on. The dump is preceded by a seven byte header: the FDh marker followed by
the segment, offset and length as little endian 16-bit words.
*/
package bsave

import (
	"errors"
	"image"
	"image/color"
	"io"
)

// Mode selects the CGA graphics mode of a dump.
type Mode uint8

// Supported modes.
const (
	// Mode320 is the 320x200 four color mode, two bits per pixel.
	Mode320 Mode = iota
	// Mode640 is the 640x200 two color mode, one bit per pixel.
	Mode640
)

const (
	marker     = 0xfd
	segment    = 0xb800
	headerSize = 7
	length     = 0x4000
	bankOffset = 0x2000
	lineBytes  = 80
	height     = 200
)

var (
	errBadHeader = errors.New("bsave: invalid header")
	errNotEnough = errors.New("bsave: not enough image data")
	errWrongSize = errors.New("bsave: image is wrong size")
	errBadIndex  = errors.New("bsave: color index out of range")
)

// Width returns the horizontal resolution of the mode.
func (m Mode) Width() int {
	if m == Mode640 {
		return 640
	}
	return 320
}

// Bits returns the number of bits per pixel.
func (m Mode) Bits() int {
	if m == Mode640 {
		return 1
	}
	return 2
}

// Colors returns the number of simultaneous colors.
func (m Mode) Colors() int {
	return 1 << m.Bits()
}

func (m Mode) pixelsPerByte() int {
	return 8 / m.Bits()
}

func lineOffset(y int) int {
	return (y&1)*bankOffset + (y>>1)*lineBytes
}

func (m Mode) locate(x, y int) (int, uint) {
	ppb := m.pixelsPerByte()
	shift := uint(8 - m.Bits()*(x%ppb+1))
	return lineOffset(y) + x/ppb, shift
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Encode writes the paletted image m to w as a BSAVE dump of mode.
func Encode(w io.Writer, m image.PalettedImage, mode Mode) error {
	b := m.Bounds()
	if b.Dx() != mode.Width() || b.Dy() != height {
		return errWrongSize
	}

	var buf [headerSize + length]byte
	buf[0] = marker
	buf[1], buf[2] = byte(segment&0xff), byte(segment>>8)
	buf[5], buf[6] = byte(length&0xff), byte(length>>8)

	data := buf[headerSize:]
	mask := byte(mode.Colors() - 1)
	for y := 0; y < height; y++ {
		for x := 0; x < mode.Width(); x++ {
			i := m.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
			if i > mask {
				return errBadIndex
			}
			offset, shift := mode.locate(x, y)
			data[offset] |= i << shift
		}
	}

	_, err := w.Write(buf[:])
	return err
}

// Decode reads a BSAVE dump of mode from r and returns it as a paletted image
// using p, which must have at least mode.Colors() entries.
func Decode(r io.Reader, mode Mode, p color.Palette) (*image.Paletted, error) {
	if len(p) < mode.Colors() {
		return nil, errBadIndex
	}

	var header [headerSize]byte
	if err := readFull(r, header[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errNotEnough
	}
	if header[0] != marker || int(header[1])|int(header[2])<<8 != segment {
		return nil, errBadHeader
	}

	n := int(header[5]) | int(header[6])<<8
	if n < lineOffset(height-1)+lineBytes {
		return nil, errNotEnough
	}

	data := make([]byte, n)
	if err := readFull(r, data); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errNotEnough
	}

	m := image.NewPaletted(image.Rect(0, 0, mode.Width(), height), p)
	mask := byte(mode.Colors() - 1)
	for y := 0; y < height; y++ {
		for x := 0; x < mode.Width(); x++ {
			offset, shift := mode.locate(x, y)
			m.SetColorIndex(x, y, data[offset]>>shift&mask)
		}
	}
	return m, nil
}
