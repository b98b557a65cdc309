/*
Package frame implements a decoder and encoder for blockcard frames.

A frame is a small indexed-color bitmap of at most 255 by 255 pixels. The
file starts with a one byte width, a one byte height and a big-endian 16-bit
count of palette entries. Each palette entry follows as three bytes of red,
green and blue. The remaining bytes hold the pixels as a bitstream, row by
row, left to right, where each pixel is a palette index using just enough
bits to represent 0 through the number of colors, most significant bit first.

Palette indices start at 1; index 0 is reserved for a transparent pixel and
is never looked up in the palette. A frame with no colors has no pixel data
at all.
*/
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/bits"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	headerSize = 4
	entrySize  = 3

	// MaxSize is the largest width or height of a frame
	MaxSize = 0xff

	// MaxColors is the largest number of palette entries
	MaxColors = 0xffff
)

var (
	// ErrOutOfBounds is returned when the buffer ends before a field can
	// be read in full
	ErrOutOfBounds = errors.New("frame: out of bounds")

	// ErrInvalidPaletteReference is returned when a pixel refers to a
	// palette entry that doesn't exist
	ErrInvalidPaletteReference = errors.New("frame: invalid palette reference")

	// ErrTooLarge is returned when encoding an image that can't be
	// represented as a frame
	ErrTooLarge = errors.New("frame: image is too large")

	// ErrInvalidShape is returned when the pixel grid of an Image doesn't
	// match its dimensions.
	ErrInvalidShape = errors.New("frame: pixel grid doesn't match dimensions")
)

// Color is a palette entry.
type Color struct {
	R, G, B uint8
}

// Hex returns the color as a #rrggbb string.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// RGBA implements the color.Color interface.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{c.R, c.G, c.B, 0xff}.RGBA()
}

// BitCount returns the number of bits used to store each pixel index for a
// palette of the given size.
func BitCount(colors int) int {
	return bits.Len(uint(colors))
}

// Config is the header and palette of a frame.
type Config struct {
	Width, Height int
	Palette       []Color
}

// Image is a decoded frame. Pix holds Height rows of Width palette indices.
type Image struct {
	Width, Height int
	Palette       []Color
	Pix           [][]uint16
}

// NewImage returns a transparent image with the given dimensions and
// palette.
func NewImage(width, height int, palette []Color) *Image {
	pix := make([][]uint16, height)
	for y := range pix {
		pix[y] = make([]uint16, width)
	}
	return &Image{
		Width:   width,
		Height:  height,
		Palette: palette,
		Pix:     pix,
	}
}

// Validate checks that Pix holds at least Height rows of at least Width
// indices.
func (m *Image) Validate() error {
	if m.Width < 0 || m.Height < 0 || len(m.Pix) < m.Height {
		return fmt.Errorf("%w: %dx%d with %d rows", ErrInvalidShape, m.Width, m.Height, len(m.Pix))
	}
	for y, row := range m.Pix[:m.Height] {
		if len(row) < m.Width {
			return fmt.Errorf("%w: row %d has %d of %d pixels", ErrInvalidShape, y, len(row), m.Width)
		}
	}
	return nil
}

// Resolve returns the palette color for a pixel index. The boolean is false
// for the transparent index 0.
func (m *Image) Resolve(index uint16) (Color, bool, error) {
	switch {
	case index == 0:
		return Color{}, false, nil
	case int(index) > len(m.Palette):
		return Color{}, false, fmt.Errorf("%w: index %d with %d colors", ErrInvalidPaletteReference, index, len(m.Palette))
	default:
		return m.Palette[index-1], true, nil
	}
}

// ColorModel implements the image.Image interface. Index 0 of the returned
// palette is transparent.
func (m *Image) ColorModel() color.Model {
	p := make(color.Palette, 0, len(m.Palette)+1)
	p = append(p, color.RGBA{})
	for _, c := range m.Palette {
		p = append(p, c)
	}
	return p
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Bounds())) || y >= len(m.Pix) || x >= len(m.Pix[y]) {
		return color.RGBA{}
	}
	c, ok, err := m.Resolve(m.Pix[y][x])
	if !ok || err != nil {
		return color.RGBA{}
	}
	return c
}
