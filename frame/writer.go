package frame

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

// DefaultColors is the palette size used when quantizing an image if no
// other size is requested.
const DefaultColors = 255

// Options are the encoding parameters.
type Options struct {
	// NumColors is the maximum number of palette entries used when an
	// image has to be quantized, between 1 and MaxColors inclusive
	NumColors int
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(m *Image) error {
	if err := m.Validate(); err != nil {
		return err
	}

	var w writer

	w.writeUint8(uint8(m.Width))
	w.writeUint8(uint8(m.Height))
	w.writeUint16(uint16(len(m.Palette)))

	for _, c := range m.Palette {
		w.writeUint8(c.R)
		w.writeUint8(c.G)
		w.writeUint8(c.B)
	}

	n := uint(BitCount(len(m.Palette)))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if _, _, err := m.Resolve(m.Pix[y][x]); err != nil {
				return err
			}
			w.writeBits(m.Pix[y][x], n)
		}
	}

	_, err := e.w.Write(w.flush())
	return err
}

func opaque(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a >= 0x8000
}

// Convert a paletted image into a frame, dropping any unused or
// transparent palette entries
func fromPaletted(pm *image.Paletted, src image.Image) *Image {
	b := pm.Bounds()
	m := NewImage(b.Dx(), b.Dy(), nil)

	indices := make(map[uint8]uint16)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !opaque(src.At(x, y)) {
				continue
			}
			i := pm.ColorIndexAt(x, y)
			index, ok := indices[i]
			if !ok {
				r, g, b, _ := pm.Palette[i].RGBA()
				m.Palette = append(m.Palette, Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
				index = uint16(len(m.Palette))
				indices[i] = index
			}
			m.Pix[y-b.Min.Y][x-b.Min.X] = index
		}
	}

	return m
}

// Encode writes the Image m to w in frame format. A *Image is written as
// is, any other image is quantized down to a palette first.
func Encode(w io.Writer, m image.Image, o *Options) error {
	b := m.Bounds()
	if b.Dx() > MaxSize || b.Dy() > MaxSize {
		return ErrTooLarge
	}

	e := encoder{w: w}

	if fm, ok := m.(*Image); ok {
		if len(fm.Palette) > MaxColors {
			return ErrTooLarge
		}
		return e.encode(fm)
	}

	numColors := DefaultColors
	if o != nil && o.NumColors != 0 {
		numColors = o.NumColors
	}
	if numColors < 1 || numColors > MaxColors {
		return errors.New("frame: invalid number of colors")
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil || len(pm.Palette) > numColors {
		// The quantizer can't produce more than 256 colors anyway
		if numColors > 256 {
			numColors = 256
		}
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, numColors), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	return e.encode(fromPaletted(pm, m))
}
