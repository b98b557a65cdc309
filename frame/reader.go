package frame

import "fmt"

type decoder struct {
	r *reader

	width, height int
	palette       []Color

	image *Image
}

func (d *decoder) readHeader() error {
	width, err := d.r.readUint8()
	if err != nil {
		return err
	}
	height, err := d.r.readUint8()
	if err != nil {
		return err
	}
	d.width, d.height = int(width), int(height)
	return nil
}

func (d *decoder) readPalette() error {
	n, err := d.r.readUint16()
	if err != nil {
		return err
	}
	d.palette = make([]Color, n)
	for i := range d.palette {
		var tmp [entrySize]uint8
		for j := range tmp {
			if tmp[j], err = d.r.readUint8(); err != nil {
				return err
			}
		}
		d.palette[i] = Color{tmp[0], tmp[1], tmp[2]}
	}
	return nil
}

func (d *decoder) readPixels() error {
	d.image = NewImage(d.width, d.height, d.palette)

	n := uint(BitCount(len(d.palette)))
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			v, err := d.r.readBits(n)
			if err != nil {
				return err
			}
			// Only reachable when colors isn't one less than a power of two
			if int(v) > len(d.palette) {
				return fmt.Errorf("%w: pixel (%d, %d) is %d with %d colors", ErrInvalidPaletteReference, x, y, v, len(d.palette))
			}
			d.image.Pix[y][x] = v
		}
	}
	return nil
}

func (d *decoder) decode(b []byte, configOnly bool) error {
	d.r = newReader(b)

	if err := d.readHeader(); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	if err := d.readPalette(); err != nil {
		return fmt.Errorf("reading palette: %w", err)
	}

	if configOnly {
		return nil
	}

	if err := d.readPixels(); err != nil {
		d.image = nil
		return fmt.Errorf("reading pixels: %w", err)
	}

	return nil
}

// Decode reads a frame from b. Any bytes following the pixel data are
// ignored.
func Decode(b []byte) (*Image, error) {
	var d decoder
	if err := d.decode(b, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the dimensions and palette of a frame without
// decoding the pixels.
func DecodeConfig(b []byte) (Config, error) {
	var d decoder
	if err := d.decode(b, true); err != nil {
		return Config{}, err
	}
	return Config{
		Width:   d.width,
		Height:  d.height,
		Palette: d.palette,
	}, nil
}
