package frame

// reader pulls big-endian fields and MSB-first bit fields from a buffer.
// Byte reads ignore any bits still queued from a previous bit read.
type reader struct {
	b   []byte
	off int

	acc   uint32 // queued bits, right aligned
	nbits uint
}

func newReader(b []byte) *reader {
	return &reader{b: b}
}

func (r *reader) readUint8() (uint8, error) {
	if r.off >= len(r.b) {
		return 0, ErrOutOfBounds
	}
	v := r.b[r.off]
	r.off++
	return v, nil
}

func (r *reader) readUint16() (uint16, error) {
	if len(r.b)-r.off < 2 {
		return 0, ErrOutOfBounds
	}
	v := uint16(r.b[r.off])<<8 | uint16(r.b[r.off+1])
	r.off += 2
	return v, nil
}

// readBits returns the next n bits, n being at most 16.
func (r *reader) readBits(n uint) (uint16, error) {
	for r.nbits < n {
		if r.off >= len(r.b) {
			return 0, ErrOutOfBounds
		}
		r.acc = r.acc<<8 | uint32(r.b[r.off])
		r.off++
		r.nbits += 8
	}
	r.nbits -= n
	v := r.acc >> r.nbits & (1<<n - 1)
	r.acc &= 1<<r.nbits - 1
	return uint16(v), nil
}

// writer is the inverse of reader.
type writer struct {
	b []byte

	acc   uint32
	nbits uint
}

func (w *writer) writeUint8(v uint8) {
	w.b = append(w.b, v)
}

func (w *writer) writeUint16(v uint16) {
	w.b = append(w.b, byte(v>>8), byte(v))
}

func (w *writer) writeBits(v uint16, n uint) {
	w.acc = w.acc<<n | uint32(v)&(1<<n-1)
	w.nbits += n
	for w.nbits >= 8 {
		w.nbits -= 8
		w.b = append(w.b, byte(w.acc>>w.nbits))
	}
	w.acc &= 1<<w.nbits - 1
}

// flush pads any pending bits with zeroes to a whole byte.
func (w *writer) flush() []byte {
	if w.nbits > 0 {
		w.b = append(w.b, byte(w.acc<<(8-w.nbits)))
		w.acc, w.nbits = 0, 0
	}
	return w.b
}
