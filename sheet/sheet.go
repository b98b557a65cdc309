/*
Package sheet implements the container used to bundle the frames of an
animation into a single file.

The file starts with the four byte magic "BCSH" and a version byte, followed
by the big-endian 16-bit delay between frames in milliseconds and the 16-bit
number of frames. Each frame follows as a big-endian 32-bit length and that
many bytes of frame data.
*/
package sheet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	// Extension is the expected file extension used when writing to disk
	Extension = ".sheet"

	version   = 1
	maxFrames = 0xffff

	// MaxDelay is the longest delay that can be stored
	MaxDelay = 0xffff * time.Millisecond
)

var magic = [4]byte{'B', 'C', 'S', 'H'}

var (
	errBadMagic   = errors.New("sheet: invalid signature")
	errBadVersion = errors.New("sheet: unsupported version")
	errNotEnough  = errors.New("sheet: not enough data")
)

type header struct {
	Magic   [4]byte
	Version uint8
	Delay   uint16
	Count   uint16
}

// Sheet is an ordered list of encoded frames. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Sheet struct {
	Delay  time.Duration
	Frames [][]byte
}

// New returns an empty sheet
func New(delay time.Duration) *Sheet {
	return &Sheet{
		Delay: delay,
	}
}

// Length returns the number of frames in the sheet
func (s *Sheet) Length() int {
	return len(s.Frames)
}

// Add appends an encoded frame
func (s *Sheet) Add(frame []byte) {
	s.Frames = append(s.Frames, frame)
}

// MarshalBinary encodes the sheet into binary form and returns the result
func (s *Sheet) MarshalBinary() ([]byte, error) {
	if len(s.Frames) > maxFrames {
		return nil, fmt.Errorf("sheet: more than %d frames", maxFrames)
	}
	if s.Delay < 0 || s.Delay > MaxDelay {
		return nil, fmt.Errorf("sheet: delay %v out of range", s.Delay)
	}

	b := new(bytes.Buffer)

	h := header{
		Magic:   magic,
		Version: version,
		Delay:   uint16(s.Delay / time.Millisecond),
		Count:   uint16(len(s.Frames)),
	}
	if err := binary.Write(b, binary.BigEndian, &h); err != nil {
		return nil, err
	}

	for _, f := range s.Frames {
		if err := binary.Write(b, binary.BigEndian, uint32(len(f))); err != nil {
			return nil, err
		}
		if _, err := b.Write(f); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = errNotEnough
	}
	return err
}

// UnmarshalBinary decodes the sheet from binary form
func (s *Sheet) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	var h header
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return errNotEnough
	}
	if h.Magic != magic {
		return errBadMagic
	}
	if h.Version != version {
		return errBadVersion
	}

	s.Delay = time.Duration(h.Delay) * time.Millisecond
	s.Frames = make([][]byte, 0, h.Count)

	for i := 0; i < int(h.Count); i++ {
		var tmp [4]byte
		if err := readFull(r, tmp[:]); err != nil {
			return err
		}
		length := binary.BigEndian.Uint32(tmp[:])
		if int64(length) > int64(r.Len()) {
			return errNotEnough
		}
		f := make([]byte, length)
		if err := readFull(r, f); err != nil {
			return err
		}
		s.Frames = append(s.Frames, f)
	}

	return nil
}

// IsSheet reports whether b starts with the sheet signature
func IsSheet(b []byte) bool {
	return len(b) >= len(magic) && bytes.Equal(b[:len(magic)], magic[:])
}
