package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	s := New(100 * time.Millisecond)
	s.Add([]byte{0x02, 0x01, 0x00, 0x01, 0xff, 0x00, 0x00, 0x80})
	s.Add([]byte{0x01, 0x01, 0x00, 0x00})
	assert.Equal(t, 2, s.Length())

	b, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{'B', 'C', 'S', 'H', 0x01, 0x00, 0x64, 0x00, 0x02}, b[:9])
	assert.Len(t, b, 9+4+8+4+4)
	assert.True(t, IsSheet(b))

	got := new(Sheet)
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, s, got)
}

func TestMarshalErrors(t *testing.T) {
	_, err := New(-time.Millisecond).MarshalBinary()
	assert.Error(t, err)

	_, err = New(MaxDelay + time.Millisecond).MarshalBinary()
	assert.Error(t, err)

	s := New(0)
	s.Frames = make([][]byte, maxFrames+1)
	_, err = s.MarshalBinary()
	assert.Error(t, err)
}

func TestUnmarshalErrors(t *testing.T) {
	tables := []struct {
		name string
		b    []byte
		err  error
	}{
		{"empty", nil, errNotEnough},
		{"short header", []byte{'B', 'C', 'S', 'H', 0x01}, errNotEnough},
		{"bad magic", []byte{'B', 'C', 'S', 'X', 0x01, 0x00, 0x00, 0x00, 0x00}, errBadMagic},
		{"bad version", []byte{'B', 'C', 'S', 'H', 0x02, 0x00, 0x00, 0x00, 0x00}, errBadVersion},
		{"missing frame", []byte{'B', 'C', 'S', 'H', 0x01, 0x00, 0x00, 0x00, 0x01}, errNotEnough},
		{"short frame", []byte{'B', 'C', 'S', 'H', 0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02, 0xff}, errNotEnough},
		{"huge frame", []byte{'B', 'C', 'S', 'H', 0x01, 0x00, 0x00, 0x00, 0x01, 0xff, 0xff, 0xff, 0xff}, errNotEnough},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.err, new(Sheet).UnmarshalBinary(table.b))
		})
	}

	assert.False(t, IsSheet([]byte{0x02, 0x01, 0x00, 0x00}))
}
