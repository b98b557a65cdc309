package ansi

import (
	"strings"
	"testing"

	"github.com/bodgit/blockcard/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	red   = "\x1b[48;2;255;0;0m"
	green = "\x1b[48;2;0;255;0m"
)

func spans(s string) int {
	return strings.Count(s, "\x1b[48;")
}

func TestRender(t *testing.T) {
	m, err := frame.Decode([]byte{0x02, 0x01, 0x00, 0x01, 0xff, 0x00, 0x00, 0x80})
	require.NoError(t, err)

	s, err := Render(m)
	require.NoError(t, err)
	assert.Equal(t, red+DefaultGlyph+defaultBg+DefaultGlyph, s)
}

func TestRenderTransparent(t *testing.T) {
	// The palette is deliberately empty, any lookup would fail
	m := frame.NewImage(3, 2, nil)

	s, err := Render(m)
	require.NoError(t, err)
	assert.Equal(t, "　　　\n　　　", s)
	assert.Zero(t, spans(s))
}

func TestRenderRuns(t *testing.T) {
	palette := []frame.Color{{R: 0xff, G: 0, B: 0}, {R: 0, G: 0xff, B: 0}, {R: 0xff, G: 0, B: 0}}
	tables := []struct {
		name  string
		row   []uint16
		want  string
		spans int
	}{
		{
			"uniform",
			[]uint16{1, 1, 1, 1, 1},
			red + "xxxxx" + defaultBg,
			1,
		},
		{
			"alternating",
			[]uint16{1, 2, 1, 2},
			red + "x" + defaultBg + green + "x" + defaultBg + red + "x" + defaultBg + green + "x" + defaultBg,
			4,
		},
		{
			"duplicate palette entries share a run",
			[]uint16{1, 3, 3, 1},
			red + "xxxx" + defaultBg,
			1,
		},
		{
			"transparent splits runs",
			[]uint16{1, 1, 0, 0, 1},
			red + "xx" + defaultBg + "xx" + red + "x" + defaultBg,
			2,
		},
		{
			"leading and trailing transparency",
			[]uint16{0, 2, 2, 0},
			"x" + green + "xx" + defaultBg + "x",
			1,
		},
	}

	r := &Renderer{Mode: TrueColor, Glyph: "x"}
	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := frame.NewImage(len(table.row), 1, palette)
			copy(m.Pix[0], table.row)

			s, err := r.Render(m)
			require.NoError(t, err)
			assert.Equal(t, table.want, s)
			assert.Equal(t, table.spans, spans(s))
		})
	}
}

func TestRenderRows(t *testing.T) {
	m := frame.NewImage(2, 3, []frame.Color{{R: 0, G: 0xff, B: 0}})
	m.Pix[1][0] = 1

	s, err := (&Renderer{Glyph: "x"}).Render(m)
	require.NoError(t, err)

	rows := strings.Split(s, "\n")
	require.Len(t, rows, 3)
	assert.Equal(t, "xx", rows[0])
	assert.Equal(t, green+"x"+defaultBg+"x", rows[1])
	assert.Equal(t, "xx", rows[2])
}

func TestRenderInvalidReference(t *testing.T) {
	m := frame.NewImage(2, 1, []frame.Color{{R: 1, G: 2, B: 3}})
	m.Pix[0][1] = 2

	_, err := Render(m)
	assert.ErrorIs(t, err, frame.ErrInvalidPaletteReference)
}

func TestRenderDecodedTransparent(t *testing.T) {
	// 4x2 with three colors, every index is zero
	m, err := frame.Decode([]byte{0x04, 0x02, 0x00, 0x03, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0x00, 0x00})
	require.NoError(t, err)

	s, err := Render(m)
	require.NoError(t, err)
	assert.Zero(t, spans(s))
	assert.Equal(t, "　　　　\n　　　　", s)
}

func TestRenderInvalidShape(t *testing.T) {
	tables := []struct {
		name string
		m    *frame.Image
	}{
		{"missing row", &frame.Image{Width: 1, Height: 2, Pix: [][]uint16{{0}}}},
		{"short row", &frame.Image{Width: 3, Height: 1, Pix: [][]uint16{{0, 0}}}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, err := Render(table.m)
				assert.ErrorIs(t, err, frame.ErrInvalidShape)
			})
		})
	}
}

func TestRender256(t *testing.T) {
	m := frame.NewImage(2, 1, []frame.Color{{R: 0xff, G: 0, B: 0}})
	m.Pix[0][0], m.Pix[0][1] = 1, 1

	s, err := (&Renderer{Mode: Color256, Glyph: "x"}).Render(m)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[48;5;196mxx"+defaultBg, s)
}

func TestRender256Merge(t *testing.T) {
	// Both reds map to index 196
	m := frame.NewImage(3, 1, []frame.Color{{R: 0xff, G: 0, B: 0}, {R: 0xfe, G: 0x01, B: 0}})
	m.Pix[0] = []uint16{1, 2, 1}

	s, err := (&Renderer{Mode: Color256, Glyph: "x"}).Render(m)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[48;5;196mxxx"+defaultBg, s)

	// Still separate spans in true color
	s, err = (&Renderer{Mode: TrueColor, Glyph: "x"}).Render(m)
	require.NoError(t, err)
	assert.Equal(t, 3, spans(s))
}

func TestTo256(t *testing.T) {
	tables := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 16},
		{0xff, 0xff, 0xff, 231},
		{0xff, 0, 0, 196},
		{0, 0, 0xff, 21},
		{0x80, 0x80, 0x80, 244},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, to256(table.r, table.g, table.b), "%d, %d, %d", table.r, table.g, table.b)
	}
}

func TestStyle(t *testing.T) {
	s := Style{Fg: "#fff", Bg: "#e74c3c", Bold: true}
	require.NoError(t, s.Validate())
	assert.Equal(t, "\x1b[48;2;231;76;60m\x1b[38;2;255;255;255m\x1b[1mNAME\x1b[22m\x1b[39m\x1b[49m", s.Render(TrueColor, "NAME"))

	assert.Equal(t, "plain", Style{}.Render(TrueColor, "plain"))
	assert.Error(t, Style{Bg: "red"}.Validate())
}

func TestParseColorMode(t *testing.T) {
	mode, ok := ParseColorMode("256")
	assert.True(t, ok)
	assert.Equal(t, Color256, mode)

	mode, ok = ParseColorMode("truecolor")
	assert.True(t, ok)
	assert.Equal(t, TrueColor, mode)

	t.Setenv("COLORTERM", "truecolor")
	mode, ok = ParseColorMode("auto")
	assert.True(t, ok)
	assert.Equal(t, TrueColor, mode)

	_, ok = ParseColorMode("16")
	assert.False(t, ok)
}
