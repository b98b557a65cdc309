package ansi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bodgit/blockcard/frame"
)

// DefaultGlyph is an ideographic space which is two cells wide, making each
// pixel roughly square.
const DefaultGlyph = "　"

// Renderer converts decoded frames into text.
type Renderer struct {
	Mode  ColorMode
	Glyph string
}

// NewRenderer returns a Renderer using the default glyph.
func NewRenderer(mode ColorMode) *Renderer {
	return &Renderer{
		Mode:  mode,
		Glyph: DefaultGlyph,
	}
}

func (r *Renderer) glyph() string {
	if r.Glyph == "" {
		return DefaultGlyph
	}
	return r.Glyph
}

// run is a pending span of pixels. An empty key is transparent.
type run struct {
	key   string
	color frame.Color
	count int
}

// key identifies the background a color is drawn with. Colors mapping to
// the same xterm-256 index share a key in that mode.
func (r *Renderer) key(c frame.Color) string {
	if r.Mode == Color256 {
		return strconv.Itoa(int(to256(c.R, c.G, c.B)))
	}
	return c.Hex()
}

func (r *Renderer) flush(sb *strings.Builder, pending *run) {
	if pending.count == 0 {
		return
	}
	if pending.key != "" {
		c := pending.color
		writeColor(sb, r.Mode, bgRGB, bg256, c.R, c.G, c.B)
	}
	sb.WriteString(strings.Repeat(r.glyph(), pending.count))
	if pending.key != "" {
		sb.WriteString(defaultBg)
	}
	pending.count = 0
}

func (r *Renderer) renderRow(sb *strings.Builder, m *frame.Image, row []uint16) error {
	var pending run
	for _, index := range row {
		c, ok, err := m.Resolve(index)
		if err != nil {
			return err
		}

		var key string
		if ok {
			key = r.key(c)
		}

		if pending.count > 0 && key != pending.key {
			r.flush(sb, &pending)
		}
		pending.key, pending.color = key, c
		pending.count++
	}
	r.flush(sb, &pending)
	return nil
}

// Render returns m as one line of text per pixel row, without a trailing
// newline.
func (r *Renderer) Render(m *frame.Image) (string, error) {
	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("rendering frame: %w", err)
	}

	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		if err := r.renderRow(&sb, m, m.Pix[y][:m.Width]); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// Render converts m to text with a true color Renderer.
func Render(m *frame.Image) (string, error) {
	return NewRenderer(TrueColor).Render(m)
}
