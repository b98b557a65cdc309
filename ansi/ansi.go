/*
Package ansi renders blockcard frames as text using ANSI background colors.

Each pixel becomes one glyph. Horizontal runs of the same color share a
single color directive so a row with n runs costs n escape sequences no
matter how wide it is. Transparent pixels are written as plain glyphs.
*/
package ansi

import (
	"strconv"
	"strings"
)

const (
	csi = "\x1b["

	// Reset clears all attributes
	Reset = csi + "0m"

	// Clear clears the screen and homes the cursor
	Clear = csi + "2J" + csi + "H"

	// HideCursor and ShowCursor toggle cursor visibility
	HideCursor = csi + "?25l"
	ShowCursor = csi + "?25h"

	bgRGB     = csi + "48;2;"
	bg256     = csi + "48;5;"
	fgRGB     = csi + "38;2;"
	fg256     = csi + "38;5;"
	defaultBg = csi + "49m"
	defaultFg = csi + "39m"
	bold      = csi + "1m"
	normal    = csi + "22m"
)

func writeColor(sb *strings.Builder, mode ColorMode, rgbPrefix, prefix256 string, r, g, b uint8) {
	if mode == Color256 {
		sb.WriteString(prefix256)
		sb.WriteString(strconv.Itoa(int(to256(r, g, b))))
		sb.WriteByte('m')
		return
	}
	sb.WriteString(rgbPrefix)
	sb.WriteString(strconv.Itoa(int(r)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(g)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(b)))
	sb.WriteByte('m')
}

// Style is a foreground and background color pair with an optional bold
// attribute. Colors are #rgb or #rrggbb strings, empty means the terminal
// default.
type Style struct {
	Fg   string `yaml:"fg"`
	Bg   string `yaml:"bg"`
	Bold bool   `yaml:"bold"`
}

// Validate checks the colors of the style can be parsed.
func (s Style) Validate() error {
	for _, c := range []string{s.Fg, s.Bg} {
		if c == "" {
			continue
		}
		if _, _, _, err := rgb(c); err != nil {
			return err
		}
	}
	return nil
}

// Render wraps text in the style. Colors that fail to parse are ignored.
func (s Style) Render(mode ColorMode, text string) string {
	var sb strings.Builder
	var closers []string

	if s.Bg != "" {
		if r, g, b, err := rgb(s.Bg); err == nil {
			writeColor(&sb, mode, bgRGB, bg256, r, g, b)
			closers = append(closers, defaultBg)
		}
	}
	if s.Fg != "" {
		if r, g, b, err := rgb(s.Fg); err == nil {
			writeColor(&sb, mode, fgRGB, fg256, r, g, b)
			closers = append(closers, defaultFg)
		}
	}
	if s.Bold {
		sb.WriteString(bold)
		closers = append(closers, normal)
	}

	sb.WriteString(text)
	for i := len(closers) - 1; i >= 0; i-- {
		sb.WriteString(closers[i])
	}

	return sb.String()
}
