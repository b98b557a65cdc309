package ansi

import (
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	TrueColor ColorMode = iota // 24-bit RGB
	Color256                   // xterm-256 palette
)

// ParseColorMode maps "truecolor", "256" or "auto" to a ColorMode.
func ParseColorMode(s string) (ColorMode, bool) {
	switch strings.ToLower(s) {
	case "truecolor", "24bit":
		return TrueColor, true
	case "256":
		return Color256, true
	case "", "auto":
		return DetectColorMode(), true
	}
	return TrueColor, false
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return TrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return TrueColor
	}

	return Color256
}

// Levels of the 6x6x6 color cube, indices 16-231
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func cubeIndex(v uint8) int {
	best, bestDist := 0, abs(int(v))
	for i := 1; i < len(cubeValues); i++ {
		if d := abs(int(v) - int(cubeValues[i])); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// to256 finds the nearest xterm-256 palette index, considering both the
// color cube and the 24 step grayscale ramp
func to256(r, g, b uint8) uint8 {
	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)
	cubeDist := abs(int(r)-int(cubeValues[cr])) +
		abs(int(g)-int(cubeValues[cg])) +
		abs(int(b)-int(cubeValues[cb]))

	gray := (int(r) + int(g) + int(b)) / 3
	if gray > 3 && gray < 244 {
		i := (gray - 8) / 10
		if i < 0 {
			i = 0
		} else if i > 23 {
			i = 23
		}
		level := 8 + i*10
		if abs(int(r)-level)+abs(int(g)-level)+abs(int(b)-level) < cubeDist {
			return uint8(232 + i)
		}
	}

	return uint8(16 + 36*cr + 6*cg + cb)
}

// rgb parses a #rgb or #rrggbb string
func rgb(hex string) (r, g, b uint8, err error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, err
	}
	r, g, b = c.RGB255()
	return r, g, b, nil
}
