/*
Package player loops rendered frames on a terminal.

Frames are played forwards then backwards, pausing after each full cycle.
*/
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"strings"
	"time"

	"github.com/bodgit/blockcard/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	// DefaultDelay is the time each frame is shown for
	DefaultDelay = 100 * time.Millisecond

	// DefaultPause is the time between each cycle of frames
	DefaultPause = time.Second
)

var errNoFrames = errors.New("player: no frames")

// Sequence returns the order frames are played in, 0 up to n-1 and back
// down to 0 again.
func Sequence(n int) []int {
	if n <= 0 {
		return nil
	}
	seq := make([]int, 0, 2*n-1)
	for i := 0; i < n; i++ {
		seq = append(seq, i)
	}
	for i := n - 2; i >= 0; i-- {
		seq = append(seq, i)
	}
	return seq
}

// Size returns the number of columns and rows needed to show every frame
// with an extra blank row above.
func Size(frames []string) (int, int) {
	var width, height int
	for _, f := range frames {
		rows := strings.Split(f, "\n")
		if len(rows)+1 > height {
			height = len(rows) + 1
		}
		for _, r := range rows {
			if w := runewidth.StringWidth(stripEscapes(r)); w > width {
				width = w
			}
		}
	}
	return width, height
}

// stripEscapes removes CSI sequences so the visible width can be measured
func stripEscapes(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// Player plays a sequence of frames.
type Player struct {
	Frames   []string
	Delay    time.Duration
	Pause    time.Duration
	Terminal Terminal
	Logger   *log.Logger

	width, height int
}

// New returns a Player for the given frames using the default timings.
func New(t Terminal, frames []string, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Player{
		Frames:   frames,
		Delay:    DefaultDelay,
		Pause:    DefaultPause,
		Terminal: t,
		Logger:   logger,
	}
}

func (p *Player) draw(frame string) error {
	var sb strings.Builder
	sb.WriteString(ansi.Clear)

	cols, rows, err := p.Terminal.Size()
	if err == nil && (cols < p.width || rows < p.height) {
		fmt.Fprintf(&sb, "Terminal is too small, need %dx%d but have %dx%d\n", p.width, p.height, cols, rows)
	} else {
		sb.WriteString("\n")
		sb.WriteString(frame)
		sb.WriteString("\n")
	}

	_, err = io.WriteString(p.Terminal, sb.String())
	return err
}

func (p *Player) wait(ctx context.Context, d time.Duration, resized <-chan struct{}, frame string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t := time.NewTimer(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		case <-resized:
			p.Logger.Println("Terminal resized, redrawing")
			if err := p.draw(frame); err != nil {
				return err
			}
		}
	}
}

// Run plays the frames until ctx is cancelled or writing to the terminal
// fails.
func (p *Player) Run(ctx context.Context) error {
	seq := Sequence(len(p.Frames))
	if len(seq) == 0 {
		return errNoFrames
	}
	if p.Logger == nil {
		p.Logger = log.New(ioutil.Discard, "", 0)
	}
	p.width, p.height = Size(p.Frames)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resized := p.Terminal.Resized(ctx)

	if _, err := io.WriteString(p.Terminal, ansi.HideCursor); err != nil {
		return err
	}
	defer io.WriteString(p.Terminal, ansi.Reset+ansi.ShowCursor)

	for {
		for _, i := range seq {
			if err := p.draw(p.Frames[i]); err != nil {
				return err
			}
			if err := p.wait(ctx, p.Delay, resized, p.Frames[i]); err != nil {
				return err
			}
		}
		if err := p.wait(ctx, p.Pause, resized, p.Frames[seq[len(seq)-1]]); err != nil {
			return err
		}
	}
}
