package player

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bodgit/blockcard/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTerminal struct {
	cols, rows int
	sizeErr    error
	resized    chan struct{}

	writes []string
	onDraw func(n int)
	draws  int
}

func (t *fakeTerminal) Write(b []byte) (int, error) {
	s := string(b)
	t.writes = append(t.writes, s)
	if strings.HasPrefix(s, ansi.Clear) {
		t.draws++
		if t.onDraw != nil {
			t.onDraw(t.draws)
		}
	}
	return len(b), nil
}

func (t *fakeTerminal) Size() (int, int, error) {
	return t.cols, t.rows, t.sizeErr
}

func (t *fakeTerminal) Resized(ctx context.Context) <-chan struct{} {
	return t.resized
}

func (t *fakeTerminal) frames() []string {
	var frames []string
	for _, w := range t.writes {
		if strings.HasPrefix(w, ansi.Clear) {
			frames = append(frames, strings.TrimPrefix(w, ansi.Clear))
		}
	}
	return frames
}

func TestSequence(t *testing.T) {
	assert.Nil(t, Sequence(0))
	assert.Equal(t, []int{0}, Sequence(1))
	assert.Equal(t, []int{0, 1, 0}, Sequence(2))
	assert.Equal(t, []int{0, 1, 2, 3, 2, 1, 0}, Sequence(4))
}

func TestSize(t *testing.T) {
	w, h := Size([]string{"\x1b[48;2;1;2;3m　　\x1b[49m　\nab", "abcdefg"})
	assert.Equal(t, 7, w)
	assert.Equal(t, 3, h)
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	term := &fakeTerminal{cols: 80, rows: 24}
	term.onDraw = func(n int) {
		if n == 7 {
			cancel()
		}
	}

	p := New(term, []string{"A", "B", "C"}, nil)
	p.Delay, p.Pause = time.Millisecond, time.Millisecond

	err := p.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	assert.Equal(t, []string{"\nA\n", "\nB\n", "\nC\n", "\nB\n", "\nA\n", "\nA\n", "\nB\n"}, term.frames())
	require.NotEmpty(t, term.writes)
	assert.Equal(t, ansi.HideCursor, term.writes[0])
	assert.Equal(t, ansi.Reset+ansi.ShowCursor, term.writes[len(term.writes)-1])
}

func TestRunTooSmall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	term := &fakeTerminal{cols: 3, rows: 24}
	term.onDraw = func(int) { cancel() }

	p := New(term, []string{"ABCDE"}, nil)
	assert.Error(t, p.Run(ctx))

	frames := term.frames()
	require.Len(t, frames, 1)
	assert.Equal(t, "Terminal is too small, need 5x2 but have 3x24\n", frames[0])
}

func TestRunNoSize(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Not a terminal, draw regardless
	term := &fakeTerminal{sizeErr: errors.New("not a terminal")}
	term.onDraw = func(int) { cancel() }

	p := New(term, []string{"ABCDE"}, nil)
	assert.Error(t, p.Run(ctx))
	assert.Equal(t, []string{"\nABCDE\n"}, term.frames())
}

func TestRunResize(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	term := &fakeTerminal{cols: 80, rows: 24, resized: make(chan struct{}, 1)}
	term.onDraw = func(n int) {
		switch n {
		case 1:
			term.resized <- struct{}{}
		case 2:
			cancel()
		}
	}

	p := New(term, []string{"A", "B"}, nil)
	p.Delay = time.Hour

	assert.Error(t, p.Run(ctx))
	assert.Equal(t, []string{"\nA\n", "\nA\n"}, term.frames())
}

func TestRunNoFrames(t *testing.T) {
	assert.Equal(t, errNoFrames, New(&fakeTerminal{}, nil, nil).Run(context.Background()))
}
