package player

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

// Terminal is where frames are drawn.
type Terminal interface {
	io.Writer

	// Size returns the number of columns and rows
	Size() (int, int, error)

	// Resized delivers a value whenever the terminal changes size until
	// ctx is done
	Resized(ctx context.Context) <-chan struct{}
}

// StdTerminal is a Terminal backed by an open file, normally os.Stdout.
type StdTerminal struct {
	*os.File
}

// NewStdTerminal returns a StdTerminal for os.Stdout.
func NewStdTerminal() *StdTerminal {
	return &StdTerminal{os.Stdout}
}

// IsTerminal reports whether the file is a terminal.
func (t *StdTerminal) IsTerminal() bool {
	return term.IsTerminal(int(t.Fd()))
}

// Size implements the Terminal interface.
func (t *StdTerminal) Size() (int, int, error) {
	return term.GetSize(int(t.Fd()))
}

// Resized implements the Terminal interface.
func (t *StdTerminal) Resized(ctx context.Context) <-chan struct{} {
	return watchResize(ctx)
}
