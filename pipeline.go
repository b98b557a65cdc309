package blockcard

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/bodgit/blockcard/ansi"
	"github.com/bodgit/blockcard/frame"
)

type job struct {
	index int
	b     []byte
}

func (c *Card) frameSource(ctx context.Context, frames [][]byte) (<-chan job, <-chan error, error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i, b := range frames {
			select {
			case out <- job{i, b}:
			case <-ctx.Done():
				errc <- errors.New("render cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Card) renderWorker(ctx context.Context, in <-chan job, r *ansi.Renderer, rendered []string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			m, err := frame.Decode(j.b)
			if err != nil {
				errc <- fmt.Errorf("frame %d: %w", j.index, err)
				return
			}

			s, err := r.Render(m)
			if err != nil {
				errc <- fmt.Errorf("frame %d: %w", j.index, err)
				return
			}

			c.logger.Printf("Rendered frame %d, %dx%d with %d colors\n", j.index, m.Width, m.Height, len(m.Palette))
			rendered[j.index] = s
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Render decodes and renders the frames in parallel. The result is in the
// same order as frames. Any frame failing to decode fails the whole call.
func (c *Card) Render(ctx context.Context, frames [][]byte, r *ansi.Renderer) ([]string, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	rendered := make([]string, len(frames))

	var errcList []<-chan error

	jobs, errc, err := c.frameSource(ctx, frames)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	workers := runtime.NumCPU()
	if workers > len(frames) {
		workers = len(frames)
	}

	for i := 0; i < workers; i++ {
		errc, err := c.renderWorker(ctx, jobs, r, rendered)
		if err != nil {
			return nil, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	return rendered, nil
}
