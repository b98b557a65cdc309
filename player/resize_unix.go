//go:build unix

package player

import (
	"context"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchResize turns SIGWINCH into a channel. Events that aren't consumed in
// time are coalesced.
func watchResize(ctx context.Context) <-chan struct{} {
	sigCh := make(chan os.Signal, 1)
	out := make(chan struct{}, 1)

	signal.Notify(sigCh, unix.SIGWINCH)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out
}
