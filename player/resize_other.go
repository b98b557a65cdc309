//go:build !unix

package player

import "context"

// No resize notifications, the size is still checked before every frame
func watchResize(ctx context.Context) <-chan struct{} {
	return make(chan struct{})
}
