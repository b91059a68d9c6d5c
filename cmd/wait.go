package cmd

import (
	"context"
	"errors"
)

var errClosed = errors.New("view closed before finishing")

// await reads states until done reports true
func await[T any](ctx context.Context, updates <-chan T, done func(T) bool) (T, error) {
	for {
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case state, ok := <-updates:
			if !ok {
				var zero T
				return zero, errClosed
			}
			if done(state) {
				return state, nil
			}
		}
	}
}
