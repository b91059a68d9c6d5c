package viewmodel

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/marquee/resource"
)

// scope bounds the lifetime of a view-model's goroutines
type scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	mu     sync.Mutex
	closed bool
}

func newScope() *scope {
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	return &scope{ctx: ctx, cancel: cancel, group: group}
}

// child returns a context for one request, cancelled with the scope
func (s *scope) child() (context.Context, context.CancelFunc) {
	return context.WithCancel(s.ctx)
}

// Go runs fn in the scope. It is a no-op once the scope is closed.
func (s *scope) Go(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.group.Go(func() error {
		fn(s.ctx)
		return nil
	})
}

// Close cancels every goroutine and waits for them to return
func (s *scope) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	_ = s.group.Wait()
}

// drain feeds every value of ch to apply until ch closes or ctx is done
func drain[T any](ctx context.Context, ch <-chan resource.Resource[T], apply func(resource.Resource[T])) {
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-ch:
			if !ok {
				return
			}
			apply(r)
		}
	}
}
