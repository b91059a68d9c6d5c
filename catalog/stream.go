package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/resource"
)

// stream runs call in its own goroutine. Loading is buffered before the
// channel is returned; the terminal value follows and the channel closes.
func stream[T any](ctx context.Context, log zerolog.Logger, call func(context.Context) (T, error)) <-chan resource.Resource[T] {
	out := make(chan resource.Resource[T], 2)
	out <- resource.Loading[T]()

	go func() {
		defer close(out)
		out <- run(ctx, log, call)
	}()

	return out
}

func run[T any](ctx context.Context, log zerolog.Logger, call func(context.Context) (T, error)) (res resource.Resource[T]) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("catalog call panicked")
			res = resource.Error[T](messageOf(fmt.Errorf("%v", r)))
		}
	}()

	data, err := call(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("catalog call failed")
		return resource.Error[T](messageOf(err))
	}

	log.Trace().Msg("catalog call succeeded")
	return resource.Success(data)
}

func messageOf(err error) string {
	if err == nil || err.Error() == "" {
		return DefaultErrorMessage
	}
	return err.Error()
}
