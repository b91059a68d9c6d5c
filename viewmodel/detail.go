package viewmodel

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/movie"
	"github.com/s0up4200/marquee/resource"
)

// Detail loads one movie record. Only the most recent LoadDetail call
// affects the state.
type Detail struct {
	repo   catalog.Repository
	logger zerolog.Logger

	mu         sync.Mutex
	generation uint64
	lastID     string
	cancel     context.CancelFunc

	state *Store[DetailState]
	scope *scope
}

// NewDetail creates an idle detail view-model
func NewDetail(repo catalog.Repository, logger zerolog.Logger) *Detail {
	return &Detail{
		repo:   repo,
		logger: logger.With().Str("viewmodel", "detail").Logger(),
		state:  NewStore(DetailState{}),
		scope:  newScope(),
	}
}

// State returns the current detail state
func (d *Detail) State() DetailState {
	return d.state.Get()
}

// Subscribe streams detail states, starting with the current one
func (d *Detail) Subscribe() (<-chan DetailState, func()) {
	return d.state.Subscribe()
}

// LoadDetail fetches id, superseding any fetch still in flight.
// An empty id is ignored.
func (d *Detail) LoadDetail(id string) {
	if id == "" {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	d.generation++
	generation := d.generation
	d.lastID = id

	ctx, cancel := d.scope.child()
	d.cancel = cancel
	ch := d.repo.MovieDetail(ctx, id)

	d.logger.Debug().Str("id", id).Msg("Loading movie detail")

	d.scope.Go(func(context.Context) {
		defer cancel()
		drain(ctx, ch, func(r resource.Resource[movie.Movie]) {
			d.apply(generation, r)
		})
	})
}

// Retry fetches the last requested id again
func (d *Detail) Retry() {
	d.mu.Lock()
	id := d.lastID
	d.mu.Unlock()

	d.LoadDetail(id)
}

// Close stops the outstanding fetch and closes subscriptions
func (d *Detail) Close() {
	d.scope.Close()
	d.state.closeAll()
}

func (d *Detail) apply(generation uint64, r resource.Resource[movie.Movie]) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if generation != d.generation {
		return
	}

	resource.Match(r, resource.Handlers[movie.Movie]{
		Loading: func() {
			d.state.Set(DetailState{Loading: true})
		},
		Success: func(m movie.Movie) {
			d.state.Set(DetailState{Movie: &m})
		},
		Error: func(message string) {
			d.logger.Debug().Str("id", d.lastID).Str("error", message).Msg("Movie detail failed")
			d.state.Set(DetailState{Error: message})
		},
	})
}
