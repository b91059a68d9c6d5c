package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/movie"
	"github.com/s0up4200/marquee/pagination"
	"github.com/s0up4200/marquee/resource"
)

// DefaultLoadMoreThreshold is how close to the end of the grid a visible
// item must be to trigger the next page
const DefaultLoadMoreThreshold = 3

// Grid pages through the movie listing newest first
type Grid struct {
	repo      catalog.Repository
	logger    zerolog.Logger
	now       func() time.Time
	dateBound bool
	threshold int

	mu        sync.Mutex
	paginator *pagination.Paginator
	movies    []movie.Movie
	date      string
	cancel    context.CancelFunc

	state *Store[GridState]
	scope *scope
}

// GridOption configures a Grid
type GridOption func(*Grid)

// WithClock sets the clock used for the release date bound
func WithClock(now func() time.Time) GridOption {
	return func(g *Grid) {
		if now != nil {
			g.now = now
		}
	}
}

// WithDateBound selects between the date-bounded listing and the plain one
func WithDateBound(enabled bool) GridOption {
	return func(g *Grid) {
		g.dateBound = enabled
	}
}

// WithLoadMoreThreshold sets how many trailing items trigger the next page
func WithLoadMoreThreshold(n int) GridOption {
	return func(g *Grid) {
		if n > 0 {
			g.threshold = n
		}
	}
}

// NewGrid creates a grid and starts loading the first page
func NewGrid(repo catalog.Repository, logger zerolog.Logger, opts ...GridOption) *Grid {
	g := &Grid{
		repo:      repo,
		logger:    logger.With().Str("viewmodel", "grid").Logger(),
		now:       time.Now,
		dateBound: true,
		threshold: DefaultLoadMoreThreshold,
		paginator: pagination.New(),
		state:     NewStore[GridState](GridLoading{}),
		scope:     newScope(),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.date = g.today()
	g.LoadMore()
	return g
}

// State returns the current grid state
func (g *Grid) State() GridState {
	return g.state.Get()
}

// Pagination returns the current pagination state
func (g *Grid) Pagination() pagination.State {
	return g.paginator.State()
}

// Subscribe streams grid states, starting with the current one
func (g *Grid) Subscribe() (<-chan GridState, func()) {
	return g.state.Subscribe()
}

// LoadMore requests the next page unless one is in flight or the end was
// reached
func (g *Grid) LoadMore() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requestLocked()
}

// OnItemVisible loads the next page once index is within the threshold of
// the end of the accumulated list
func (g *Grid) OnItemVisible(index int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.movies) == 0 || index < len(g.movies)-g.threshold {
		return
	}
	g.requestLocked()
}

// Retry re-requests the page that failed. The cursor is kept on failure
// so this resumes where paging stopped.
func (g *Grid) Retry() {
	g.LoadMore()
}

// Refresh drops the accumulated movies and reloads from the first page
func (g *Grid) Refresh() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.paginator.Reset()
	g.movies = nil
	g.date = g.today()
	g.state.Set(GridLoading{})

	g.logger.Debug().Str("date", g.date).Msg("Refreshing movie grid")
	g.requestLocked()
}

// Close stops outstanding requests and closes subscriptions
func (g *Grid) Close() {
	g.scope.Close()
	g.state.closeAll()
}

func (g *Grid) requestLocked() {
	ticket, ok := g.paginator.RequestNextPage()
	if !ok {
		return
	}

	ctx, cancel := g.scope.child()
	g.cancel = cancel

	var ch catalog.Movies
	if g.dateBound {
		ch = g.repo.MoviesByDate(ctx, g.date, ticket.Page)
	} else {
		ch = g.repo.Movies(ctx, ticket.Page)
	}

	g.logger.Debug().Int("page", ticket.Page).Msg("Requesting movie page")

	g.scope.Go(func(context.Context) {
		defer cancel()
		drain(ctx, ch, func(r resource.Resource[[]movie.Movie]) {
			g.apply(ticket, r)
		})
	})
}

func (g *Grid) apply(ticket pagination.Ticket, r resource.Resource[[]movie.Movie]) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.paginator.Current(ticket) {
		return
	}

	resource.Match(r, resource.Handlers[[]movie.Movie]{
		Loading: func() {
			if len(g.movies) == 0 {
				g.state.Set(GridLoading{})
			}
		},
		Success: func(batch []movie.Movie) {
			g.paginator.PageSucceeded(ticket, len(batch))
			g.movies = movie.Dedupe(g.movies, batch)
			g.state.Set(GridSuccess{Movies: g.movies, TodaysDate: g.date})

			g.logger.Debug().
				Int("page", ticket.Page).
				Int("received", len(batch)).
				Int("total", len(g.movies)).
				Msg("Movie page loaded")
		},
		Error: func(message string) {
			g.paginator.PageFailed(ticket)
			g.state.Set(GridError{Message: message})

			g.logger.Debug().Int("page", ticket.Page).Str("error", message).Msg("Movie page failed")
		},
	})
}

func (g *Grid) today() string {
	return g.now().Format(time.DateOnly)
}
