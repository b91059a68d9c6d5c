package viewmodel

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/movie"
	"github.com/s0up4200/marquee/pagination"
	"github.com/s0up4200/marquee/resource"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// query is committed
const DefaultDebounce = time.Second

// Search runs debounced title searches
type Search struct {
	repo     catalog.Repository
	logger   zerolog.Logger
	debounce time.Duration
	input    chan string

	mu        sync.Mutex
	paginator *pagination.Paginator
	query     string
	movies    []movie.Movie
	beforeKey SearchState
	cancel    context.CancelFunc

	state *Store[SearchState]
	scope *scope
}

// SearchOption configures a Search
type SearchOption func(*Search)

// WithDebounce sets the quiet period before a query is committed
func WithDebounce(d time.Duration) SearchOption {
	return func(s *Search) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewSearch creates a search in the Initial state
func NewSearch(repo catalog.Repository, logger zerolog.Logger, opts ...SearchOption) *Search {
	s := &Search{
		repo:      repo,
		logger:    logger.With().Str("viewmodel", "search").Logger(),
		debounce:  DefaultDebounce,
		input:     make(chan string, 16),
		paginator: pagination.New(),
		state:     NewStore[SearchState](SearchInitial{}),
		scope:     newScope(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.paginator.Block()
	s.scope.Go(s.debounceLoop)
	return s
}

// State returns the current search state
func (s *Search) State() SearchState {
	return s.state.Get()
}

// Pagination returns the current pagination state
func (s *Search) Pagination() pagination.State {
	return s.paginator.State()
}

// Query returns the committed query
func (s *Search) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Subscribe streams search states, starting with the current one
func (s *Search) Subscribe() (<-chan SearchState, func()) {
	return s.state.Subscribe()
}

// OnQueryChanged feeds raw input. A non-blank input shows Loading right
// away unless results are already on screen; the fetch itself waits for
// the debounce.
func (s *Search) OnQueryChanged(text string) {
	s.mu.Lock()
	if strings.TrimSpace(text) != "" {
		switch current := s.state.Get().(type) {
		case SearchInitial, SearchNoResults, SearchError:
			s.beforeKey = current
			s.state.Set(SearchLoading{})
		}
	}
	s.mu.Unlock()

	select {
	case s.input <- text:
	case <-s.scope.ctx.Done():
	}
}

// LoadMore requests the next page of query. It does nothing unless query
// is the committed one and results are already shown.
func (s *Search) LoadMore(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query != s.query {
		return
	}
	if result, ok := s.state.Get().(SearchResult); !ok || len(result.Movies) == 0 {
		return
	}
	s.requestLocked()
}

// Retry re-requests the page that failed for the committed query
func (s *Search) Retry() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Get().(SearchError); !ok || s.blankLocked() {
		return
	}
	s.requestLocked()
}

// Refresh reloads the first page of the committed query, keeping the
// current results visible while it loads
func (s *Search) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.blankLocked() {
		return
	}
	s.cancelLocked()
	s.paginator.Reset()
	s.requestLocked()
}

// Close stops the debounce loop and outstanding requests and closes
// subscriptions
func (s *Search) Close() {
	s.scope.Close()
	s.state.closeAll()
}

func (s *Search) debounceLoop(ctx context.Context) {
	var pending string
	var quiet <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-s.input:
			pending = text
			quiet = time.After(s.debounce)
		case <-quiet:
			quiet = nil
			s.commit(pending)
		}
	}
}

func (s *Search) commit(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.beforeKey
	s.beforeKey = nil

	if strings.TrimSpace(query) == "" {
		s.cancelLocked()
		s.query = ""
		s.movies = nil
		s.paginator.Block()
		s.state.Set(SearchInitial{})
		return
	}

	if query == s.query {
		if _, loading := s.state.Get().(SearchLoading); loading && before != nil {
			s.state.Set(before)
		}
		return
	}

	s.logger.Debug().Str("query", query).Msg("Committing search query")

	s.cancelLocked()
	s.query = query
	s.movies = nil
	s.paginator.Reset()
	s.requestLocked()
}

func (s *Search) blankLocked() bool {
	return strings.TrimSpace(s.query) == ""
}

func (s *Search) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Search) requestLocked() {
	ticket, ok := s.paginator.RequestNextPage()
	if !ok {
		return
	}

	ctx, cancel := s.scope.child()
	s.cancel = cancel
	ch := s.repo.SearchMovies(ctx, s.query, ticket.Page)

	s.scope.Go(func(context.Context) {
		defer cancel()
		drain(ctx, ch, func(r resource.Resource[[]movie.Movie]) {
			s.apply(ticket, r)
		})
	})
}

func (s *Search) apply(ticket pagination.Ticket, r resource.Resource[[]movie.Movie]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.paginator.Current(ticket) {
		return
	}

	firstPage := ticket.Page == pagination.FirstPage

	resource.Match(r, resource.Handlers[[]movie.Movie]{
		Loading: func() {
			switch current := s.state.Get().(type) {
			case SearchResult:
				if firstPage {
					s.state.Set(SearchRefreshing{Movies: current.Movies})
				}
			case SearchRefreshing:
			case SearchError:
				if firstPage || len(s.movies) == 0 {
					s.state.Set(SearchLoading{})
				} else {
					s.state.Set(SearchResult{Movies: cloneMovies(s.movies)})
				}
			default:
				s.state.Set(SearchLoading{})
			}
		},
		Success: func(data []movie.Movie) {
			s.paginator.PageSucceeded(ticket, len(data))

			if firstPage {
				s.movies = cloneMovies(data)
			} else {
				s.movies = append(s.movies, data...)
			}

			if len(s.movies) == 0 {
				s.state.Set(SearchNoResults{})
			} else {
				s.state.Set(SearchResult{Movies: cloneMovies(s.movies)})
			}

			s.logger.Debug().
				Str("query", s.query).
				Int("page", ticket.Page).
				Int("received", len(data)).
				Msg("Search page loaded")
		},
		Error: func(message string) {
			s.paginator.PageFailed(ticket)
			s.state.Set(SearchError{Message: message})

			s.logger.Debug().Str("query", s.query).Int("page", ticket.Page).Str("error", message).Msg("Search failed")
		},
	})
}
