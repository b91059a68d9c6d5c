package viewmodel

import (
	"fmt"

	"github.com/s0up4200/marquee/movie"
)

// GridState is what the movie grid renders. It is one of GridLoading,
// GridSuccess or GridError.
type GridState interface {
	gridState()
}

// GridLoading means no movies are loaded yet
type GridLoading struct{}

// GridSuccess carries the accumulated movies
type GridSuccess struct {
	Movies     []movie.Movie
	TodaysDate string
}

// GridError carries a displayable failure message
type GridError struct {
	Message string
}

func (GridLoading) gridState() {}
func (GridSuccess) gridState() {}
func (GridError) gridState()   {}

// GridHandlers must provide a handler for every grid state
type GridHandlers struct {
	Loading func()
	Success func(GridSuccess)
	Error   func(GridError)
}

// MatchGrid calls the handler for s. It panics when a handler is missing
// or s is not a known grid state.
func MatchGrid(s GridState, h GridHandlers) {
	if h.Loading == nil || h.Success == nil || h.Error == nil {
		panic("viewmodel: MatchGrid requires every handler")
	}

	switch v := s.(type) {
	case GridLoading:
		h.Loading()
	case GridSuccess:
		h.Success(v)
	case GridError:
		h.Error(v)
	default:
		panic(fmt.Sprintf("viewmodel: unknown grid state %T", s))
	}
}

// SearchState is what the search screen renders. It is one of
// SearchInitial, SearchLoading, SearchRefreshing, SearchNoResults,
// SearchResult or SearchError.
type SearchState interface {
	searchState()
}

// SearchInitial means no query has been committed
type SearchInitial struct{}

// SearchLoading means the first page of a query is loading
type SearchLoading struct{}

// SearchRefreshing means page one is reloading while the previous
// results stay visible
type SearchRefreshing struct {
	Movies []movie.Movie
}

// SearchNoResults means the committed query matched nothing
type SearchNoResults struct{}

// SearchResult carries the accumulated matches
type SearchResult struct {
	Movies []movie.Movie
}

// SearchError carries a displayable failure message
type SearchError struct {
	Message string
}

func (SearchInitial) searchState()    {}
func (SearchLoading) searchState()    {}
func (SearchRefreshing) searchState() {}
func (SearchNoResults) searchState()  {}
func (SearchResult) searchState()     {}
func (SearchError) searchState()      {}

// SearchHandlers must provide a handler for every search state
type SearchHandlers struct {
	Initial    func()
	Loading    func()
	Refreshing func(SearchRefreshing)
	NoResults  func()
	Result     func(SearchResult)
	Error      func(SearchError)
}

func (h SearchHandlers) complete() bool {
	return h.Initial != nil && h.Loading != nil && h.Refreshing != nil &&
		h.NoResults != nil && h.Result != nil && h.Error != nil
}

// MatchSearch calls the handler for s. It panics when a handler is
// missing or s is not a known search state.
func MatchSearch(s SearchState, h SearchHandlers) {
	if !h.complete() {
		panic("viewmodel: MatchSearch requires every handler")
	}

	switch v := s.(type) {
	case SearchInitial:
		h.Initial()
	case SearchLoading:
		h.Loading()
	case SearchRefreshing:
		h.Refreshing(v)
	case SearchNoResults:
		h.NoResults()
	case SearchResult:
		h.Result(v)
	case SearchError:
		h.Error(v)
	default:
		panic(fmt.Sprintf("viewmodel: unknown search state %T", s))
	}
}

// DetailState is what the detail screen renders
type DetailState struct {
	Loading bool
	Movie   *movie.Movie
	Error   string
}

// HasError reports whether the last fetch failed
func (s DetailState) HasError() bool {
	return s.Error != ""
}

func cloneMovies(movies []movie.Movie) []movie.Movie {
	out := make([]movie.Movie, len(movies))
	copy(out, movies)
	return out
}
