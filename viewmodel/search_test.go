package viewmodel

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/movie"
	"github.com/s0up4200/marquee/pagination"
	"github.com/s0up4200/marquee/resource"
)

const testDebounce = 30 * time.Millisecond

func newTestSearch(t *testing.T, repo *fakeRepo, opts ...SearchOption) *Search {
	t.Helper()
	s := NewSearch(repo, zerolog.Nop(), append([]SearchOption{WithDebounce(testDebounce)}, opts...)...)
	t.Cleanup(s.Close)
	return s
}

func waitSearchState[T SearchState](t *testing.T, s *Search) T {
	t.Helper()
	require.Eventually(t, func() bool {
		_, ok := s.State().(T)
		return ok
	}, waitFor, tick, "last state %T", s.State())
	return s.State().(T)
}

// settle waits long enough for any pending debounce to fire
func settle() {
	time.Sleep(4 * testDebounce)
}

func respondAll(byPage map[int][]movie.Movie) func(c *listCall) (resource.Resource[[]movie.Movie], bool) {
	return func(c *listCall) (resource.Resource[[]movie.Movie], bool) {
		return success(byPage[c.page]), true
	}
}

func TestSearch_StartsInitial(t *testing.T) {
	s := newTestSearch(t, &fakeRepo{})

	assert.IsType(t, SearchInitial{}, s.State())
	assert.Equal(t, pagination.State{Cursor: 1, EndReached: true}, s.Pagination())
}

func TestSearch_DebounceCollapsesKeystrokes(t *testing.T) {
	repo := &fakeRepo{respond: respondAll(map[int][]movie.Movie{1: movies("1")})}
	s := newTestSearch(t, repo)

	for _, text := range []string{"b", "ba", "bat", "batman"} {
		s.OnQueryChanged(text)
	}

	waitSearchState[SearchResult](t, s)
	settle()

	calls := repo.listCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "batman", calls[0].query)
	assert.Equal(t, 1, calls[0].page)
	assert.Equal(t, "batman", s.Query())
}

func TestSearch_ImmediateLoadingBeforeDebounce(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSearch(t, repo, WithDebounce(time.Hour))

	s.OnQueryChanged("   ")
	assert.IsType(t, SearchInitial{}, s.State(), "blank input does not flip")

	s.OnQueryChanged("bat")
	assert.IsType(t, SearchLoading{}, s.State())
	assert.Empty(t, repo.listCalls(), "fetch waits for the debounce")
}

func TestSearch_ScenarioC_NoResultsThenBlank(t *testing.T) {
	repo := &fakeRepo{respond: respondAll(map[int][]movie.Movie{1: {}})}
	s := newTestSearch(t, repo)

	s.OnQueryChanged("batman")
	waitSearchState[SearchNoResults](t, s)

	s.OnQueryChanged("")
	waitSearchState[SearchInitial](t, s)

	assert.Equal(t, "", s.Query())
	assert.True(t, s.Pagination().EndReached)
	assert.Len(t, repo.listCalls(), 1)
}

func TestSearch_LoadMore(t *testing.T) {
	repo := &fakeRepo{respond: respondAll(map[int][]movie.Movie{
		1: movies("1", "2"),
		2: movies("3"),
	})}
	s := newTestSearch(t, repo)

	s.OnQueryChanged("batman")
	waitSearchState[SearchResult](t, s)

	s.LoadMore("superman")
	assert.Len(t, repo.listCalls(), 1, "only the committed query pages")

	s.LoadMore("batman")
	require.Eventually(t, func() bool { return s.Pagination().Cursor == 3 }, waitFor, tick)

	calls := repo.listCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 2, calls[1].page)
	assert.Equal(t, "batman", calls[1].query)

	result := waitSearchState[SearchResult](t, s)
	assert.Equal(t, []string{"1", "2", "3"}, ids(result.Movies))
}

func TestSearch_LoadMoreNeedsResults(t *testing.T) {
	repo := &fakeRepo{respond: respondAll(map[int][]movie.Movie{1: {}})}
	s := newTestSearch(t, repo)

	s.LoadMore("")
	s.OnQueryChanged("nothing")
	waitSearchState[SearchNoResults](t, s)

	s.LoadMore("nothing")
	assert.Len(t, repo.listCalls(), 1)
}

func TestSearch_EmptyLaterPageKeepsResults(t *testing.T) {
	repo := &fakeRepo{respond: respondAll(map[int][]movie.Movie{1: movies("1")})}
	s := newTestSearch(t, repo)

	s.OnQueryChanged("batman")
	waitSearchState[SearchResult](t, s)

	s.LoadMore("batman")
	require.Eventually(t, func() bool { return s.Pagination().EndReached }, waitFor, tick)

	result := waitSearchState[SearchResult](t, s)
	assert.Equal(t, []string{"1"}, ids(result.Movies))

	s.LoadMore("batman")
	assert.Len(t, repo.listCalls(), 2, "no fetch past the end")
}

func TestSearch_ErrorAndRetry(t *testing.T) {
	attempts := 0
	repo := &fakeRepo{respond: func(c *listCall) (resource.Resource[[]movie.Movie], bool) {
		attempts++
		if attempts == 1 {
			return resource.Error[[]movie.Movie]("something went wrong: ServiceUnavailable"), true
		}
		return success(movies("1")), true
	}}
	s := newTestSearch(t, repo)

	s.OnQueryChanged("batman")
	failed := waitSearchState[SearchError](t, s)
	assert.Equal(t, "something went wrong: ServiceUnavailable", failed.Message)
	assert.Equal(t, pagination.State{Cursor: 1}, s.Pagination())

	s.Retry()
	waitSearchState[SearchResult](t, s)

	calls := repo.listCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, 1, calls[1].page)
	assert.Equal(t, "batman", calls[1].query)
}

func TestSearch_SameQueryRestoresState(t *testing.T) {
	repo := &fakeRepo{respond: respondAll(map[int][]movie.Movie{1: {}})}
	s := newTestSearch(t, repo)

	s.OnQueryChanged("batman")
	waitSearchState[SearchNoResults](t, s)

	s.OnQueryChanged("batmanx")
	assert.IsType(t, SearchLoading{}, s.State())
	s.OnQueryChanged("batman")

	waitSearchState[SearchNoResults](t, s)
	settle()
	assert.Len(t, repo.listCalls(), 1, "unchanged query is not fetched again")
}

func TestSearch_LatestQueryWins(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestSearch(t, repo)

	s.OnQueryChanged("bat")
	first := repo.waitLists(t, 1)[0]

	s.OnQueryChanged("batman")
	second := repo.waitLists(t, 2)[1]
	assert.Equal(t, "batman", second.query)

	second.finish(success(movies("batman")))
	waitSearchState[SearchResult](t, s)

	first.finish(success(movies("bat")))
	time.Sleep(20 * time.Millisecond)

	result := waitSearchState[SearchResult](t, s)
	assert.Equal(t, []string{"batman"}, ids(result.Movies))
}

func TestSearch_NewQueryWhileShowingResultsRefreshes(t *testing.T) {
	repo := &fakeRepo{respond: func(c *listCall) (resource.Resource[[]movie.Movie], bool) {
		return success(movies("1", "2")), c.query == "batman"
	}}
	s := newTestSearch(t, repo)

	s.OnQueryChanged("batman")
	waitSearchState[SearchResult](t, s)

	s.OnQueryChanged("superman")
	assert.IsType(t, SearchResult{}, s.State(), "results stay while typing")

	refreshing := waitSearchState[SearchRefreshing](t, s)
	assert.Equal(t, []string{"1", "2"}, ids(refreshing.Movies))

	calls := repo.waitLists(t, 2)
	calls[1].finish(success(movies("9")))

	result := waitSearchState[SearchResult](t, s)
	assert.Equal(t, []string{"9"}, ids(result.Movies))
}

func TestSearch_Refresh(t *testing.T) {
	pages := 0
	repo := &fakeRepo{respond: func(c *listCall) (resource.Resource[[]movie.Movie], bool) {
		pages++
		return success(movies("1")), pages == 1
	}}
	s := newTestSearch(t, repo)

	s.Refresh()
	assert.Empty(t, repo.listCalls(), "nothing to refresh without a query")

	s.OnQueryChanged("batman")
	waitSearchState[SearchResult](t, s)

	s.Refresh()
	refreshing := waitSearchState[SearchRefreshing](t, s)
	assert.Equal(t, []string{"1"}, ids(refreshing.Movies))

	calls := repo.waitLists(t, 2)
	assert.Equal(t, 1, calls[1].page)
	calls[1].finish(success(movies("1", "2")))

	result := waitSearchState[SearchResult](t, s)
	assert.Equal(t, []string{"1", "2"}, ids(result.Movies))
	assert.Equal(t, pagination.State{Cursor: 2}, s.Pagination())
}

func TestMatchSearch(t *testing.T) {
	var got []string
	h := SearchHandlers{
		Initial:    func() { got = append(got, "initial") },
		Loading:    func() { got = append(got, "loading") },
		Refreshing: func(SearchRefreshing) { got = append(got, "refreshing") },
		NoResults:  func() { got = append(got, "none") },
		Result:     func(r SearchResult) { got = append(got, ids(r.Movies)...) },
		Error:      func(e SearchError) { got = append(got, e.Message) },
	}

	for _, state := range []SearchState{
		SearchInitial{},
		SearchLoading{},
		SearchRefreshing{},
		SearchNoResults{},
		SearchResult{Movies: movies("7")},
		SearchError{Message: "boom"},
	} {
		MatchSearch(state, h)
	}

	assert.Equal(t, []string{"initial", "loading", "refreshing", "none", "7", "boom"}, got)

	h.Refreshing = nil
	assert.Panics(t, func() { MatchSearch(SearchInitial{}, h) })
}
