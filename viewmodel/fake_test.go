package viewmodel

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/movie"
	"github.com/s0up4200/marquee/resource"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

type listCall struct {
	op    string
	date  string
	query string
	page  int
	ch    chan resource.Resource[[]movie.Movie]
}

func (c *listCall) finish(r resource.Resource[[]movie.Movie]) {
	c.ch <- r
	close(c.ch)
}

type detailCall struct {
	id string
	ch chan resource.Resource[movie.Movie]
}

func (c *detailCall) finish(r resource.Resource[movie.Movie]) {
	c.ch <- r
	close(c.ch)
}

// fakeRepo records every call. When respond is set the call finishes
// immediately with its result; otherwise the test finishes it.
type fakeRepo struct {
	mu      sync.Mutex
	lists   []*listCall
	details []*detailCall
	respond func(c *listCall) (resource.Resource[[]movie.Movie], bool)
}

var _ catalog.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) list(c *listCall) catalog.Movies {
	c.ch = make(chan resource.Resource[[]movie.Movie], 2)
	c.ch <- resource.Loading[[]movie.Movie]()

	f.mu.Lock()
	f.lists = append(f.lists, c)
	respond := f.respond
	f.mu.Unlock()

	if respond != nil {
		if r, ok := respond(c); ok {
			c.finish(r)
		}
	}
	return c.ch
}

func (f *fakeRepo) MoviesByDate(_ context.Context, date string, page int) catalog.Movies {
	return f.list(&listCall{op: "by_date", date: date, page: page})
}

func (f *fakeRepo) Movies(_ context.Context, page int) catalog.Movies {
	return f.list(&listCall{op: "by_page", page: page})
}

func (f *fakeRepo) SearchMovies(_ context.Context, query string, page int) catalog.Movies {
	return f.list(&listCall{op: "search", query: query, page: page})
}

func (f *fakeRepo) MovieDetail(_ context.Context, id string) catalog.Detail {
	c := &detailCall{id: id, ch: make(chan resource.Resource[movie.Movie], 2)}
	c.ch <- resource.Loading[movie.Movie]()

	f.mu.Lock()
	f.details = append(f.details, c)
	f.mu.Unlock()
	return c.ch
}

func (f *fakeRepo) listCalls() []*listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*listCall(nil), f.lists...)
}

func (f *fakeRepo) detailCalls() []*detailCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*detailCall(nil), f.details...)
}

func (f *fakeRepo) waitLists(t *testing.T, n int) []*listCall {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.listCalls()) >= n }, waitFor, tick)
	return f.listCalls()
}

func (f *fakeRepo) waitDetails(t *testing.T, n int) []*detailCall {
	t.Helper()
	require.Eventually(t, func() bool { return len(f.detailCalls()) >= n }, waitFor, tick)
	return f.detailCalls()
}

func movies(ids ...string) []movie.Movie {
	out := make([]movie.Movie, 0, len(ids))
	for _, id := range ids {
		out = append(out, movie.Movie{ID: id, Title: "Movie " + id})
	}
	return out
}

func ids(movies []movie.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func success(ms []movie.Movie) resource.Resource[[]movie.Movie] {
	return resource.Success(ms)
}
