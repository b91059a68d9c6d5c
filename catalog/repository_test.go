package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/movie"
	"github.com/s0up4200/marquee/resource"
	"github.com/s0up4200/marquee/tmdb"
)

type fakeAPI struct {
	mu     sync.Mutex
	calls  []string
	list   *tmdb.MovieListResponse
	detail *tmdb.MovieDetailResponse
	err    error
	panic  any
}

func (f *fakeAPI) record(call string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.panic != nil {
		panic(f.panic)
	}
	return f.err
}

func (f *fakeAPI) FetchMoviesByDate(_ context.Context, date string, page int) (*tmdb.MovieListResponse, error) {
	if err := f.record("by_date"); err != nil {
		return nil, err
	}
	return f.list, nil
}

func (f *fakeAPI) FetchMoviesByPage(_ context.Context, page int) (*tmdb.MovieListResponse, error) {
	if err := f.record("by_page"); err != nil {
		return nil, err
	}
	return f.list, nil
}

func (f *fakeAPI) SearchMovies(_ context.Context, query string, page int) (*tmdb.MovieListResponse, error) {
	if err := f.record("search"); err != nil {
		return nil, err
	}
	return f.list, nil
}

func (f *fakeAPI) FetchMovieDetail(_ context.Context, id string) (*tmdb.MovieDetailResponse, error) {
	if err := f.record("detail"); err != nil {
		return nil, err
	}
	return f.detail, nil
}

func ptr[T any](v T) *T { return &v }

func collect[T any](t *testing.T, ch <-chan resource.Resource[T]) []resource.Resource[T] {
	t.Helper()

	var out []resource.Resource[T]
	timeout := time.After(2 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-timeout:
			t.Fatal("stream did not close")
			return out
		}
	}
}

func listOf(summaries ...tmdb.MovieSummary) *tmdb.MovieListResponse {
	return &tmdb.MovieListResponse{Page: 1, Results: summaries}
}

func TestStream_LoadingIsBuffered(t *testing.T) {
	api := &fakeAPI{list: listOf()}
	ch := New(api, zerolog.Nop()).Movies(context.Background(), 1)

	select {
	case r := <-ch:
		assert.Equal(t, resource.KindLoading, r.Kind())
	default:
		t.Fatal("Loading must be available as soon as the stream is returned")
	}
}

func TestMoviesByDate(t *testing.T) {
	api := &fakeAPI{list: listOf(
		tmdb.MovieSummary{ID: ptr(int64(1)), Title: "Batman", PosterPath: ptr("/b.jpg")},
	)}
	repo := New(api, zerolog.Nop())

	got := collect(t, repo.MoviesByDate(context.Background(), "2024-01-01", 1))
	require.Len(t, got, 2)
	assert.Equal(t, resource.KindLoading, got[0].Kind())
	require.Equal(t, resource.KindSuccess, got[1].Kind())

	movies := got[1].Data()
	require.Len(t, movies, 1)
	assert.Equal(t, "1", movies[0].ID)
	assert.Equal(t, "Batman", movies[0].Title)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/b.jpg", movies[0].PosterURL)
	assert.Equal(t, []string{"by_date"}, api.calls)
}

func TestMovies_EmptyPageIsEmptySuccess(t *testing.T) {
	api := &fakeAPI{list: listOf()}

	got := collect(t, New(api, zerolog.Nop()).Movies(context.Background(), 3))
	require.Len(t, got, 2)
	require.Equal(t, resource.KindSuccess, got[1].Kind())
	assert.NotNil(t, got[1].Data())
	assert.Empty(t, got[1].Data())
}

func TestSearchMovies_Filter(t *testing.T) {
	api := &fakeAPI{list: listOf(
		tmdb.MovieSummary{ID: ptr(int64(1)), Title: "Batman", PosterPath: ptr("/b.jpg")},
		tmdb.MovieSummary{ID: ptr(int64(2)), Title: "", PosterPath: ptr("/x.jpg")},
		tmdb.MovieSummary{ID: ptr(int64(3)), Title: "No Poster"},
	)}

	f, err := filter.Compile(filter.DefaultExpression)
	require.NoError(t, err)

	repo := New(api, zerolog.Nop(), WithFilter(f), WithImageBaseURL("https://img.example/"))
	got := collect(t, repo.SearchMovies(context.Background(), "bat", 1))
	require.Len(t, got, 2)

	movies := got[1].Data()
	require.Len(t, movies, 1)
	assert.Equal(t, "1", movies[0].ID)
	assert.Equal(t, "https://img.example/b.jpg", movies[0].PosterURL)
}

func TestMovieDetail(t *testing.T) {
	api := &fakeAPI{detail: &tmdb.MovieDetailResponse{
		ID:            ptr(int64(42)),
		Title:         "Heat",
		OriginalTitle: ptr("Heat"),
		Runtime:       ptr(170),
		Genres:        []tmdb.GenreDTO{{ID: ptr(80), Name: "Crime"}},
	}}

	got := collect(t, New(api, zerolog.Nop()).MovieDetail(context.Background(), "42"))
	require.Len(t, got, 2)
	require.Equal(t, resource.KindSuccess, got[1].Kind())

	m := got[1].Data()
	assert.Equal(t, "42", m.ID)
	assert.Equal(t, 170, m.RuntimeMinutes)
	assert.Equal(t, []movie.Genre{{ID: 80, Name: "Crime"}}, m.Genres)
}

func TestStream_Errors(t *testing.T) {
	tests := []struct {
		name    string
		api     *fakeAPI
		message string
	}{
		{
			name:    "typed client error",
			api:     &fakeAPI{err: &tmdb.Error{Kind: tmdb.KindClientError, StatusCode: 404}},
			message: "something went wrong: ClientError (status 404)",
		},
		{
			name:    "plain error",
			api:     &fakeAPI{err: errors.New("boom")},
			message: "boom",
		},
		{
			name:    "empty message",
			api:     &fakeAPI{err: errors.New("")},
			message: DefaultErrorMessage,
		},
		{
			name:    "panic",
			api:     &fakeAPI{panic: "exploded"},
			message: "exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, New(tt.api, zerolog.Nop()).Movies(context.Background(), 1))
			require.Len(t, got, 2, "exactly one terminal value after Loading")
			assert.Equal(t, resource.KindLoading, got[0].Kind())
			assert.Equal(t, resource.KindError, got[1].Kind())
			assert.Equal(t, tt.message, got[1].Message())
		})
	}
}

func TestMovieDetail_NilResponse(t *testing.T) {
	got := collect(t, New(&fakeAPI{}, zerolog.Nop()).MovieDetail(context.Background(), "7"))
	require.Len(t, got, 2)
	assert.Equal(t, resource.KindError, got[1].Kind())
	assert.Contains(t, got[1].Message(), "7")
}

func TestCatalog_OverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/404":
			w.WriteHeader(http.StatusNotFound)
		case "/movie/500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"Batman","poster_path":"/b.jpg"}]}`))
		}
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.NewClient(server.URL, "token", zerolog.Nop())
	require.NoError(t, err)
	repo := New(client, zerolog.Nop())

	got := collect(t, repo.Movies(context.Background(), 1))
	require.Len(t, got, 2)
	require.Equal(t, resource.KindSuccess, got[1].Kind())
	assert.Equal(t, "Batman", got[1].Data()[0].Title)

	got404 := collect(t, repo.MovieDetail(context.Background(), "404"))
	require.Len(t, got404, 2)
	assert.Equal(t, resource.KindError, got404[1].Kind())
	assert.Equal(t, "something went wrong: ClientError (status 404)", got404[1].Message())

	got500 := collect(t, repo.MovieDetail(context.Background(), "500"))
	require.Len(t, got500, 2)
	assert.Equal(t, "something went wrong: ServerError (status 500)", got500[1].Message())
}
