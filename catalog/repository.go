package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/movie"
	"github.com/s0up4200/marquee/resource"
	"github.com/s0up4200/marquee/tmdb"
)

// DefaultErrorMessage is emitted when a failure carries no message
const DefaultErrorMessage = "Unexpected Error"

// Movies is the stream of one listing page
type Movies = <-chan resource.Resource[[]movie.Movie]

// Detail is the stream of one movie record
type Detail = <-chan resource.Resource[movie.Movie]

// Repository exposes catalog reads as result streams
type Repository interface {
	// MoviesByDate lists one page of movies released on or before date
	MoviesByDate(ctx context.Context, date string, page int) Movies

	// Movies lists one page of movies without a date bound
	Movies(ctx context.Context, page int) Movies

	// SearchMovies lists one page of title matches for query
	SearchMovies(ctx context.Context, query string, page int) Movies

	// MovieDetail fetches the full record of one movie
	MovieDetail(ctx context.Context, id string) Detail
}

// Catalog implements Repository on top of a tmdb.API
type Catalog struct {
	api          tmdb.API
	filter       filter.Filter
	imageBaseURL string
	logger       zerolog.Logger
}

var _ Repository = (*Catalog)(nil)

// Option configures a Catalog
type Option func(*Catalog)

// WithFilter drops listing and search results that do not match f.
// A nil filter keeps every result.
func WithFilter(f filter.Filter) Option {
	return func(c *Catalog) {
		c.filter = f
	}
}

// WithImageBaseURL sets the prefix used to build poster URLs
func WithImageBaseURL(base string) Option {
	return func(c *Catalog) {
		if base != "" {
			c.imageBaseURL = base
		}
	}
}

// New creates a catalog over api
func New(api tmdb.API, logger zerolog.Logger, opts ...Option) *Catalog {
	c := &Catalog{
		api:          api,
		imageBaseURL: tmdb.DefaultImageBaseURL,
		logger:       logger.With().Str("component", "catalog").Logger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MoviesByDate streams one page of movies released on or before date
func (c *Catalog) MoviesByDate(ctx context.Context, date string, page int) Movies {
	log := c.logger.With().Str("op", "movies_by_date").Str("date", date).Int("page", page).Logger()
	return stream(ctx, log, func(ctx context.Context) ([]movie.Movie, error) {
		resp, err := c.api.FetchMoviesByDate(ctx, date, page)
		if err != nil {
			return nil, err
		}
		return c.shape(resp), nil
	})
}

// Movies streams one page of the undated listing
func (c *Catalog) Movies(ctx context.Context, page int) Movies {
	log := c.logger.With().Str("op", "movies").Int("page", page).Logger()
	return stream(ctx, log, func(ctx context.Context) ([]movie.Movie, error) {
		resp, err := c.api.FetchMoviesByPage(ctx, page)
		if err != nil {
			return nil, err
		}
		return c.shape(resp), nil
	})
}

// SearchMovies streams one page of title matches for query
func (c *Catalog) SearchMovies(ctx context.Context, query string, page int) Movies {
	log := c.logger.With().Str("op", "search").Str("query", query).Int("page", page).Logger()
	return stream(ctx, log, func(ctx context.Context) ([]movie.Movie, error) {
		resp, err := c.api.SearchMovies(ctx, query, page)
		if err != nil {
			return nil, err
		}
		return c.shape(resp), nil
	})
}

// MovieDetail streams the full record of movie id
func (c *Catalog) MovieDetail(ctx context.Context, id string) Detail {
	log := c.logger.With().Str("op", "detail").Str("id", id).Logger()
	return stream(ctx, log, func(ctx context.Context) (movie.Movie, error) {
		resp, err := c.api.FetchMovieDetail(ctx, id)
		if err != nil {
			return movie.Movie{}, err
		}
		if resp == nil {
			return movie.Movie{}, fmt.Errorf("empty detail response for movie %s", id)
		}
		return resp.ToMovie(c.imageBaseURL), nil
	})
}

// shape maps a listing page to movies and applies the configured filter.
// The result is never nil so an empty page stays distinguishable from an error.
func (c *Catalog) shape(resp *tmdb.MovieListResponse) []movie.Movie {
	if resp == nil {
		return []movie.Movie{}
	}
	movies := filter.Apply(c.filter, resp.ToMovies(c.imageBaseURL))
	if movies == nil {
		return []movie.Movie{}
	}
	return movies
}
