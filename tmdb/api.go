package tmdb

import (
	"context"
)

// API defines the movie catalog operations
type API interface {
	// FetchMoviesByDate lists movies released on or before maxReleaseDate, newest first
	FetchMoviesByDate(ctx context.Context, maxReleaseDate string, page int) (*MovieListResponse, error)

	// FetchMoviesByPage lists movies newest first without a date bound
	FetchMoviesByPage(ctx context.Context, page int) (*MovieListResponse, error)

	// SearchMovies searches movies by title
	SearchMovies(ctx context.Context, query string, page int) (*MovieListResponse, error)

	// FetchMovieDetail retrieves the full record of one movie
	FetchMovieDetail(ctx context.Context, id string) (*MovieDetailResponse, error)
}

var _ API = (*Client)(nil)
