package tmdb

import (
	"strconv"
	"strings"

	"github.com/s0up4200/marquee/movie"
)

// DefaultImageBaseURL is the poster prefix for the w500 size
const DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500/"

// PosterURL joins the image base and a poster path. A missing or empty path
// yields "".
func PosterURL(imageBaseURL string, posterPath *string) string {
	if posterPath == nil || *posterPath == "" {
		return ""
	}
	if imageBaseURL == "" {
		imageBaseURL = DefaultImageBaseURL
	}
	return strings.TrimRight(imageBaseURL, "/") + "/" + strings.TrimLeft(*posterPath, "/")
}

func voteAverage(v *float64) float64 {
	if v == nil {
		return movie.DefaultVoteAverage
	}
	return *v
}

func formatID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

// ToMovie converts a list entry to a Movie
func (s MovieSummary) ToMovie(imageBaseURL string) movie.Movie {
	return movie.Movie{
		ID:              formatID(s.ID),
		PosterURL:       PosterURL(imageBaseURL, s.PosterPath),
		Title:           s.Title,
		Overview:        s.Overview,
		Genres:          []movie.Genre{},
		RuntimeMinutes:  movie.UnknownRuntime,
		SpokenLanguages: []movie.SpokenLanguage{},
		VoteAverage:     voteAverage(s.VoteAverage),
		ReleaseDate:     s.ReleaseDate,
	}
}

// ToMovies converts every entry of a list response
func (r *MovieListResponse) ToMovies(imageBaseURL string) []movie.Movie {
	movies := make([]movie.Movie, 0, len(r.Results))
	for _, s := range r.Results {
		movies = append(movies, s.ToMovie(imageBaseURL))
	}
	return movies
}

// ToMovie converts a detail response to a Movie
func (r *MovieDetailResponse) ToMovie(imageBaseURL string) movie.Movie {
	m := movie.Movie{
		ID:              formatID(r.ID),
		PosterURL:       PosterURL(imageBaseURL, r.PosterPath),
		Title:           r.Title,
		Tagline:         r.Tagline,
		Overview:        r.Overview,
		Genres:          make([]movie.Genre, 0, len(r.Genres)),
		RuntimeMinutes:  movie.UnknownRuntime,
		SpokenLanguages: make([]movie.SpokenLanguage, 0, len(r.SpokenLanguages)),
		VoteAverage:     voteAverage(r.VoteAverage),
		ReleaseDate:     r.ReleaseDate,
		Homepage:        r.Homepage,
		Status:          r.Status,
	}

	if r.OriginalTitle != nil {
		m.OriginalTitle = *r.OriginalTitle
	}
	if r.Runtime != nil {
		m.RuntimeMinutes = *r.Runtime
	}

	for _, g := range r.Genres {
		genre := movie.Genre{ID: -1, Name: g.Name}
		if g.ID != nil {
			genre.ID = *g.ID
		}
		m.Genres = append(m.Genres, genre)
	}
	for _, l := range r.SpokenLanguages {
		m.SpokenLanguages = append(m.SpokenLanguages, movie.SpokenLanguage{EnglishName: l.EnglishName})
	}

	return m
}
