package tmdb

import (
	"errors"
	"fmt"
)

// MovieListResponse is the paged response of the discover and search endpoints
type MovieListResponse struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

func (r *MovieListResponse) validate() error {
	for i, m := range r.Results {
		if m.ID == nil {
			return fmt.Errorf("result %d: missing id", i)
		}
	}
	return nil
}

// MovieSummary is a movie entry inside a list response
type MovieSummary struct {
	ID          *int64   `json:"id"`
	Title       string   `json:"title"`
	PosterPath  *string  `json:"poster_path"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	GenreIDs    []int    `json:"genre_ids"`
}

// GenreDTO is a genre of a detail response
type GenreDTO struct {
	ID   *int   `json:"id"`
	Name string `json:"name"`
}

// SpokenLanguageDTO is a spoken language of a detail response
type SpokenLanguageDTO struct {
	EnglishName string `json:"english_name"`
}

// MovieDetailResponse is the response of the movie/{id} endpoint
type MovieDetailResponse struct {
	ID              *int64              `json:"id"`
	Title           string              `json:"title"`
	OriginalTitle   *string             `json:"original_title"`
	PosterPath      *string             `json:"poster_path"`
	Overview        string              `json:"overview"`
	ReleaseDate     string              `json:"release_date"`
	VoteAverage     *float64            `json:"vote_average"`
	Tagline         string              `json:"tagline"`
	Runtime         *int                `json:"runtime"`
	Genres          []GenreDTO          `json:"genres"`
	SpokenLanguages []SpokenLanguageDTO `json:"spoken_languages"`
	Status          string              `json:"status"`
	Homepage        string              `json:"homepage"`
}

func (r *MovieDetailResponse) validate() error {
	if r.ID == nil {
		return errors.New("missing id")
	}
	if r.OriginalTitle == nil {
		return errors.New("missing original_title")
	}
	return nil
}

type authResponse struct {
	Success       bool   `json:"success"`
	StatusMessage string `json:"status_message"`
}

func (r *authResponse) validate() error {
	if !r.Success {
		return fmt.Errorf("authentication rejected: %s", r.StatusMessage)
	}
	return nil
}

// validator is implemented by responses that check required fields after decoding
type validator interface {
	validate() error
}
