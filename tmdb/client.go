package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	defaultLanguage = "en-US"
	releaseSort     = "primary_release_date.desc"
)

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *responseCache
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client authenticated with a bearer token
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("%w: base url: %v", ErrInvalidConfig, err)
	}

	client := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: defaultLanguage,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// get issues a GET request and decodes the JSON body into out.
// Every failure is returned as *Error.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out validator) error {
	requestURL := c.baseURL + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	if c.cache != nil {
		if body, ok := c.cache.Get(requestURL); ok {
			c.logger.Debug().Str("endpoint", endpoint).Msg("Serving TMDB response from cache")
			return decode(body, out)
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return newError(KindServiceUnavailable, 0, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return newError(KindUnknownError, 0, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("TMDB request failed")
		return newError(KindServiceUnavailable, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(KindServiceUnavailable, 0, fmt.Errorf("failed to read response body: %w", err))
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("page", params.Get("page")).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("TMDB request")

	if kind, ok := classifyStatus(resp.StatusCode); !ok {
		return newError(kind, resp.StatusCode, fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(body))))
	}

	if err := decode(body, out); err != nil {
		return err
	}

	if c.cache != nil {
		c.cache.Put(requestURL, body)
	}
	return nil
}

func decode(body []byte, out validator) error {
	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindServerError, 0, fmt.Errorf("failed to parse response: %w", err))
	}
	if err := out.validate(); err != nil {
		return newError(KindServerError, 0, fmt.Errorf("invalid response: %w", err))
	}
	return nil
}

func (c *Client) discoverParams(page int) url.Values {
	params := url.Values{}
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("language", c.language)
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", releaseSort)
	return params
}

// FetchMoviesByDate lists movies released on or before maxReleaseDate
func (c *Client) FetchMoviesByDate(ctx context.Context, maxReleaseDate string, page int) (*MovieListResponse, error) {
	params := c.discoverParams(page)
	params.Set("primary_release_date.lte", maxReleaseDate)

	var response MovieListResponse
	if err := c.get(ctx, "/discover/movie", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// FetchMoviesByPage lists movies without a release date bound
func (c *Client) FetchMoviesByPage(ctx context.Context, page int) (*MovieListResponse, error) {
	var response MovieListResponse
	if err := c.get(ctx, "/discover/movie", c.discoverParams(page), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// SearchMovies searches movies matching query
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MovieListResponse, error) {
	params := url.Values{}
	params.Set("include_adult", "false")
	params.Set("language", c.language)
	params.Set("page", strconv.Itoa(page))
	params.Set("query", query)

	var response MovieListResponse
	if err := c.get(ctx, "/search/movie", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// FetchMovieDetail retrieves the full record for a movie id
func (c *Client) FetchMovieDetail(ctx context.Context, id string) (*MovieDetailResponse, error) {
	params := url.Values{}
	params.Set("language", c.language)

	var response MovieDetailResponse
	if err := c.get(ctx, "/movie/"+url.PathEscape(id), params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// TestConnection checks that the bearer token is accepted
func (c *Client) TestConnection(ctx context.Context) error {
	var response authResponse
	return c.get(ctx, "/authentication", nil, &response)
}
