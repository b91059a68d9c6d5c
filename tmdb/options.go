package tmdb

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit allows at most requests calls per window. Zero disables limiting.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(c *Client) {
		if requests <= 0 || window <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(window/time.Duration(requests)), requests)
	}
}

// WithCache keeps successful response bodies in memory for ttl.
// A size of zero disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(c *Client) {
		if size <= 0 || ttl <= 0 {
			c.cache = nil
			return
		}
		c.cache = newResponseCache(size, ttl)
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLanguage overrides the language parameter sent with every request.
func WithLanguage(language string) Option {
	return func(c *Client) {
		if language != "" {
			c.language = language
		}
	}
}
