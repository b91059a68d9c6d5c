// Package tmdb provides a client for the movie database web API.
//
// The client covers the read-only operations the catalog needs: the discover
// listing (with or without a release date bound), title search and the
// movie detail record.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		tmdb.DefaultBaseURL,
//		"your-bearer-token",
//		logger,
//		tmdb.WithTimeout(10*time.Second),
//		tmdb.WithRateLimit(40, 10*time.Second),
//		tmdb.WithCache(256, 5*time.Minute),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.FetchMoviesByDate(ctx, "2024-05-01", 1)
//
// # Error Handling
//
// Every failure is an *Error carrying a Kind:
//
//   - KindServiceUnavailable: transport failure (no connection, DNS, timeout)
//   - KindClientError: HTTP 4xx
//   - KindServerError: HTTP 500, or a 2xx body that does not decode
//   - KindUnknownError: any other non-2xx status
//
// Kinds can be matched with errors.Is:
//
//	if errors.Is(err, tmdb.ErrClientError) {
//		// bad request, unknown id, rejected token
//	}
//
// The client never retries.
package tmdb
