package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/tmdb"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TMDB",
	Long:  `Test the connection to the TMDB API and check that the API key is accepted.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)

	if err := tmdbClient.TestConnection(cmd.Context()); err != nil {
		return fmt.Errorf("connection failed: %s: %w", connectionHint(err), err)
	}
	fmt.Println("✓ Connection successful!")

	fmt.Printf("\nSettings:\n")
	fmt.Printf("- Response cache: %s\n", boolToStatus(cfg.Cache.Enabled))
	if cfg.TMDB.RateLimit > 0 {
		fmt.Printf("- Rate limit: %d requests per %s\n", cfg.TMDB.RateLimit, cfg.TMDB.RateWindow)
	} else {
		fmt.Println("- Rate limit: Disabled")
	}
	if cfg.Catalog.Filter != "" {
		fmt.Printf("- Catalog filter: %s\n", cfg.Catalog.Filter)
	} else {
		fmt.Println("- Catalog filter: Disabled")
	}
	fmt.Printf("- Search debounce: %s\n", cfg.Search.Debounce)

	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

// connectionHint explains a failed connection test in user terms
func connectionHint(err error) string {
	var apiErr *tmdb.Error
	if !errors.As(err, &apiErr) {
		return "unexpected failure"
	}

	switch {
	case apiErr.IsServiceUnavailable():
		return "TMDB is unreachable, check your network and tmdb.base_url"
	case apiErr.IsClientError():
		return "API key rejected, check tmdb.api_key"
	case apiErr.IsServerError():
		return "TMDB returned an unusable response"
	default:
		return "unexpected response from TMDB"
	}
}
