package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/tmdb"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	tmdbClient *tmdb.Client
	repository catalog.Repository

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse and search movies from TMDB in your terminal",
	Long: `marquee is a CLI for browsing the newest movie releases, searching titles
and reading movie details from The Movie Database (TMDB).`,
	PersistentPreRunE: initializeApp,
	SilenceUsage:      true,
}

// SetVersion records build information for the version and update commands
func SetVersion(v, built string) {
	if v != "" {
		version = v
	}
	if built != "" {
		buildTime = built
	}
	rootCmd.Version = version
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create TMDB client
	tmdbClient, err = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger, clientOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	movieFilter, err := cfg.Filter()
	if err != nil {
		return fmt.Errorf("invalid catalog filter: %w", err)
	}

	repository = catalog.New(tmdbClient, logger,
		catalog.WithFilter(movieFilter),
		catalog.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
	)

	logger.Debug().
		Str("base_url", cfg.TMDB.BaseURL).
		Bool("cache", cfg.Cache.Enabled).
		Str("filter", cfg.Catalog.Filter).
		Msg("Catalog ready")

	return nil
}

func clientOptions(cfg *config.Config) []tmdb.Option {
	opts := []tmdb.Option{
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithRateLimit(cfg.TMDB.RateLimit, cfg.TMDB.RateWindow),
		tmdb.WithUserAgent("marquee/" + version),
	}
	if cfg.Cache.Enabled {
		opts = append(opts, tmdb.WithCache(cfg.Cache.Size, cfg.Cache.TTL))
	}
	return opts
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// skipInit replaces initializeApp for commands that need no TMDB access
func skipInit(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
	return nil
}
