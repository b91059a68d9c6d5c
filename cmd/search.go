package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/viewmodel"
)

var (
	searchPages    int
	searchOverview bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchPages, "pages", "p", 1, "number of result pages to load")
	searchCmd.Flags().BoolVar(&searchOverview, "overview", false, "show each movie's overview")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchPages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query must not be blank")
	}

	search := viewmodel.NewSearch(repository, logger, viewmodel.WithDebounce(cfg.Search.Debounce))
	defer search.Close()

	updates, unsubscribe := search.Subscribe()
	defer unsubscribe()

	settled := func(s viewmodel.SearchState) bool {
		if search.Query() != query || search.Pagination().InFlight {
			return false
		}
		switch s.(type) {
		case viewmodel.SearchResult, viewmodel.SearchNoResults, viewmodel.SearchError:
			return true
		}
		return false
	}

	logger.Info().Str("query", query).Msg("Searching movies")
	search.OnQueryChanged(query)

	state, err := await(cmd.Context(), updates, settled)
	if err != nil {
		return err
	}
	for page := 2; page <= searchPages; page++ {
		if _, ok := state.(viewmodel.SearchResult); !ok || search.Pagination().EndReached {
			break
		}
		search.LoadMore(query)
		if state, err = await(cmd.Context(), updates, settled); err != nil {
			return err
		}
	}

	viewmodel.MatchSearch(state, viewmodel.SearchHandlers{
		Initial:    func() {},
		Loading:    func() {},
		Refreshing: func(viewmodel.SearchRefreshing) {},
		NoResults: func() {
			fmt.Printf("No movies found matching %q.\n", query)
		},
		Result: func(r viewmodel.SearchResult) {
			title := fmt.Sprintf("Movies matching %q", query)
			fmt.Print(ConsoleFormatter{}.FormatMovieList(title, r.Movies, FormatOptions{ShowOverview: searchOverview}))
		},
		Error: func(e viewmodel.SearchError) {
			err = fmt.Errorf("search failed: %s", e.Message)
		},
	})
	return err
}
