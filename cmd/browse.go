package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/viewmodel"
)

var (
	browsePages    int
	browseUndated  bool
	browseOverview bool
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List the newest movie releases",
	Long: `List movies released up to today, newest first. Pages are fetched one at a
time and movies already shown are not repeated.`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVarP(&browsePages, "pages", "p", 1, "number of pages to load")
	browseCmd.Flags().BoolVar(&browseUndated, "undated", false, "include upcoming releases")
	browseCmd.Flags().BoolVar(&browseOverview, "overview", false, "show each movie's overview")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if browsePages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	grid := viewmodel.NewGrid(repository, logger,
		viewmodel.WithDateBound(cfg.Grid.DateBound && !browseUndated),
		viewmodel.WithLoadMoreThreshold(cfg.Grid.LoadMoreThreshold),
	)
	defer grid.Close()

	updates, unsubscribe := grid.Subscribe()
	defer unsubscribe()

	settled := func(s viewmodel.GridState) bool {
		if grid.Pagination().InFlight {
			return false
		}
		_, loading := s.(viewmodel.GridLoading)
		return !loading
	}

	var state viewmodel.GridState
	for page := 1; page <= browsePages; page++ {
		if page > 1 {
			if grid.Pagination().EndReached {
				break
			}
			grid.LoadMore()
		}

		var err error
		state, err = await(cmd.Context(), updates, settled)
		if err != nil {
			return err
		}
		if _, failed := state.(viewmodel.GridError); failed {
			break
		}
	}

	var err error
	viewmodel.MatchGrid(state, viewmodel.GridHandlers{
		Loading: func() {},
		Success: func(s viewmodel.GridSuccess) {
			if len(s.Movies) == 0 {
				fmt.Println("No movies found.")
				return
			}
			header := "Movies"
			if s.TodaysDate != "" && cfg.Grid.DateBound && !browseUndated {
				header += " released up to " + s.TodaysDate
			}
			fmt.Print(ConsoleFormatter{}.FormatMovieList(header, s.Movies, FormatOptions{ShowOverview: browseOverview}))
		},
		Error: func(e viewmodel.GridError) {
			err = fmt.Errorf("failed to load movies: %s", e.Message)
		},
	})
	return err
}
