package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/viewmodel"
)

// detailCmd represents the detail command
var detailCmd = &cobra.Command{
	Use:   "detail <id>",
	Short: "Show the full record of a movie",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetail,
}

func runDetail(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("movie id must not be empty")
	}

	detail := viewmodel.NewDetail(repository, logger)
	defer detail.Close()

	updates, unsubscribe := detail.Subscribe()
	defer unsubscribe()

	detail.LoadDetail(id)

	state, err := await(cmd.Context(), updates, func(s viewmodel.DetailState) bool {
		return !s.Loading && (s.Movie != nil || s.HasError())
	})
	if err != nil {
		return err
	}
	if state.HasError() {
		return fmt.Errorf("failed to load movie %s: %s", id, state.Error)
	}

	fmt.Print(ConsoleFormatter{}.FormatDetail(*state.Movie))
	return nil
}
