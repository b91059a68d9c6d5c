package cmd

import (
	"fmt"
	"strings"

	"github.com/s0up4200/marquee/movie"
)

// FormatOptions controls what the console formatter includes
type FormatOptions struct {
	ShowOverview bool
}

// ConsoleFormatter provides console output formatting for movies
type ConsoleFormatter struct{}

// FormatMovieList formats a list of movies for console display
func (f ConsoleFormatter) FormatMovieList(title string, movies []movie.Movie, options FormatOptions) string {
	if len(movies) == 0 {
		return "No movies found"
	}

	var sb strings.Builder

	// Header
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", title, len(movies))

	for i, m := range movies {
		isLast := i == len(movies)-1
		f.formatMovie(&sb, m, isLast, options)

		if !isLast {
			sb.WriteString("\u2502\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatDetail formats the full record of one movie
func (f ConsoleFormatter) FormatDetail(m movie.Movie) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n", titleWithYear(m))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if m.Tagline != "" {
		fmt.Fprintf(&sb, "%s\n\n", m.Tagline)
	}
	if m.OriginalTitle != "" && m.OriginalTitle != m.Title {
		fmt.Fprintf(&sb, "Original title: %s\n", m.OriginalTitle)
	}
	if m.ReleaseDate != "" {
		fmt.Fprintf(&sb, "Released: %s\n", m.ReleaseDate)
	}
	if m.Status != "" {
		fmt.Fprintf(&sb, "Status: %s\n", m.Status)
	}
	if m.HasRuntime() {
		fmt.Fprintf(&sb, "Runtime: %d min\n", m.RuntimeMinutes)
	}
	fmt.Fprintf(&sb, "Rating: %.1f/10\n", m.VoteAverage)
	if genres := m.GenreNames(); len(genres) > 0 {
		fmt.Fprintf(&sb, "Genres: %s\n", strings.Join(genres, ", "))
	}
	if languages := m.LanguageNames(); len(languages) > 0 {
		fmt.Fprintf(&sb, "Languages: %s\n", strings.Join(languages, ", "))
	}
	if m.Homepage != "" {
		fmt.Fprintf(&sb, "Homepage: %s\n", m.Homepage)
	}
	if m.HasPoster() {
		fmt.Fprintf(&sb, "Poster: %s\n", m.PosterURL)
	}
	if m.Overview != "" {
		fmt.Fprintf(&sb, "\n%s\n", m.Overview)
	}

	return sb.String()
}

func (f ConsoleFormatter) formatMovie(sb *strings.Builder, m movie.Movie, isLast bool, options FormatOptions) {
	prefix := "\u251c"
	if isLast {
		prefix = "\u2570"
	}

	fmt.Fprintf(sb, "%s\u2500\u2500 %s\n", prefix, titleWithYear(m))

	indent := "\u2502   "
	if isLast {
		indent = "    "
	}

	fmt.Fprintf(sb, "%sID: %s  Rating: %.1f\n", indent, m.ID, m.VoteAverage)
	if options.ShowOverview && m.Overview != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, m.Overview)
	}
}

func titleWithYear(m movie.Movie) string {
	if year := m.Year(); year != "" {
		return fmt.Sprintf("%s (%s)", m.Title, year)
	}
	return m.Title
}
