// Package movie holds the domain entity shared by the catalog and view-model
// layers.
package movie

// UnknownRuntime marks a movie whose runtime the source did not report
const UnknownRuntime = -1

// DefaultVoteAverage is the rating used when the source sends none
const DefaultVoteAverage = 1.0

// Genre is a movie genre
type Genre struct {
	ID   int
	Name string
}

// SpokenLanguage is a language spoken in a movie
type SpokenLanguage struct {
	EnglishName string
}

// Movie is an immutable movie record. Identity is ID.
type Movie struct {
	ID              string
	PosterURL       string
	Title           string
	OriginalTitle   string
	Tagline         string
	Overview        string
	Genres          []Genre
	RuntimeMinutes  int
	SpokenLanguages []SpokenLanguage
	VoteAverage     float64
	ReleaseDate     string
	Homepage        string
	Status          string
}

// HasPoster reports whether the movie has an image to show
func (m Movie) HasPoster() bool {
	return m.PosterURL != ""
}

// HasRuntime reports whether the runtime is known
func (m Movie) HasRuntime() bool {
	return m.RuntimeMinutes != UnknownRuntime
}

// GenreNames returns the genre names in order
func (m Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// LanguageNames returns the English names of the spoken languages
func (m Movie) LanguageNames() []string {
	names := make([]string, 0, len(m.SpokenLanguages))
	for _, l := range m.SpokenLanguages {
		names = append(names, l.EnglishName)
	}
	return names
}

// Year returns the year part of the release date, or "" if unknown
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Dedupe concatenates existing and batch, keeping the first occurrence of
// each ID. Neither input is modified.
func Dedupe(existing, batch []Movie) []Movie {
	out := make([]Movie, 0, len(existing)+len(batch))
	seen := make(map[string]struct{}, len(existing)+len(batch))
	for _, list := range [][]Movie{existing, batch} {
		for _, m := range list {
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}
