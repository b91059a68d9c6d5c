// Package filter compiles expr-lang expressions into movie filters.
//
// The catalog uses a filter to drop listing entries the grid cannot render.
// Expressions see the movie fields (Title, PosterURL, VoteAverage, Year,
// ReleaseDate, Genres, ...) and helpers such as hasGenre("Drama"),
// releasedAfter("2020-01-01") and containsFold(Title, "batman").
//
//	f, err := filter.Compile(`Title != "" && PosterURL != "" && VoteAverage >= 5`)
//	kept := filter.Apply(f, movies)
package filter
