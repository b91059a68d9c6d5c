package filter

import (
	"github.com/s0up4200/marquee/movie"
)

// Filter defines the basic interface for movie filters
type Filter interface {
	// Evaluate checks if a movie matches the filter criteria
	Evaluate(m movie.Movie) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// Func adapts a plain function to Filter
type Func func(m movie.Movie) bool

// Evaluate calls f(m)
func (f Func) Evaluate(m movie.Movie) bool {
	return f(m)
}

// Apply returns the movies matching f, preserving order. A nil filter
// keeps everything.
func Apply(f Filter, movies []movie.Movie) []movie.Movie {
	if f == nil {
		return movies
	}

	kept := make([]movie.Movie, 0, len(movies))
	for _, m := range movies {
		if f.Evaluate(m) {
			kept = append(kept, m)
		}
	}
	return kept
}
