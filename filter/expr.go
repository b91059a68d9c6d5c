package filter

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/marquee/movie"
)

// DefaultExpression drops movies that cannot be rendered in a poster grid
const DefaultExpression = `Title != "" && PosterURL != ""`

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(createRuntimeEnvironment(movie.Movie{}, c.helperFuncs)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &exprFilter{
		expression: expression,
		program:    program,
		helpers:    c.helperFuncs,
	}, nil
}

// Compile compiles expression with the default compiler
func Compile(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}

// Evaluate evaluates the filter against a movie. Runtime errors count as
// no match.
func (f *exprFilter) Evaluate(m movie.Movie) bool {
	env := createRuntimeEnvironment(m, f.helpers)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}

	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	return funcs
}

func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["parseDate"] = func(dateStr string) time.Time {
		t, _ := time.Parse(time.DateOnly, dateStr)
		return t
	}
	env["daysSince"] = func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["now"] = time.Now
	// String helpers. contains and startsWith are expr operators, so the
	// case-insensitive variants get their own names.
	env["containsFold"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefixFold"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

func createRuntimeEnvironment(m movie.Movie, helpers map[string]any) map[string]any {
	env := make(map[string]any, len(helpers)+16)
	maps.Copy(env, helpers)

	env["Movie"] = m
	env["hasGenre"] = createHasGenreFunc(m.GenreNames())
	env["releasedBefore"] = createReleasedCompareFunc(m.ReleaseDate, -1)
	env["releasedAfter"] = createReleasedCompareFunc(m.ReleaseDate, 1)

	env["ID"] = m.ID
	env["Title"] = m.Title
	env["OriginalTitle"] = m.OriginalTitle
	env["PosterURL"] = m.PosterURL
	env["Overview"] = m.Overview
	env["Tagline"] = m.Tagline
	env["ReleaseDate"] = m.ReleaseDate
	env["Year"] = releaseYear(m)
	env["VoteAverage"] = m.VoteAverage
	env["Runtime"] = m.RuntimeMinutes
	env["Genres"] = m.GenreNames()
	env["Languages"] = m.LanguageNames()
	env["Status"] = m.Status

	return env
}

func createHasGenreFunc(genres []string) func(string) bool {
	lower := make([]string, len(genres))
	for i, g := range genres {
		lower[i] = strings.ToLower(g)
	}
	return func(name string) bool {
		return slices.Contains(lower, strings.ToLower(name))
	}
}

// createReleasedCompareFunc compares ISO dates lexically; an unknown
// release date never matches.
func createReleasedCompareFunc(releaseDate string, sign int) func(string) bool {
	return func(date string) bool {
		if releaseDate == "" {
			return false
		}
		return strings.Compare(releaseDate, date) == sign
	}
}

func releaseYear(m movie.Movie) int {
	year, err := strconv.Atoi(m.Year())
	if err != nil {
		return 0
	}
	return year
}
