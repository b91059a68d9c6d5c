// Package viewmodel holds the state machines behind the movie grid, the
// search screen and the detail screen.
//
// Each view-model owns its state and serializes every mutation. Results of
// superseded requests are discarded, and Close stops outstanding work.
package viewmodel
