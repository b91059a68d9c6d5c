// Package pagination tracks the page cursor of a paged listing and decides
// when another page may be requested.
package pagination

import (
	"sync"
)

// FirstPage is the cursor of a fresh listing
const FirstPage = 1

// State is a snapshot of a paginator
type State struct {
	InFlight   bool
	Cursor     int
	EndReached bool
}

// Ticket identifies one permitted page fetch. Completions are applied only
// when the ticket belongs to the paginator's current generation.
type Ticket struct {
	Page       int
	generation uint64
}

// Paginator guards a cursor so at most one page fetch is in flight and no
// fetch is issued past the end. All methods are safe for concurrent use.
type Paginator struct {
	mu         sync.Mutex
	state      State
	generation uint64
}

// New returns a paginator positioned at the first page
func New() *Paginator {
	return &Paginator{state: State{Cursor: FirstPage}}
}

// State returns a snapshot of the current state
func (p *Paginator) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// RequestNextPage marks a fetch in flight for the current cursor.
// ok is false when a fetch is already in flight or the end was reached.
func (p *Paginator) RequestNextPage() (t Ticket, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.InFlight || p.state.EndReached {
		return Ticket{}, false
	}

	p.state.InFlight = true
	return Ticket{Page: p.state.Cursor, generation: p.generation}, true
}

// Current reports whether t belongs to the current generation
func (p *Paginator) Current(t Ticket) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return t.generation == p.generation
}

// PageSucceeded records a successful fetch of itemCount items. The cursor
// advances by one and the end is reached when the page was empty.
// Stale tickets are ignored and reported as false.
func (p *Paginator) PageSucceeded(t Ticket, itemCount int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t.generation != p.generation {
		return false
	}

	p.state.InFlight = false
	p.state.Cursor++
	if itemCount == 0 {
		p.state.EndReached = true
	}
	return true
}

// PageFailed clears the in-flight flag and keeps the cursor so the same
// page can be retried. Stale tickets are ignored and reported as false.
func (p *Paginator) PageFailed(t Ticket) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t.generation != p.generation {
		return false
	}

	p.state.InFlight = false
	return true
}

// Reset returns to the first page and invalidates outstanding tickets
func (p *Paginator) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.state = State{Cursor: FirstPage}
}

// Block resets to the first page with the end marked reached, so no page
// is requested until the next Reset. Outstanding tickets are invalidated.
func (p *Paginator) Block() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.state = State{Cursor: FirstPage, EndReached: true}
}
