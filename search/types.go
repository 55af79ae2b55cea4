// Package search implements Component H: when propagation and probing
// plateau without a full solution, pick the unsolved cell probing's
// impact map says is most informative, branch over its remaining
// colors, and recurse — restoring between branches and permanently
// narrowing the parent's candidate set as each branch is exhausted.
//
// Grounded on the teacher's tsp/bb.go bbEngine shape (a dedicated
// engine struct over anonymous closures, sparse deadline checks,
// snapshot/restore on every exit path, deterministic branch order) and
// section 4.H's pivot/branch/dedup algorithm.
package search

import (
	"context"
	"time"

	"github.com/AminoffZ/nonogrid/board"
	"github.com/AminoffZ/nonogrid/linecache"
)

// NodeLog records one recursion node's branching factor and timing,
// for the "rudimentary search-tree log" section 4.H asks for.
type NodeLog struct {
	Depth        int
	BranchFactor int
	Elapsed      time.Duration
}

// Result is what Run returns: every distinct solution found (up to the
// configured quota), and the node log. Incomplete reports whether a
// timeout or depth budget cut the search short before it could either
// exhaust the search space or meet the solution quota — section 7's
// BudgetExhausted is not an error, just this flag on an otherwise
// ordinary result.
type Result struct {
	Solutions  []board.Snapshot
	Log        []NodeLog
	Incomplete bool
}

// Option configures a search run.
type Option func(*engine)

// WithMaxSolutions caps how many distinct solutions Run collects
// before stopping (default 1).
func WithMaxSolutions(n int) Option {
	return func(e *engine) {
		if n > 0 {
			e.maxSolutions = n
		}
	}
}

// WithMaxDepth bounds recursion depth; descent stops (reporting
// whatever solutions exist so far) once exceeded.
func WithMaxDepth(n int) Option {
	return func(e *engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithTimeout bounds wall-clock time; descent stops once exceeded.
func WithTimeout(d time.Duration) Option {
	return func(e *engine) {
		if d > 0 {
			e.useDeadline = true
			e.deadline = time.Now().Add(d)
		}
	}
}

// WithContext threads a cancellation context through the run, checked
// alongside the timeout at every recursion node.
func WithContext(ctx context.Context) Option {
	return func(e *engine) { e.ctx = ctx }
}

// engine holds all search data and policy for one Run call.
type engine struct {
	board *board.Board
	cache *linecache.Cache

	ctx context.Context

	maxSolutions int
	maxDepth     int
	useDeadline  bool
	deadline     time.Time

	solutions  []board.Snapshot
	seen       map[string]bool
	log        []NodeLog
	incomplete bool
}

// deadlineExceeded is a rare-ish check: cheap compared to the
// propagate+probe work each node already does, so — unlike
// tsp/bb.go's every-4096th-event sampling over a much hotter loop —
// it is simply checked once per node.
func (e *engine) deadlineExceeded() bool {
	if e.useDeadline && time.Now().After(e.deadline) {
		return true
	}
	select {
	case <-e.ctx.Done():
		return true
	default:
		return false
	}
}
