package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AminoffZ/nonogrid/board"
	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/linecache"
	"github.com/AminoffZ/nonogrid/linesolve"
	"github.com/AminoffZ/nonogrid/probe"
	"github.com/AminoffZ/nonogrid/propagate"
)

// Run searches b for up to WithMaxSolutions distinct full solutions,
// mutating b in place (every branch is snapshotted and restored, so b
// ends the call however its own propagation/probing last left it — not
// necessarily solved). A contradiction anywhere simply means fewer
// solutions, not an error; Run only returns an error for a genuinely
// fatal condition, such as more than one color contradicting at the
// same cell during probing. Cancellation of the WithContext context is
// handled like a timeout: it sets Result.Incomplete, not an error.
func Run(b *board.Board, cache *linecache.Cache, opts ...Option) (Result, error) {
	e := &engine{
		board:        b,
		cache:        cache,
		ctx:          context.Background(),
		maxSolutions: 1,
		seen:         make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}

	err := e.solve(0)
	return Result{Solutions: e.solutions, Log: e.log, Incomplete: e.incomplete}, err
}

// solve implements section 4.H's algorithm at one recursion node:
// propagate, probe, check for a full solution, else pick a pivot and
// branch over its remaining colors.
func (e *engine) solve(depth int) error {
	if len(e.solutions) >= e.maxSolutions {
		return nil
	}
	if e.maxDepth > 0 && depth > e.maxDepth {
		e.incomplete = true
		return nil
	}
	if e.deadlineExceeded() {
		e.incomplete = true
		return nil
	}

	start := time.Now()

	if _, err := propagate.Propagate(e.board, e.cache, nil, nil); err != nil {
		if errors.Is(err, linesolve.ErrContradiction) {
			return nil
		}
		return err
	}

	impact, err := probe.New(e.board, e.cache).RunUnsolved()
	if err != nil {
		if errors.Is(err, linesolve.ErrContradiction) {
			return nil
		}
		return err
	}

	if e.board.IsSolvedFull() {
		e.recordSolution()
		e.logNode(depth, 0, start)
		return nil
	}

	pivot, ok := e.choosePivot(impact)
	if !ok {
		// No unsolved cell left to branch on, yet the board isn't fully
		// solved: propagation and probing plateaued without deciding
		// every cell and without any candidate to try next. Nothing more
		// this node can do.
		return nil
	}

	// Computed once up front, matching the original's literal semantics;
	// RemoveCandidate narrows pivot's own candidate set as branches are
	// exhausted below, so later entries in this slice may already be
	// gone from the board by the time they're tried, which is harmless.
	candidates := sortedVariants(e.board.Cell(pivot))
	e.logNode(depth, len(candidates), start)

	for _, candidate := range candidates {
		if len(e.solutions) >= e.maxSolutions {
			break
		}

		if err := e.tryBranch(pivot, candidate, depth); err != nil {
			return err
		}

		// Permanently rule candidate out of the real board now that its
		// branch has been fully explored (or was never viable), and
		// propagate the consequences around pivot.
		if err := e.board.RemoveCandidate(pivot, candidate); err != nil {
			// pivot is already solved, or removing candidate would leave
			// it with no colors at all: either way there is nothing left
			// to branch on here.
			break
		}
		if _, err := propagate.Propagate(e.board, e.cache, []int{pivot.Y}, []int{pivot.X}); err != nil {
			if errors.Is(err, linesolve.ErrContradiction) {
				break
			}
			return err
		}
	}
	return nil
}

// tryBranch assumes candidate at pivot, recurses, and always restores
// the board to how it was before the assumption — matching tsp/bb.go's
// snapshot-before/restore-on-every-exit-path discipline.
func (e *engine) tryBranch(pivot board.Point, candidate color.Color, depth int) error {
	snap := e.board.MakeSnapshot()
	defer e.board.Restore(snap)

	e.board.SetCell(pivot, candidate)

	if _, err := propagate.Propagate(e.board, e.cache, nil, nil); err != nil {
		if errors.Is(err, linesolve.ErrContradiction) {
			return nil
		}
		return err
	}

	return e.solve(depth + 1)
}

// recordSolution snapshots the current fully-solved board and appends
// it to e.solutions, unless an identical grid has already been found.
func (e *engine) recordSolution() {
	key := e.gridKey()
	if e.seen[key] {
		return
	}
	e.seen[key] = true
	e.solutions = append(e.solutions, e.board.MakeSnapshot())
}

// gridKey builds a dedup key for the board's current state by reading
// every cell directly, since board.Snapshot keeps its cells unexported.
func (e *engine) gridKey() string {
	var sb strings.Builder
	for y := 0; y < e.board.Height(); y++ {
		for x := 0; x < e.board.Width(); x++ {
			sb.WriteString(e.board.Cell(board.Point{X: x, Y: y}).String())
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (e *engine) logNode(depth, branchFactor int, start time.Time) {
	e.log = append(e.log, NodeLog{Depth: depth, BranchFactor: branchFactor, Elapsed: time.Since(start)})
}
