// Package probe implements Component G: for every still-undecided
// cell, try each color it could still take, run propagation as if that
// were true, and see what happens. A color that propagates to a
// contradiction can be permanently ruled out — exactly the deduction a
// pure line solver can never make on its own. A color that leaves
// genuinely new information behind is recorded in an impact map so a
// search layer can pick the most promising cell to branch on next.
//
// Grounded almost one-to-one on
// original_source/src/solver/probing.rs's FullProbe1, and on the
// teacher's tsp/bb.go snapshot-before/restore-on-every-exit-path
// discipline for the trial assignments.
package probe

import (
	"errors"
	"fmt"

	"github.com/AminoffZ/nonogrid/board"
	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/linecache"
	"github.com/AminoffZ/nonogrid/propagate"
)

// ErrTooManyContradictions is returned when more than one candidate
// color for the same cell independently propagates to a contradiction
// — the puzzle itself (not just this cell) has no solution.
var ErrTooManyContradictions = errors.New("probe: more than one color contradicts the same cell")

// Priority constants from FullProbe1: a point adjacent to a cell solved
// as a side effect of resolving a contradiction is worth retrying
// sooner than an ordinary newly-solved neighbour, and a point adjacent
// to the contradiction cell itself is worth retrying sooner still.
const (
	priorityNeighboursOfNewlySolved   = 10.0
	priorityNeighboursOfContradiction = 20.0
)

// ImpactKey names one (cell, candidate color) trial.
type ImpactKey struct {
	Point board.Point
	Color color.Color
}

// ImpactValue records what assuming Color at Point would do: how many
// cell changes propagation made (for binary cells, the number newly
// solved), and the priority the point was
// probed at (useful for a search layer ranking candidate branches).
type ImpactValue struct {
	NewCells int
	Priority float64
}

// Impact maps every (point, color) trial probed in one run to its
// effect. Only points whose every candidate survived their probe have
// entries: a point where one color contradicted has none (not even for
// its surviving colors), nor does a point the run never probed.
type Impact map[ImpactKey]ImpactValue

// Prober runs trial assignments against a shared Board and line cache.
type Prober struct {
	board *board.Board
	cache *linecache.Cache
}

// New builds a Prober over board, using cache for the propagation runs
// it drives internally.
func New(b *board.Board, cache *linecache.Cache) *Prober {
	return &Prober{board: b, cache: cache}
}

// RunUnsolved probes every currently-unsolved cell, most-promising
// first (fewest unsolved neighbours, most progress already made on its
// row and column), repeating after every contradiction-driven
// deduction until either the board is fully solved or a pass finds no
// further contradictions.
func (p *Prober) RunUnsolved() (Impact, error) {
	return p.run(p.unsolvedQueue())
}

func (p *Prober) unsolvedQueue() *pointQueue {
	q := newPointQueue()
	for _, pt := range p.board.UnsolvedCells() {
		rowRate := p.board.RowSolutionRate(pt.Y)
		colRate := p.board.ColSolutionRate(pt.X)
		unsolvedNeighbours := float64(len(p.board.UnsolvedNeighbours(pt)))
		priority := rowRate + colRate - unsolvedNeighbours + 4.0
		q.push(pt, priority)
	}
	return q
}

func (p *Prober) run(probes *pointQueue) (Impact, error) {
	impact := make(Impact)
	for {
		if p.board.IsSolvedFull() {
			return impact, nil
		}

		contradictionPoint, contradictionColor, found, err := p.drain(probes, impact)
		if err != nil {
			return nil, err
		}
		if !found {
			return impact, nil
		}

		if err := p.board.RemoveCandidate(contradictionPoint, contradictionColor); err != nil {
			return nil, fmt.Errorf("probe: unsetting %v at %v: %w", contradictionColor, contradictionPoint, err)
		}
		jobs, err := p.propagatePoint(contradictionPoint)
		if err != nil {
			return nil, err
		}
		for _, j := range jobs {
			probes.push(j.point, j.priority)
		}
	}
}

// drain pops every point in probes, recording non-contradictory trials
// into impact, until either the queue empties (found=false) or a
// single color contradicts for one point (found=true, returned).
func (p *Prober) drain(probes *pointQueue, impact Impact) (board.Point, color.Color, bool, error) {
	for {
		point, priority, ok := probes.pop()
		if !ok {
			return board.Point{}, nil, false, nil
		}

		outcomes := p.probeCell(point)

		var contradicted color.Color
		contradictions := 0
		for c, out := range outcomes {
			if out.contradiction {
				contradictions++
				contradicted = c
			}
		}
		if contradictions > 1 {
			return board.Point{}, nil, false, fmt.Errorf("%w: %d colors contradict at %v", ErrTooManyContradictions, contradictions, point)
		}
		if contradictions == 1 {
			return point, contradicted, true, nil
		}

		for c, out := range outcomes {
			impact[ImpactKey{Point: point, Color: c}] = ImpactValue{NewCells: out.newCells, Priority: priority}
		}
	}
}

type probeOutcome struct {
	newCells     int
	contradiction bool
}

// probeCell tries every color point's cell could still take. Each
// trial snapshots the board, forces the assumption, runs propagation
// scoped to point's row and column (which may still cascade further,
// since a changed cell schedules its own cross-axis line), and always
// restores — matching tsp/bb.go's save-before/restore-after shape.
func (p *Prober) probeCell(point board.Point) map[color.Color]probeOutcome {
	outcomes := make(map[color.Color]probeOutcome)
	for _, assumption := range p.board.Cell(point).Variants() {
		snap := p.board.MakeSnapshot()
		p.board.SetCell(point, assumption)
		result, err := propagate.Propagate(p.board, p.cache, []int{point.Y}, []int{point.X})
		p.board.Restore(snap)

		if err != nil {
			outcomes[assumption] = probeOutcome{contradiction: true}
			continue
		}
		outcomes[assumption] = probeOutcome{newCells: len(result.Changed)}
	}
	return outcomes
}

type pointJob struct {
	point    board.Point
	priority float64
}

// propagatePoint runs real (non-trial) propagation scoped to point's
// row and column after a contradiction has permanently ruled out one
// of its colors, and returns the follow-up probe jobs it implies.
func (p *Prober) propagatePoint(point board.Point) ([]pointJob, error) {
	result, err := propagate.Propagate(p.board, p.cache, []int{point.Y}, []int{point.X})
	if err != nil {
		return nil, err
	}

	jobs := make([]pointJob, 0)
	for _, changed := range result.Changed {
		for _, nb := range p.board.UnsolvedNeighbours(changed) {
			jobs = append(jobs, pointJob{point: nb, priority: priorityNeighboursOfNewlySolved})
		}
	}
	for _, nb := range p.board.UnsolvedNeighbours(point) {
		jobs = append(jobs, pointJob{point: nb, priority: priorityNeighboursOfContradiction})
	}
	return jobs, nil
}
