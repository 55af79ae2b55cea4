package search

import (
	"sort"

	"github.com/AminoffZ/nonogrid/board"
	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/probe"
)

// choosePivot picks the unsolved cell maximizing the sum of impact's
// recorded new-cell counts across its candidates, tiebroken by
// position. Falls back to the unsolved cell with the most already-
// solved neighbours when impact carries no information at all (e.g.
// probing plateaued having already resolved every contradiction).
func (e *engine) choosePivot(impact probe.Impact) (board.Point, bool) {
	unsolved := e.board.UnsolvedCells()
	if len(unsolved) == 0 {
		return board.Point{}, false
	}

	totals := make(map[board.Point]int, len(unsolved))
	for key, value := range impact {
		totals[key.Point] += value.NewCells
	}

	best := unsolved[0]
	bestScore := -1
	for _, p := range unsolved {
		score, ok := totals[p]
		if !ok {
			continue
		}
		if score > bestScore || (score == bestScore && before(p, best)) {
			bestScore = score
			best = p
		}
	}
	if bestScore < 0 {
		return e.fallbackPivot(unsolved), true
	}
	return best, true
}

// fallbackPivot picks the unsolved cell with the most solved
// neighbours, tiebroken by position.
func (e *engine) fallbackPivot(unsolved []board.Point) board.Point {
	best := unsolved[0]
	bestSolved := -1
	for _, p := range unsolved {
		solved := len(e.board.Neighbours(p)) - len(e.board.UnsolvedNeighbours(p))
		if solved > bestSolved || (solved == bestSolved && before(p, best)) {
			bestSolved = solved
			best = p
		}
	}
	return best
}

// before imposes the deterministic row-major tiebreak: top-to-bottom,
// then left-to-right.
func before(a, b board.Point) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// sortedVariants returns c's variants ordered by ascending color id, so
// branching order is deterministic regardless of map/slice iteration
// order upstream.
func sortedVariants(c color.Color) []color.Color {
	vs := c.Variants()
	sort.Slice(vs, func(i, j int) bool { return colorRank(vs[i]) < colorRank(vs[j]) })
	return vs
}

func colorRank(c color.Color) uint64 {
	switch v := c.(type) {
	case color.Binary:
		return uint64(v)
	case color.Multi:
		return uint64(v)
	default:
		return 0
	}
}
