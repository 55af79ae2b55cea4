// Package linesolve implements Component E: given one row or column's
// Description and its current candidate-set state, compute the
// strongest refinement the clue alone implies, or report that no
// placement of its blocks satisfies the current state.
//
// The algorithm is the classic left-right shift and intersect: for
// each block, walk it as far left and as far right as the current
// state allows, then the region both walks agree on is guaranteed that
// block's color, and any cell outside every block's left-right extent
// is guaranteed blank. Re-deriving the walks against the refined state
// and repeating until nothing changes reaches a fixed point within one
// Solve call — see original_source/src/solver/line.rs (inferred from
// its propagation.rs/probing.rs call sites) and section 4.E.
package linesolve

import (
	"errors"
	"fmt"

	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/descr"
)

// ErrContradiction is the sentinel wrapped by every error Solve
// returns: no placement of the description's blocks is consistent with
// the given state.
var ErrContradiction = errors.New("linesolve: no placement satisfies the description")

func contradictionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContradiction, fmt.Sprintf(format, args...))
}

// Solve returns the strongest refinement of state implied by desc
// alone. The returned slice is a fresh copy; state is never mutated.
// If desc.Empty(), the whole line must be blank. If no consistent
// placement exists (including desc.MinSpan() exceeding len(state)),
// Solve returns an error wrapping ErrContradiction.
func Solve(desc *descr.Description, state []color.Color) ([]color.Color, error) {
	n := len(state)

	if desc.Empty() {
		if n == 0 {
			return nil, nil
		}
		return blankOut(state, state[0].Blank())
	}
	if desc.MinSpan() > n {
		return nil, contradictionf("min span %d exceeds line length %d", desc.MinSpan(), n)
	}

	cur := append([]color.Color(nil), state...)
	for {
		left, err := leftAlign(desc.Blocks, cur)
		if err != nil {
			return nil, err
		}
		right, err := rightAlign(desc.Blocks, cur)
		if err != nil {
			return nil, err
		}

		next := append([]color.Color(nil), cur...)

		covered := make([]bool, n)
		for j, blk := range desc.Blocks {
			for i := left[j]; i < right[j]+blk.Size; i++ {
				covered[i] = true
			}
			if right[j] < left[j]+blk.Size {
				for i := right[j]; i < left[j]+blk.Size; i++ {
					refined, err := next[i].Meet(blk.Color)
					if err != nil {
						return nil, contradictionf("cell %d can't take block %d's color: %v", i, j, err)
					}
					next[i] = refined
				}
			}
		}

		blank := desc.Blocks[0].Color.Blank()
		for i := 0; i < n; i++ {
			if covered[i] {
				continue
			}
			refined, err := next[i].Meet(blank)
			if err != nil {
				return nil, contradictionf("cell %d must be blank but can't take it: %v", i, err)
			}
			next[i] = refined
		}

		if linesEqual(cur, next) {
			return next, nil
		}
		cur = next
	}
}

func blankOut(state []color.Color, blank color.Color) ([]color.Color, error) {
	out := make([]color.Color, len(state))
	for i, c := range state {
		refined, err := c.Meet(blank)
		if err != nil {
			return nil, contradictionf("cell %d is solved to a foreground color but description is empty: %v", i, err)
		}
		out[i] = refined
	}
	return out, nil
}

func linesEqual(a, b []color.Color) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameColor(a, b color.Color) bool { return a == b }

// rangeCompatible reports whether every cell in state[lo:hi] can still
// take target, without mutating state.
func rangeCompatible(state []color.Color, lo, hi int, target color.Color) bool {
	for i := lo; i < hi; i++ {
		if _, err := state[i].Meet(target); err != nil {
			return false
		}
	}
	return true
}

// leftAlign walks the blocks left to right, placing each one as early
// as the current state permits: gap cells before it must still accept
// blank, and its own cells must still accept its color. This greedy
// placement is the leftmost valid one whenever any valid placement
// exists, by the usual earliest-deadline exchange argument — placing a
// block any earlier than feasible only shrinks room for the blocks
// after it.
func leftAlign(blocks []descr.Block, state []color.Color) ([]int, error) {
	n := len(state)
	starts := make([]int, len(blocks))
	cursor := 0

	for j, blk := range blocks {
		if j > 0 && sameColor(blocks[j-1].Color, blk.Color) {
			cursor++
		}
		blank := blk.Color.Blank()

		s := cursor
		for {
			if s+blk.Size > n {
				return nil, contradictionf("block %d (size %d) has no room left of %d", j, blk.Size, n)
			}
			if rangeCompatible(state, cursor, s, blank) && rangeCompatible(state, s, s+blk.Size, blk.Color) {
				break
			}
			s++
		}
		starts[j] = s
		cursor = s + blk.Size
	}
	return starts, nil
}

// rightAlign is leftAlign's mirror: it walks the blocks right to left,
// placing each one as late as the current state permits.
func rightAlign(blocks []descr.Block, state []color.Color) ([]int, error) {
	n := len(state)
	k := len(blocks)
	starts := make([]int, k)
	cursor := n

	for j := k - 1; j >= 0; j-- {
		blk := blocks[j]
		if j < k-1 && sameColor(blocks[j+1].Color, blk.Color) {
			cursor--
		}
		blank := blk.Color.Blank()

		e := cursor
		for {
			s := e - blk.Size
			if s < 0 {
				return nil, contradictionf("block %d (size %d) has no room right of 0", j, blk.Size)
			}
			if rangeCompatible(state, e, cursor, blank) && rangeCompatible(state, s, e, blk.Color) {
				starts[j] = s
				cursor = s
				break
			}
			e--
		}
	}
	return starts, nil
}
