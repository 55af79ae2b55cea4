package search_test

import (
	"testing"

	"github.com/AminoffZ/nonogrid/board"
	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/descr"
	"github.com/AminoffZ/nonogrid/linecache"
	"github.com/AminoffZ/nonogrid/search"
)

func binaryDesc(t *testing.T, sizes ...int) *descr.Description {
	t.Helper()
	blocks := make([]descr.Block, len(sizes))
	for i, s := range sizes {
		blocks[i] = descr.Block{Size: s, Color: color.Black}
	}
	d, err := descr.New(blocks)
	if err != nil {
		t.Fatalf("descr.New(%v): %v", sizes, err)
	}
	return d
}

func newBoard(t *testing.T, rows, cols []*descr.Description) (*board.Board, *linecache.Cache) {
	t.Helper()
	b, err := board.New(rows, cols, color.Undefined)
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	cache, err := linecache.New(64)
	if err != nil {
		t.Fatalf("linecache.New: %v", err)
	}
	t.Cleanup(cache.Close)
	return b, cache
}

// TestRun_FindsBothSolutionsOfAmbiguous2x2 covers the diagonal-ambiguity
// puzzle from the probe package's own tests: line solving and probing
// alone cannot pick a winner between the two valid diagonals, so Run
// must branch to enumerate both.
func TestRun_FindsBothSolutionsOfAmbiguous2x2(t *testing.T) {
	rows := []*descr.Description{binaryDesc(t, 1), binaryDesc(t, 1)}
	cols := []*descr.Description{binaryDesc(t, 1), binaryDesc(t, 1)}
	b, cache := newBoard(t, rows, cols)

	result, err := search.Run(b, cache, search.WithMaxSolutions(4))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 2 {
		t.Fatalf("len(Solutions) = %d, want 2", len(result.Solutions))
	}

	diag := map[[2]color.Color]bool{}
	for _, sol := range result.Solutions {
		b.Restore(sol)
		key := [2]color.Color{b.Cell(board.Point{X: 0, Y: 0}), b.Cell(board.Point{X: 1, Y: 1})}
		diag[key] = true
	}
	if len(diag) != 2 {
		t.Errorf("expected two distinct (top-left, bottom-right) pairs across solutions, got %v", diag)
	}
}

// TestRun_UnsatisfiablePuzzleReturnsNoSolutions covers a puzzle whose
// row and column clues are mutually inconsistent: every row fully black
// forces every column fully black too, contradicting columns clued for
// a single cell. Run must report zero solutions without erroring — a
// failed branch is not a fatal condition.
func TestRun_UnsatisfiablePuzzleReturnsNoSolutions(t *testing.T) {
	rows := []*descr.Description{binaryDesc(t, 2), binaryDesc(t, 2)}
	cols := []*descr.Description{binaryDesc(t, 1), binaryDesc(t, 1)}
	b, cache := newBoard(t, rows, cols)

	result, err := search.Run(b, cache, search.WithMaxSolutions(4))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 0 {
		t.Fatalf("len(Solutions) = %d, want 0", len(result.Solutions))
	}
}

// TestRun_PermutationMatrixNeedsFullBacktracking covers a 3x3 puzzle
// where every row and every column is clued for exactly one block of
// size 1: a single cell anywhere in a 3-cell line is never pinned down
// by left/right-align overlap, and probing a lone cell never produces a
// contradiction by itself either (any of the three positions is locally
// consistent), so only the search engine's branch-and-restore loop can
// enumerate the 3! = 6 non-attacking placements.
func TestRun_PermutationMatrixNeedsFullBacktracking(t *testing.T) {
	rows := []*descr.Description{binaryDesc(t, 1), binaryDesc(t, 1), binaryDesc(t, 1)}
	cols := []*descr.Description{binaryDesc(t, 1), binaryDesc(t, 1), binaryDesc(t, 1)}
	b, cache := newBoard(t, rows, cols)

	result, err := search.Run(b, cache, search.WithMaxSolutions(10))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 6 {
		t.Fatalf("len(Solutions) = %d, want 6", len(result.Solutions))
	}

	seen := map[string]bool{}
	for _, sol := range result.Solutions {
		b.Restore(sol)

		rowOf := make([]int, 3)
		colUsed := map[int]bool{}
		for y := 0; y < 3; y++ {
			blackCol := -1
			blackCount := 0
			for x := 0; x < 3; x++ {
				if b.Cell(board.Point{X: x, Y: y}) == color.Black {
					blackCol = x
					blackCount++
				}
			}
			if blackCount != 1 {
				t.Fatalf("row %d has %d black cells, want exactly 1", y, blackCount)
			}
			if colUsed[blackCol] {
				t.Fatalf("column %d used by more than one row in a single solution", blackCol)
			}
			colUsed[blackCol] = true
			rowOf[y] = blackCol
		}

		key := ""
		for _, c := range rowOf {
			key += string(rune('0' + c))
		}
		if seen[key] {
			t.Fatalf("duplicate solution %v returned", rowOf)
		}
		seen[key] = true
	}
	if len(seen) != 6 {
		t.Fatalf("got %d distinct permutations, want 6", len(seen))
	}
}

// TestRun_RespectsMaxSolutions checks that Run stops collecting once the
// quota is met, even when more solutions remain.
func TestRun_RespectsMaxSolutions(t *testing.T) {
	rows := []*descr.Description{binaryDesc(t, 1), binaryDesc(t, 1), binaryDesc(t, 1)}
	cols := []*descr.Description{binaryDesc(t, 1), binaryDesc(t, 1), binaryDesc(t, 1)}
	b, cache := newBoard(t, rows, cols)

	result, err := search.Run(b, cache, search.WithMaxSolutions(1))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 1 {
		t.Fatalf("len(Solutions) = %d, want 1", len(result.Solutions))
	}
}
