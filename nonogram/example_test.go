package nonogram_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AminoffZ/nonogrid/board"
	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/descr"
	"github.com/AminoffZ/nonogrid/nonogram"
)

func blackBlocks(sizes ...int) []descr.Block {
	blocks := make([]descr.Block, len(sizes))
	for i, s := range sizes {
		blocks[i] = descr.Block{Size: s, Color: color.Black}
	}
	return blocks
}

// mustDescs builds Descriptions from literal block lists. Every caller
// in this file uses fixed, valid literals, so a construction failure
// here means the test itself is wrong — panicking surfaces that
// immediately rather than threading *testing.T through Example, which
// cannot accept one.
func mustDescs(lines ...[]descr.Block) []*descr.Description {
	out := make([]*descr.Description, len(lines))
	for i, blocks := range lines {
		d, err := descr.New(blocks)
		if err != nil {
			panic(fmt.Sprintf("descr.New(%v): %v", blocks, err))
		}
		out[i] = d
	}
	return out
}

func cellString(c color.Color) string { return fmt.Sprint(c) }

// Example demonstrates solving section 8 scenario 1 end to end through
// the facade: build a Session from row/column Descriptions, Run it,
// and read back the unique solution.
func Example() {
	rows := mustDescs(blackBlocks(1, 1), blackBlocks(1, 1), blackBlocks(3))
	cols := mustDescs(blackBlocks(3), blackBlocks(1), blackBlocks(3))

	s, err := nonogram.New(rows, cols, board.BlackAndWhite, nil)
	if err != nil {
		fmt.Println("New:", err)
		return
	}
	defer s.Close()

	result, err := s.Run(1, 0, 0)
	if err != nil {
		fmt.Println("Run:", err)
		return
	}
	for _, row := range result.Solutions[0] {
		for _, c := range row {
			fmt.Print(cellString(c))
		}
		fmt.Println()
	}
	// Output:
	// ⬛.⬛
	// ⬛.⬛
	// ⬛⬛⬛
}

// TestRun_ULetterScenario is section 8 scenario 1.
func TestRun_ULetterScenario(t *testing.T) {
	rows := mustDescs(blackBlocks(1, 1), blackBlocks(1, 1), blackBlocks(3))
	cols := mustDescs(blackBlocks(3), blackBlocks(1), blackBlocks(3))

	s, err := nonogram.New(rows, cols, board.BlackAndWhite, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	result, err := s.Run(2, 0, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 1 {
		t.Fatalf("len(Solutions) = %d, want 1", len(result.Solutions))
	}

	want := [][]color.Color{
		{color.Black, color.White, color.Black},
		{color.Black, color.White, color.Black},
		{color.Black, color.Black, color.Black},
	}
	got := result.Solutions[0]
	for y, row := range want {
		for x, c := range row {
			if got[y][x] != c {
				t.Errorf("cell (%d,%d) = %v, want %v", x, y, got[y][x], c)
			}
		}
	}
}

// TestRun_ILetterScenario is section 8 scenario 2: a 5x1 binary puzzle.
func TestRun_ILetterScenario(t *testing.T) {
	rows := mustDescs(blackBlocks(1), blackBlocks(), blackBlocks(1), blackBlocks(1), blackBlocks(1))
	cols := mustDescs(blackBlocks(1, 3))

	s, err := nonogram.New(rows, cols, board.BlackAndWhite, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	result, err := s.Run(2, 0, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 1 {
		t.Fatalf("len(Solutions) = %d, want 1", len(result.Solutions))
	}

	want := []color.Color{color.Black, color.White, color.Black, color.Black, color.Black}
	for y, c := range want {
		if got := result.Solutions[0][y][0]; got != c {
			t.Errorf("row %d = %v, want %v", y, got, c)
		}
	}
}

// TestRun_EmptyCluesScenario is section 8 scenario 3: a 2x2 puzzle with
// every clue empty must solve uniquely to all-white.
func TestRun_EmptyCluesScenario(t *testing.T) {
	rows := mustDescs(blackBlocks(), blackBlocks())
	cols := mustDescs(blackBlocks(), blackBlocks())

	s, err := nonogram.New(rows, cols, board.BlackAndWhite, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	result, err := s.Run(2, 0, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 1 {
		t.Fatalf("len(Solutions) = %d, want 1", len(result.Solutions))
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := result.Solutions[0][y][x]; got != color.White {
				t.Errorf("cell (%d,%d) = %v, want White", x, y, got)
			}
		}
	}
}

// TestNew_UnsatisfiableScenarioRejectedAtConstruction is section 8
// scenario 4. Here the row's block demands more cells than the board
// is wide, so section 6's Board constructor contract (reject only
// descriptions whose MinSpan exceeds the axis length) catches it
// immediately rather than needing a first propagation pass.
func TestNew_UnsatisfiableScenarioRejectedAtConstruction(t *testing.T) {
	rows := mustDescs(blackBlocks(3))
	cols := mustDescs(blackBlocks(1), blackBlocks(1))

	_, err := nonogram.New(rows, cols, board.BlackAndWhite, nil)
	if !errors.Is(err, board.ErrLineTooLong) {
		t.Fatalf("New err = %v, want %v", err, board.ErrLineTooLong)
	}
}

// TestRun_ColoredScenario is section 8 scenario 5: a 2x2 puzzle over a
// two-color palette with a unique solution.
func TestRun_ColoredScenario(t *testing.T) {
	const (
		red  color.ID = 2
		blue color.ID = 4
	)
	redBlock := func(n int) descr.Block { return descr.Block{Size: n, Color: color.Multi(red)} }
	blueBlock := func(n int) descr.Block { return descr.Block{Size: n, Color: color.Multi(blue)} }

	rows := mustDescs(
		[]descr.Block{redBlock(1), blueBlock(1)},
		[]descr.Block{blueBlock(1), redBlock(1)},
	)
	cols := mustDescs(
		[]descr.Block{redBlock(1), blueBlock(1)},
		[]descr.Block{blueBlock(1), redBlock(1)},
	)

	s, err := nonogram.New(rows, cols, board.MultiColorScheme, []color.ID{color.WhiteID, red, blue})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	result, err := s.Run(2, 0, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 1 {
		t.Fatalf("len(Solutions) = %d, want 1", len(result.Solutions))
	}

	want := [][]color.Color{
		{color.Multi(red), color.Multi(blue)},
		{color.Multi(blue), color.Multi(red)},
	}
	got := result.Solutions[0]
	for y, row := range want {
		for x, c := range row {
			if got[y][x] != c {
				t.Errorf("cell (%d,%d) = %v, want %v", x, y, got[y][x], c)
			}
		}
	}
}

// TestRun_MultipleSolutionsScenario is section 8 scenario 6: a 2x2
// binary puzzle with two valid diagonal solutions, both returned when
// max_solutions >= 2.
func TestRun_MultipleSolutionsScenario(t *testing.T) {
	rows := mustDescs(blackBlocks(1), blackBlocks(1))
	cols := mustDescs(blackBlocks(1), blackBlocks(1))

	s, err := nonogram.New(rows, cols, board.BlackAndWhite, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	result, err := s.Run(2, 0, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Solutions) != 2 {
		t.Fatalf("len(Solutions) = %d, want 2", len(result.Solutions))
	}
}
