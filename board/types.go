// Package board implements Component C: the 2D cell grid shared by
// every solving stage, its per-row/per-column Descriptions, the
// line-cache de-duplication indices, and the synchronous callback
// hooks a renderer attaches to.
//
// Board follows the teacher's core.Graph shape: a small set of
// exported, lock-guarded mutators over unexported storage, so callers
// on a single control flow (Section 5: "single-threaded cooperative")
// can still share one *Board across goroutines if they choose to.
package board

import (
	"errors"
	"fmt"
	"sync"

	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/descr"
)

// Sentinel errors for Board construction and access.
var (
	// ErrLineTooLong indicates a row or column description's MinSpan
	// exceeds the axis length it would be placed on.
	ErrLineTooLong = errors.New("board: description's minimum span exceeds line length")

	// ErrIndexOutOfRange indicates a row/column/point index was invalid.
	ErrIndexOutOfRange = errors.New("board: index out of range")
)

// Scheme distinguishes black-and-white from multi-color puzzles. It is
// carried on Board purely as a tag for external callers (parsers,
// renderers); solving logic never branches on it directly — Color's
// own methods already encode the distinction.
type Scheme int

const (
	// BlackAndWhite puzzles use color.Binary cells.
	BlackAndWhite Scheme = iota
	// MultiColorScheme puzzles use color.Multi cells.
	MultiColorScheme
)

// Point is a single grid coordinate, (column, row).
type Point struct {
	X, Y int
}

// String renders the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// SetLineFunc is invoked synchronously after a row or column is
// overwritten via SetRow/SetColumn.
type SetLineFunc func(isColumn bool, index int)

// RestoreFunc is invoked synchronously after Restore replaces the
// whole cell grid from a snapshot.
type RestoreFunc func()

// ChangeColorFunc is invoked synchronously after a single cell's color
// changes via SetCell/RemoveCandidate.
type ChangeColorFunc func(p Point)

// Option configures a Board at construction time.
type Option func(*Board)

// WithPalette records the full set of color IDs appearing across the
// puzzle's clues, used to normalize Color.SolutionRate. Binary puzzles
// do not need this; multi-color puzzles should always supply it.
func WithPalette(ids []color.ID) Option {
	return func(b *Board) { b.palette = append([]color.ID(nil), ids...) }
}

// WithScheme tags the Board with which puzzle scheme produced it.
func WithScheme(s Scheme) Option {
	return func(b *Board) { b.scheme = s }
}

// Board is the 2D cell grid plus the per-line Descriptions, cache
// indices, and callbacks every solving stage shares.
//
// muCells guards cells; the Description slices and cache indices are
// immutable after New and need no lock.
type Board struct {
	muCells sync.RWMutex
	cells   []color.Color

	width, height int

	rows, cols []*descr.Description

	// rowCacheIdx[i] / colCacheIdx[i] is the index of row i's (column
	// i's) Description within the de-duplicated set of unique row
	// (column) Descriptions — lines with identical clues share a
	// line-cache slot. See original_source/src/board.rs.
	rowCacheIdx, colCacheIdx []int
	uniqueRows, uniqueCols   int

	palette []color.ID
	scheme  Scheme

	rateMemo   map[string]float64
	muRateMemo sync.Mutex

	onSetLine     SetLineFunc
	onRestore     RestoreFunc
	onChangeColor ChangeColorFunc
}

// New builds a Board from row and column Descriptions, seeding every
// cell to initial (the full candidate set for the puzzle's color
// scheme — color.Undefined for binary, a color.Multi over the full
// palette for multi-color). It rejects only descriptions whose
// MinSpan exceeds the axis length they'd sit on.
func New(rows, cols []*descr.Description, initial color.Color, opts ...Option) (*Board, error) {
	height := len(rows)
	width := len(cols)

	for i, r := range rows {
		if r.MinSpan() > width {
			return nil, fmt.Errorf("%w: row %d needs %d, has %d", ErrLineTooLong, i, r.MinSpan(), width)
		}
	}
	for i, c := range cols {
		if c.MinSpan() > height {
			return nil, fmt.Errorf("%w: column %d needs %d, has %d", ErrLineTooLong, i, c.MinSpan(), height)
		}
	}

	cells := make([]color.Color, width*height)
	for i := range cells {
		cells[i] = initial
	}

	rowCacheIdx, uniqueRows := dedupIndices(rows)
	colCacheIdx, uniqueCols := dedupIndices(cols)

	b := &Board{
		cells:       cells,
		width:       width,
		height:      height,
		rows:        rows,
		cols:        cols,
		rowCacheIdx: rowCacheIdx,
		colCacheIdx: colCacheIdx,
		uniqueRows:  uniqueRows,
		uniqueCols:  uniqueCols,
		rateMemo:    make(map[string]float64),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// dedupIndices maps each description to the index it would occupy in
// a de-duplicated (by Description.Key) list of descriptions, without
// needing that list to outlive the call.
func dedupIndices(descs []*descr.Description) ([]int, int) {
	seen := make(map[string]int, len(descs))
	idx := make([]int, len(descs))
	next := 0
	for i, d := range descs {
		key := d.Key()
		slot, ok := seen[key]
		if !ok {
			slot = next
			seen[key] = slot
			next++
		}
		idx[i] = slot
	}
	return idx, next
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Palette returns the full set of color IDs recorded via WithPalette.
func (b *Board) Palette() []color.ID { return b.palette }

// Scheme returns the puzzle scheme tag recorded via WithScheme.
func (b *Board) Scheme() Scheme { return b.scheme }

// RowDescription returns row i's Description.
func (b *Board) RowDescription(i int) *descr.Description { return b.rows[i] }

// ColDescription returns column i's Description.
func (b *Board) ColDescription(i int) *descr.Description { return b.cols[i] }

// RowCacheIndex returns the de-duplicated line-cache slot for row i.
func (b *Board) RowCacheIndex(i int) int { return b.rowCacheIdx[i] }

// ColCacheIndex returns the de-duplicated line-cache slot for column i.
func (b *Board) ColCacheIndex(i int) int { return b.colCacheIdx[i] }

// UniqueRowCount returns the number of distinct row clue sequences.
func (b *Board) UniqueRowCount() int { return b.uniqueRows }

// UniqueColCount returns the number of distinct column clue sequences.
func (b *Board) UniqueColCount() int { return b.uniqueCols }

// SetCallbacks attaches the renderer hooks. Callbacks must not re-enter
// Board mutation; they are invoked synchronously inside the mutator
// that triggered them.
func (b *Board) SetCallbacks(onSetLine SetLineFunc, onRestore RestoreFunc, onChangeColor ChangeColorFunc) {
	b.onSetLine = onSetLine
	b.onRestore = onRestore
	b.onChangeColor = onChangeColor
}

func (b *Board) linearIndex(row, col int) int { return row*b.width + col }
