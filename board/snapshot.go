package board

import "github.com/AminoffZ/nonogrid/color"

// Snapshot is a cell-vector copy used by probing and backtracking to
// guarantee a restore on every exit path. Snapshots are short-lived
// and paired 1:1 with a Restore call.
type Snapshot struct {
	cells []color.Color
}

// MakeSnapshot copies the current cell grid.
func (b *Board) MakeSnapshot() Snapshot {
	b.muCells.RLock()
	defer b.muCells.RUnlock()

	cells := make([]color.Color, len(b.cells))
	copy(cells, b.cells)
	return Snapshot{cells: cells}
}

// Restore replaces the whole cell grid from s and invokes the
// on-restore callback. s must have come from MakeSnapshot on this
// Board (or a Clone of it, which shares dimensions).
func (b *Board) Restore(s Snapshot) {
	b.muCells.Lock()
	copy(b.cells, s.cells)
	b.muCells.Unlock()

	if b.onRestore != nil {
		b.onRestore()
	}
}

// Differs reports whether the current grid differs from s.
func (b *Board) Differs(s Snapshot) bool {
	b.muCells.RLock()
	defer b.muCells.RUnlock()
	for i, c := range b.cells {
		if c != s.cells[i] {
			return true
		}
	}
	return false
}

// Clone makes a deep copy of the cell grid, sharing Descriptions and
// cache indices but dropping callbacks — mirroring core.Graph's
// Clone() and the Rust original's Board::clone (which intentionally
// drops its line caches on clone; callers rebuild them opportunistically).
func (b *Board) Clone() *Board {
	b.muCells.RLock()
	cells := make([]color.Color, len(b.cells))
	copy(cells, b.cells)
	b.muCells.RUnlock()

	return &Board{
		cells:       cells,
		width:       b.width,
		height:      b.height,
		rows:        b.rows,
		cols:        b.cols,
		rowCacheIdx: b.rowCacheIdx,
		colCacheIdx: b.colCacheIdx,
		uniqueRows:  b.uniqueRows,
		uniqueCols:  b.uniqueCols,
		palette:     b.palette,
		scheme:      b.scheme,
		rateMemo:    make(map[string]float64),
	}
}
