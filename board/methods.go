package board

import "github.com/AminoffZ/nonogrid/color"

// GetRow returns a copy of row index's current cell colors.
func (b *Board) GetRow(index int) []color.Color {
	b.muCells.RLock()
	defer b.muCells.RUnlock()

	start := b.linearIndex(index, 0)
	row := make([]color.Color, b.width)
	copy(row, b.cells[start:start+b.width])
	return row
}

// GetColumn returns a copy of column index's current cell colors.
func (b *Board) GetColumn(index int) []color.Color {
	b.muCells.RLock()
	defer b.muCells.RUnlock()

	col := make([]color.Color, b.height)
	for r := 0; r < b.height; r++ {
		col[r] = b.cells[b.linearIndex(r, index)]
	}
	return col
}

// SetRow overwrites row index with new (len(new) must equal Width())
// and invokes the on-set-line callback.
func (b *Board) SetRow(index int, new []color.Color) {
	b.muCells.Lock()
	start := b.linearIndex(index, 0)
	copy(b.cells[start:start+b.width], new)
	b.muCells.Unlock()

	if b.onSetLine != nil {
		b.onSetLine(false, index)
	}
}

// SetColumn overwrites column index with new (len(new) must equal
// Height()) and invokes the on-set-line callback.
func (b *Board) SetColumn(index int, new []color.Color) {
	b.muCells.Lock()
	for r, c := range new {
		b.cells[b.linearIndex(r, index)] = c
	}
	b.muCells.Unlock()

	if b.onSetLine != nil {
		b.onSetLine(true, index)
	}
}

// Cell returns the current color at p.
func (b *Board) Cell(p Point) color.Color {
	b.muCells.RLock()
	defer b.muCells.RUnlock()
	return b.cells[b.linearIndex(p.Y, p.X)]
}

// SetCell forcibly assigns new at p (used by probing/search trial
// assignment, which bypasses the usual monotone-refinement checks
// since it is always paired with a snapshot/restore) and invokes the
// on-change-color callback.
func (b *Board) SetCell(p Point, new color.Color) {
	b.muCells.Lock()
	b.cells[b.linearIndex(p.Y, p.X)] = new
	b.muCells.Unlock()

	if b.onChangeColor != nil {
		b.onChangeColor(p)
	}
}

// RemoveCandidate permanently subtracts bad from the cell at p via
// color.Color.Remove, and invokes the on-change-color callback. It
// fails if p is already solved or if removing bad would leave no
// candidates.
func (b *Board) RemoveCandidate(p Point, bad color.Color) error {
	b.muCells.Lock()
	cur := b.cells[b.linearIndex(p.Y, p.X)]
	next, err := cur.Remove(bad)
	if err != nil {
		b.muCells.Unlock()
		return err
	}
	b.cells[b.linearIndex(p.Y, p.X)] = next
	b.muCells.Unlock()

	if b.onChangeColor != nil {
		b.onChangeColor(p)
	}
	return nil
}

// IsSolvedFull reports whether every cell is solved.
func (b *Board) IsSolvedFull() bool {
	b.muCells.RLock()
	defer b.muCells.RUnlock()
	for _, c := range b.cells {
		if !c.IsSolved() {
			return false
		}
	}
	return true
}

// cellRate memoizes Color.SolutionRate per distinct color value, since
// the same candidate sets recur across a run's lifetime (ported from
// original_source/src/board.rs's cell_rate_memo).
func (b *Board) cellRate(c color.Color) float64 {
	key := c.String()
	if m, ok := c.(color.Multi); ok {
		// Multi.String renders every undecided set as "?"; key on the
		// full candidate set instead.
		key = "multi:" + m.Describe()
	}
	b.muRateMemo.Lock()
	defer b.muRateMemo.Unlock()
	if rate, ok := b.rateMemo[key]; ok {
		return rate
	}
	rate := c.SolutionRate(b.palette)
	b.rateMemo[key] = rate
	return rate
}

func (b *Board) lineSolutionRate(line []color.Color) float64 {
	var sum float64
	for _, c := range line {
		sum += b.cellRate(c)
	}
	return sum / float64(len(line))
}

// RowSolutionRate returns the mean Color.SolutionRate over row index's
// cells (for binary cells, the fraction that are solved).
func (b *Board) RowSolutionRate(index int) float64 { return b.lineSolutionRate(b.GetRow(index)) }

// ColSolutionRate returns the mean Color.SolutionRate over column
// index's cells (for binary cells, the fraction that are solved).
func (b *Board) ColSolutionRate(index int) float64 { return b.lineSolutionRate(b.GetColumn(index)) }

// SolutionRate returns the mean Color.SolutionRate over the whole grid
// (for binary cells, the fraction that are solved).
func (b *Board) SolutionRate() float64 {
	b.muCells.RLock()
	cells := make([]color.Color, len(b.cells))
	copy(cells, b.cells)
	b.muCells.RUnlock()
	return b.lineSolutionRate(cells)
}

// UnsolvedCells returns every unsolved cell's point, in row-major order.
func (b *Board) UnsolvedCells() []Point {
	b.muCells.RLock()
	defer b.muCells.RUnlock()

	pts := make([]Point, 0)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if !b.cells[b.linearIndex(y, x)].IsSolved() {
				pts = append(pts, Point{X: x, Y: y})
			}
		}
	}
	return pts
}

// Neighbours returns p's 4-neighbours that exist on the grid (2-4 of
// them depending on whether p sits on a border).
func (b *Board) Neighbours(p Point) []Point {
	res := make([]Point, 0, 4)
	if p.X > 0 {
		res = append(res, Point{p.X - 1, p.Y})
	}
	if p.X < b.width-1 {
		res = append(res, Point{p.X + 1, p.Y})
	}
	if p.Y > 0 {
		res = append(res, Point{p.X, p.Y - 1})
	}
	if p.Y < b.height-1 {
		res = append(res, Point{p.X, p.Y + 1})
	}
	return res
}

// UnsolvedNeighbours returns the subset of Neighbours(p) that are not
// yet solved.
func (b *Board) UnsolvedNeighbours(p Point) []Point {
	all := b.Neighbours(p)
	out := all[:0:0]
	for _, n := range all {
		if !b.Cell(n).IsSolved() {
			out = append(out, n)
		}
	}
	return out
}
