// Package nonogram is the facade Section 6 describes: it wires
// board+propagate+probe+search behind a single Run call, exposes the
// Board constructor and renderer callback hooks external parsers and
// renderers consume, and logs line-cache statistics on completion the
// way the teacher's examples/*.go binaries log run diagnostics — the
// one place in this module stdlib log is used at all.
package nonogram

import (
	"log"
	"time"

	"github.com/AminoffZ/nonogrid/board"
	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/descr"
	"github.com/AminoffZ/nonogrid/linecache"
	"github.com/AminoffZ/nonogrid/search"
)

// defaultCacheCapacity bounds ristretto's admission policy for a
// session's row/column line cache. Generous enough to hold every
// distinct line of a few-hundred-cell puzzle without tuning.
const defaultCacheCapacity = 4096

// Grid is a solved board's cells, row-major: Grid[y][x].
type Grid [][]color.Color

// Result is Section 6's "run(...) → { solutions, search_tree_log }".
type Result struct {
	Solutions []Grid
	SearchLog []search.NodeLog
	// Incomplete reports Section 7's BudgetExhausted condition: a
	// timeout or depth limit cut the search short. Not an error.
	Incomplete bool
}

// Session owns one puzzle's Board and its line-solution cache for the
// lifetime of one solving run. Callers that also want to drive a
// renderer should call SetCallbacks before Run.
type Session struct {
	board *board.Board
	cache *linecache.Cache
}

// New builds a Session from row and column Descriptions — Section 6's
// Board constructor, rejecting only descriptions whose MinSpan exceeds
// the axis length they'd sit on (board.New's own contract).
func New(rows, cols []*descr.Description, scheme board.Scheme, palette []color.ID) (*Session, error) {
	initial := color.Color(color.Undefined)
	if scheme == board.MultiColorScheme {
		initial = color.NewMulti(palette...)
	}

	b, err := board.New(rows, cols, initial, board.WithScheme(scheme), board.WithPalette(palette))
	if err != nil {
		return nil, err
	}
	cache, err := linecache.New(defaultCacheCapacity)
	if err != nil {
		return nil, err
	}
	return &Session{board: b, cache: cache}, nil
}

// SetCallbacks wires a renderer's hooks to the session's Board —
// Section 6's "Renderer interface (exposed)", invoked synchronously
// after each Board mutation.
func (s *Session) SetCallbacks(onSetLine board.SetLineFunc, onRestore board.RestoreFunc, onChangeColor board.ChangeColorFunc) {
	s.board.SetCallbacks(onSetLine, onRestore, onChangeColor)
}

// Board exposes the underlying Board for callers that need direct
// read access (e.g. to render the in-progress grid between searches).
func (s *Session) Board() *board.Board { return s.board }

// Close releases the session's line cache. Safe to call once, after
// the last Run.
func (s *Session) Close() { s.cache.Close() }

// Run is Section 6's search entry point: run(board, max_solutions,
// timeout_s, max_depth) → { solutions, search_tree_log }. A
// non-positive timeout or maxDepth means "unbounded" on that axis.
func (s *Session) Run(maxSolutions int, timeout time.Duration, maxDepth int) (Result, error) {
	opts := []search.Option{search.WithMaxSolutions(maxSolutions)}
	if timeout > 0 {
		opts = append(opts, search.WithTimeout(timeout))
	}
	if maxDepth > 0 {
		opts = append(opts, search.WithMaxDepth(maxDepth))
	}

	res, err := search.Run(s.board, s.cache, opts...)
	s.logCacheStats()
	if err != nil {
		return Result{}, err
	}

	grids := make([]Grid, len(res.Solutions))
	for i, snap := range res.Solutions {
		grids[i] = s.gridFromSnapshot(snap)
	}
	return Result{Solutions: grids, SearchLog: res.Log, Incomplete: res.Incomplete}, nil
}

// gridFromSnapshot restores snap onto the session's board just long
// enough to read every cell off it. Board has no exported accessor
// into Snapshot's own storage, so this is the only way to materialize
// a Grid from one of search's recorded solutions.
func (s *Session) gridFromSnapshot(snap board.Snapshot) Grid {
	s.board.Restore(snap)

	grid := make(Grid, s.board.Height())
	for y := range grid {
		row := make([]color.Color, s.board.Width())
		for x := range row {
			row[x] = s.board.Cell(board.Point{X: x, Y: y})
		}
		grid[y] = row
	}
	return grid
}

func (s *Session) logCacheStats() {
	stats := s.cache.Stats()
	log.Printf("nonogram: line cache size=%d hits=%d misses=%d hit_rate=%.2f",
		stats.Size, stats.Hits, stats.Misses, stats.HitRate)
}
