// Package propagate implements Component F: repeatedly run the line
// solver over a Board's rows and columns, in priority order, until no
// line job remains — the single-puzzle fixed-point propagation pass
// that probing and search both build on.
//
// A job is a (row-or-column, index) pair. Solving one line that
// changes a cell schedules every line crossing that cell at a higher
// priority value than the job that triggered it, so propagation
// spreads outward breadth-first rather than fixating on one line.
// Grounded on original_source/src/solver/propagation.rs's job queue
// and the teacher's bfs.walker loop-with-hooks shape (bfs/bfs.go).
package propagate

import (
	"context"

	"github.com/AminoffZ/nonogrid/board"
	"github.com/AminoffZ/nonogrid/color"
	"github.com/AminoffZ/nonogrid/descr"
	"github.com/AminoffZ/nonogrid/linecache"
	"github.com/AminoffZ/nonogrid/linesolve"
)

// Result summarizes one Propagate call.
type Result struct {
	LinesSolved int
	Changed     []board.Point
}

// Option configures a propagation run.
type Option func(*walker)

// WithContext threads a cancellation context through the run; checked
// once per job, matching bfs.walker's cadence.
func WithContext(ctx context.Context) Option {
	return func(w *walker) { w.ctx = ctx }
}

// LineHookFunc is invoked synchronously after every line job, before
// its follow-up jobs are scheduled.
type LineHookFunc func(job Job, changed []board.Point)

// WithLineHook attaches a diagnostic/render hook.
func WithLineHook(fn LineHookFunc) Option {
	return func(w *walker) { w.onLineSolved = fn }
}

type walker struct {
	board *board.Board
	cache *linecache.Cache
	ctx   context.Context

	queue        *jobQueue
	onLineSolved LineHookFunc

	res Result
}

// Propagate drives line-solving to a fixed point across rows and cols
// (nil means "every row"/"every column"). It returns as soon as a line
// job finds no valid placement, wrapping linesolve.ErrContradiction.
func Propagate(b *board.Board, cache *linecache.Cache, rows, cols []int, opts ...Option) (Result, error) {
	w := &walker{
		board: b,
		cache: cache,
		ctx:   context.Background(),
		queue: newJobQueue(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if rows == nil {
		rows = sequence(b.Height())
	}
	if cols == nil {
		cols = sequence(b.Width())
	}
	for _, r := range rows {
		w.queue.push(Job{Column: false, Index: r}, 0)
	}
	for _, c := range cols {
		w.queue.push(Job{Column: true, Index: c}, 0)
	}

	return w.res, w.loop()
}

func sequence(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func (w *walker) loop() error {
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		job, priority, ok := w.queue.pop()
		if !ok {
			return nil
		}

		changed, err := w.solveJob(job)
		if err != nil {
			return err
		}
		w.res.LinesSolved++
		w.res.Changed = append(w.res.Changed, changed...)

		if w.onLineSolved != nil {
			w.onLineSolved(job, changed)
		}

		for _, crossJob := range w.crossJobs(job, changed) {
			w.queue.push(crossJob, priority+1)
		}
	}
}

// solveJob runs the line solver for job, using and populating the
// cache, applies the refined state to the board, and returns the
// points that actually changed.
func (w *walker) solveJob(job Job) ([]board.Point, error) {
	var (
		axis   = linecache.Row
		desc   *descr.Description
		state  []color.Color
		lineID int
	)
	if job.Column {
		axis = linecache.Col
		desc = w.board.ColDescription(job.Index)
		state = w.board.GetColumn(job.Index)
		lineID = w.board.ColCacheIndex(job.Index)
	} else {
		desc = w.board.RowDescription(job.Index)
		state = w.board.GetRow(job.Index)
		lineID = w.board.RowCacheIndex(job.Index)
	}

	key := linecache.Key(axis, lineID, state)
	refined, err := w.resolve(key, desc, state)
	if err != nil {
		return nil, err
	}

	changed := diff(state, refined, job)
	if len(changed) == 0 {
		return nil, nil
	}

	if job.Column {
		w.board.SetColumn(job.Index, refined)
	} else {
		w.board.SetRow(job.Index, refined)
	}
	return changed, nil
}

func (w *walker) resolve(key string, desc *descr.Description, state []color.Color) ([]color.Color, error) {
	if entry, ok := w.cache.Lookup(key); ok {
		if entry.Err != nil {
			return nil, entry.Err
		}
		return entry.Refined, nil
	}

	refined, err := linesolve.Solve(desc, state)
	if err != nil {
		w.cache.Store(key, linecache.Entry{Err: err})
		return nil, err
	}
	w.cache.Store(key, linecache.Entry{Refined: refined})
	return refined, nil
}

func diff(before, after []color.Color, job Job) []board.Point {
	out := make([]board.Point, 0)
	for i := range before {
		if before[i] == after[i] {
			continue
		}
		if job.Column {
			out = append(out, board.Point{X: job.Index, Y: i})
		} else {
			out = append(out, board.Point{X: i, Y: job.Index})
		}
	}
	return out
}

// crossJobs returns the jobs for the lines perpendicular to job that
// cross a changed cell — these are exactly the lines that might now
// have new information to exploit.
func (w *walker) crossJobs(job Job, changed []board.Point) []Job {
	jobs := make([]Job, 0, len(changed))
	for _, p := range changed {
		if job.Column {
			jobs = append(jobs, Job{Column: false, Index: p.Y})
		} else {
			jobs = append(jobs, Job{Column: true, Index: p.X})
		}
	}
	return jobs
}
