package probe

import (
	"container/heap"

	"github.com/AminoffZ/nonogrid/board"
)

// pointEntry is one slot in pointQueue's backing slice.
type pointEntry struct {
	point    board.Point
	priority float64
	pos      int
}

// pointQueue is a max-heap of cell points ordered by priority — unlike
// propagate's job queue, probing always tries its most promising point
// first, where "promising" means "closer to done" (see unsolvedQueue).
type pointQueue struct {
	items []*pointEntry
	pos   map[board.Point]*pointEntry
}

func newPointQueue() *pointQueue {
	return &pointQueue{pos: make(map[board.Point]*pointEntry)}
}

func (q *pointQueue) push(p board.Point, priority float64) {
	if e, ok := q.pos[p]; ok {
		e.priority = priority
		heap.Fix(q, e.pos)
		return
	}
	e := &pointEntry{point: p, priority: priority}
	q.pos[p] = e
	heap.Push(q, e)
}

func (q *pointQueue) pop() (board.Point, float64, bool) {
	if len(q.items) == 0 {
		return board.Point{}, 0, false
	}
	e := heap.Pop(q).(*pointEntry)
	delete(q.pos, e.point)
	return e.point, e.priority, true
}

func (q *pointQueue) Len() int { return len(q.items) }

// Less makes this a max-heap: the highest priority is popped first.
func (q *pointQueue) Less(i, j int) bool { return q.items[i].priority > q.items[j].priority }

func (q *pointQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].pos = i
	q.items[j].pos = j
}

func (q *pointQueue) Push(x any) {
	e := x.(*pointEntry)
	e.pos = len(q.items)
	q.items = append(q.items, e)
}

func (q *pointQueue) Pop() any {
	old := q.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return e
}
