// Package nonogrid is a nonogram (picross) solving engine: feed it row
// and column clues, get back every solution up to a quota, with partial
// credit if a timeout or depth budget cuts the search short.
//
// Everything lives under one subpackage per concern:
//
//	color/      — candidate-set algebra for binary and multi-color cells
//	descr/      — row/column clue descriptions (blocks, partial sums, spans)
//	board/      — the shared cell grid, its clues, and renderer callbacks
//	linecache/  — bounded cache of (clue, line state) → solved line
//	linesolve/  — single-line left/right-align overlap solver
//	propagate/  — priority-queued fixed-point driver over every line
//	probe/      — trial-assignment contradiction harvesting
//	search/     — backtracking over probe's most-informative cell
//	nonogram/   — the facade: Board construction, Run, solutions
//
// Start with nonogram.New and nonogram.Session.Run; the subpackages are
// exported for callers that want to drive propagation or probing
// directly (a renderer animating line-by-line progress, for instance).
//
//	go get github.com/AminoffZ/nonogrid
package nonogrid
