// Package descr implements Component B: the ordered sequence of
// colored blocks describing one row or column, and the length/spacing
// math the line solver and board both need (partial sums, minimum
// span, leftmost feasible start offsets).
package descr

import (
	"errors"

	"github.com/AminoffZ/nonogrid/color"
)

// ErrNegativeSize is returned when a Block is built with a negative size.
var ErrNegativeSize = errors.New("descr: block size must be non-negative")

// Block is one contiguous run of a single color within a line.
type Block struct {
	Size  int
	Color color.Color
}

// Description is an ordered sequence of blocks for one row or column,
// plus quantities derived from it and cached at construction time.
//
// Description values are immutable once built and safe to share: Board
// hands the same *Description to every row (or column) with identical
// clues, which is what makes line-cache de-duplication possible.
type Description struct {
	Blocks []Block

	// partialSums[i] is the minimum length needed to place
	// Blocks[0..=i], including the mandatory gaps between them.
	partialSums []int

	// blockStarts[i] is the leftmost feasible start offset for
	// Blocks[i], derived from partialSums.
	blockStarts []int
}

// New builds a Description and eagerly computes its derived quantities.
func New(blocks []Block) (*Description, error) {
	for _, b := range blocks {
		if b.Size < 0 {
			return nil, ErrNegativeSize
		}
	}

	d := &Description{Blocks: blocks}
	d.partialSums = computePartialSums(blocks)
	d.blockStarts = computeBlockStarts(d.partialSums, blocks)
	return d, nil
}

// computePartialSums returns, for binary-style descriptions, the
// cumulative size with one mandatory gap before every block but the
// first; for colored descriptions, the gap before block i is only
// mandatory when Blocks[i-1] and Blocks[i] share the same color.
func computePartialSums(blocks []Block) []int {
	sums := make([]int, len(blocks))
	var running int
	for i, b := range blocks {
		gap := 0
		if i > 0 && blocks[i-1].Color == b.Color {
			gap = 1
		}
		running += b.Size + gap
		sums[i] = running
	}
	return sums
}

// computeBlockStarts derives, for each block, the leftmost offset at
// which it can start assuming every earlier block sits as far left as
// possible.
func computeBlockStarts(partialSums []int, blocks []Block) []int {
	starts := make([]int, len(blocks))
	for i, b := range blocks {
		starts[i] = partialSums[i] - b.Size
	}
	return starts
}

// PartialSums returns the cached cumulative minimum lengths.
func (d *Description) PartialSums() []int { return d.partialSums }

// BlockStarts returns the cached leftmost feasible start offsets.
func (d *Description) BlockStarts() []int { return d.blockStarts }

// MinSpan is the minimum line length required to place every block,
// i.e. the last partial sum (0 for an empty description).
func (d *Description) MinSpan() int {
	if len(d.partialSums) == 0 {
		return 0
	}
	return d.partialSums[len(d.partialSums)-1]
}

// Empty reports whether the description has no blocks at all.
func (d *Description) Empty() bool { return len(d.Blocks) == 0 }

// Equal reports whether two descriptions carry the same block sequence
// (same sizes and equal Color values). Board de-duplicates line-cache
// slots by Key, not by Equal.
func Equal(a, b *Description) bool {
	if len(a.Blocks) != len(b.Blocks) {
		return false
	}
	for i := range a.Blocks {
		if a.Blocks[i].Size != b.Blocks[i].Size {
			return false
		}
		if a.Blocks[i].Color != b.Blocks[i].Color {
			return false
		}
	}
	return true
}

// Key renders a Description into a stable string usable as a
// de-duplication / cache key component.
func (d *Description) Key() string {
	buf := make([]byte, 0, len(d.Blocks)*4)
	for i, b := range d.Blocks {
		if i > 0 {
			buf = append(buf, ';')
		}
		buf = appendInt(buf, b.Size)
		if b.Color != nil {
			buf = append(buf, ':')
			buf = append(buf, b.Color.String()...)
		}
	}
	return string(buf)
}

func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	// reverse the appended digits
	end := len(buf) - 1
	for i, j := start, end; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
