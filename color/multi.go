package color

import (
	"fmt"
	"sort"
	"strings"
)

// WhiteID is the reserved bit value for the background color; every
// palette used to build a Multi value must include it.
const WhiteID ID = 1

// Multi is the color type for multi-color puzzles: a bitmask over a
// small palette of color IDs, each of which is itself a single set
// bit (1, 2, 4, ...). A Multi value is solved iff its mask has exactly
// one bit set.
type Multi uint64

var _ Color = Multi(0)

// NewMulti composes a candidate set from individual color IDs.
func NewMulti(ids ...ID) Multi {
	bits := make([]uint64, len(ids))
	for i, id := range ids {
		bits[i] = uint64(id)
	}
	return Multi(fromPowersOf2(bits))
}

// ids returns the individual color IDs the receiver still allows.
func (m Multi) ids() []ID {
	bits := powersOf2(uint64(m))
	ids := make([]ID, len(bits))
	for i, b := range bits {
		ids[i] = ID(b)
	}
	return ids
}

// String renders the solved color's id, or '?' for an undecided cell.
func (m Multi) String() string {
	ids := m.ids()
	if len(ids) == 1 {
		return fmt.Sprintf("%d", ids[0])
	}
	return "?"
}

// Blank returns the background color within the same mask's palette
// is unknown from the value alone, so Blank always yields WhiteID.
func (m Multi) Blank() Color { return Multi(WhiteID) }

// IsSolved reports whether the mask has exactly one bit set.
func (m Multi) IsSolved() bool { return m != 0 && m&(m-1) == 0 }

// IsRefinement reports whether m's candidate set is a proper subset of
// old's (ok=true), identical (ok=false), or neither (ErrIncomparable).
func (m Multi) IsRefinement(old Color) (bool, error) {
	o, ok := old.(Multi)
	if !ok {
		return false, fmt.Errorf("color: %w: old value is not Multi", ErrIncomparable)
	}
	if m == o {
		return false, nil
	}
	if m&o == m {
		// m is a subset of o
		return true, nil
	}
	if m&o == o {
		return false, fmt.Errorf("color: %w: %v is less specific than %v", ErrIncomparable, m, o)
	}
	return false, fmt.Errorf("color: %w: %v and %v share no refinement order", ErrIncomparable, m, o)
}

// Meet intersects two candidate masks.
func (m Multi) Meet(other Color) (Color, error) {
	o, ok := other.(Multi)
	if !ok {
		return nil, fmt.Errorf("color: %w: other value is not Multi", ErrIncomparable)
	}
	result := m & o
	if result == 0 {
		return nil, fmt.Errorf("color: %w: %v and %v share no color", ErrEmptyResult, m, o)
	}
	return result, nil
}

// Remove subtracts other's candidates from m's mask. m must be unsolved.
func (m Multi) Remove(other Color) (Color, error) {
	if m.IsSolved() {
		return nil, fmt.Errorf("%w: cannot unset colors from already-solved cell %v", ErrAlreadySolved, m)
	}
	o, ok := other.(Multi)
	if !ok {
		return nil, fmt.Errorf("color: %w: other value is not Multi", ErrIncomparable)
	}
	result := m &^ o
	if result == 0 {
		return nil, fmt.Errorf("%w: removing %v from %v leaves no candidates", ErrEmptyResult, o, m)
	}
	return result, nil
}

// Variants enumerates each single-bit refinement of the mask.
func (m Multi) Variants() []Color {
	bits := powersOf2(uint64(m))
	out := make([]Color, len(bits))
	for i, b := range bits {
		out[i] = Multi(b)
	}
	return out
}

// SolutionRate implements rate = (N - n) / (N - 1), where N is the
// full palette size and n is the number of candidates still allowed
// by m, restricted to colors actually present in palette.
func (m Multi) SolutionRate(palette []ID) float64 {
	full := make(map[ID]struct{}, len(palette))
	for _, id := range palette {
		full[id] = struct{}{}
	}

	var current int
	for _, id := range m.ids() {
		if _, ok := full[id]; ok {
			current++
		}
	}

	if current == 0 {
		return 0.0
	}
	if current == 1 {
		return 1.0
	}

	fullSize := len(full)
	if fullSize <= 1 {
		return 1.0
	}
	return float64(fullSize-current) / float64(fullSize-1)
}

// Describe renders the full candidate set, for diagnostics.
func (m Multi) Describe() string {
	ids := m.ids()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
