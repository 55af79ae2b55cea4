// Package linecache implements Component D: a bounded associative
// store mapping (axis, line-id, line-state) to either a refined line
// state or a line contradiction, exploiting that identical clues
// recur on many rows/columns of the same puzzle.
//
// Storage is backed by ristretto, a bounded admission+eviction cache
// (pulled into the example pack by hailam-chessplay's badger-based
// storage layer); hit/miss accounting is kept in our own atomic
// counters rather than ristretto's asynchronous Metrics, so that the
// "recomputing yields the same cached value" coherence property can
// be asserted without racing the cache's internal buffers.
package linecache

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/AminoffZ/nonogrid/color"
)

// Axis tells row lines from column lines; it is part of every Key, so
// rows and columns can share one Cache without colliding.
type Axis int

const (
	Row Axis = iota
	Col
)

// String renders the axis name, used in Key for human-readable diagnostics.
func (a Axis) String() string {
	if a == Col {
		return "col"
	}
	return "row"
}

// Entry is the cached outcome of solving one line: either a refined
// line state, or the error explaining why no placement exists.
type Entry struct {
	Refined []color.Color
	Err     error
}

// Cache is the bounded (axis, line-id, line-state) -> Entry store. One
// Cache serves both rows and columns (a nonogram.Session holds a single
// one); the axis in each Key keeps their entries apart.
type Cache struct {
	store *ristretto.Cache[string, Entry]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New builds a Cache with the given capacity hint (number of distinct
// entries it should comfortably hold before eviction kicks in).
func New(capacity int) (*Cache, error) {
	if capacity < 1 {
		capacity = 1
	}
	store, err := ristretto.NewCache(&ristretto.Config[string, Entry]{
		NumCounters: int64(capacity) * 10,
		MaxCost:     int64(capacity),
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("linecache: building cache: %w", err)
	}
	return &Cache{store: store}, nil
}

// Key renders a stable cache key from a line-cache index (Board's
// RowCacheIndex/ColCacheIndex, which de-duplicates identical clues)
// and the line's current candidate-set state.
func Key(axis Axis, lineID int, state []color.Color) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s#%d:", axis, lineID)
	for i, c := range state {
		if i > 0 {
			b.WriteByte(',')
		}
		if m, ok := c.(color.Multi); ok {
			// Multi.String renders every undecided set as "?"; write the
			// mask so distinct candidate sets get distinct keys.
			fmt.Fprintf(&b, "%d", uint64(m))
		} else {
			b.WriteString(c.String())
		}
	}
	return b.String()
}

// Lookup returns the cached Entry for key, if present.
func (c *Cache) Lookup(key string) (Entry, bool) {
	entry, ok := c.store.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return entry, ok
}

// Store records entry under key. Cost is always 1: every entry is one
// line-state's worth of cells, small and roughly uniform in size.
//
// ristretto applies Set asynchronously via an internal buffer, so a
// Lookup for key issued right after Store can race and miss even
// though the entry was logically written — which would defeat the
// entire point of Component D, a duplicate clue failing to hit its
// own just-stored entry. Wait blocks until the buffered write has been
// applied, trading a little latency here for making Store's effect
// visible to the very next Lookup.
func (c *Cache) Store(key string, entry Entry) {
	c.store.Set(key, entry, 1)
	c.store.Wait()
}

// Stats reports the cache's observed size, hit count, and hit rate.
type Stats struct {
	Size    int
	Hits    uint64
	Misses  uint64
	HitRate float64
}

// Stats returns diagnostic counters for this Cache.
func (c *Cache) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses

	var rate float64
	if total > 0 {
		rate = float64(hits) / float64(total)
	}

	size := 0
	if m := c.store.Metrics; m != nil {
		size = int(m.KeysAdded() - m.KeysEvicted())
	}

	return Stats{Size: size, Hits: hits, Misses: misses, HitRate: rate}
}

// Close releases the cache's background goroutines.
func (c *Cache) Close() { c.store.Close() }
