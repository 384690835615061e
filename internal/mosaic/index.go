package mosaic

import (
	"sync"

	img "github.com/tilecraft/mosaicgen/internal/imaging"
)

// ColorIndex answers nearest-neighbor color queries over a tile catalog
// and spreads repeated matches across color-equivalent tiles.
//
// Internally it keeps two structures, deliberately separate:
//   - an immutable k-d tree over the catalog's unique average colors,
//     shared freely across goroutines without locking;
//   - one mutable bucket per unique color, holding the catalog indices
//     of all tiles with exactly that average color plus a wrapping
//     cursor, each guarded by its own mutex.
//
// Tiles are grouped by exact equality of their precomputed 8-bit
// average color. Averaging already collapses near-identical tiles, so
// no additional quantization is applied.
type ColorIndex struct {
	catalog *TileCatalog
	tree    *kdTree
	buckets []*colorBucket
}

// colorBucket holds the catalog indices (ascending) of every tile
// sharing one average color, and the cursor of the next tile to emit.
type colorBucket struct {
	mu      sync.Mutex
	indices []int
	cursor  int
}

// BuildIndex constructs a ColorIndex over a non-empty catalog.
//
// Buckets are created in order of first appearance in the catalog, so
// bucket N's smallest catalog index grows with N; the k-d tree's
// lowest-slot tie-break therefore resolves equidistant queries toward
// the bucket containing the lowest catalog index.
func BuildIndex(catalog *TileCatalog) *ColorIndex {
	slotOf := make(map[img.RGBColor]int, catalog.Len())
	var colors []img.RGBColor
	var buckets []*colorBucket

	for i := 0; i < catalog.Len(); i++ {
		c := catalog.Tile(i).Color
		slot, ok := slotOf[c]
		if !ok {
			slot = len(buckets)
			slotOf[c] = slot
			colors = append(colors, c)
			buckets = append(buckets, &colorBucket{})
		}
		buckets[slot].indices = append(buckets[slot].indices, i)
	}

	return &ColorIndex{
		catalog: catalog,
		tree:    newKDTree(colors),
		buckets: buckets,
	}
}

// NearestMatch returns the catalog index of the tile whose average
// color is closest (squared Euclidean distance) to the query color.
//
// The result is a pure function of the query: ties between equidistant
// colors resolve to the bucket with the lowest catalog index, and
// within that bucket the lowest index is returned. NearestMatch never
// touches cycling state and never fails for a non-empty catalog.
func (ci *ColorIndex) NearestMatch(c img.RGBColor) int {
	return ci.buckets[ci.tree.Nearest(c)].indices[0]
}

// CyclingPick resolves the query color to its nearest bucket, returns
// the tile at the bucket's cursor, and advances the cursor, wrapping
// modulo the bucket size. Repeated picks for the same matched color
// rotate through every tile sharing that color instead of reusing one.
//
// Safe for concurrent use; cursor advancement is serialized per bucket.
func (ci *ColorIndex) CyclingPick(c img.RGBColor) int {
	b := ci.buckets[ci.tree.Nearest(c)]
	b.mu.Lock()
	idx := b.indices[b.cursor]
	b.cursor = (b.cursor + 1) % len(b.indices)
	b.mu.Unlock()
	return idx
}

// ResetCursors rewinds every bucket's cursor to its first tile. The
// assembler calls this at the start of each run so identical inputs
// always produce identical output.
func (ci *ColorIndex) ResetCursors() {
	for _, b := range ci.buckets {
		b.mu.Lock()
		b.cursor = 0
		b.mu.Unlock()
	}
}

// Catalog returns the catalog this index was built over.
func (ci *ColorIndex) Catalog() *TileCatalog {
	return ci.catalog
}

// UniqueColors returns the number of distinct average colors (buckets).
func (ci *ColorIndex) UniqueColors() int {
	return len(ci.buckets)
}
