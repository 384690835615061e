package mosaic

import (
	"sort"

	img "github.com/tilecraft/mosaicgen/internal/imaging"
)

// kdTree is a balanced k-d tree over 3-D color space. It indexes
// "slots" (positions in a caller-owned color slice) rather than colors
// themselves, so the caller can associate arbitrary data with each
// point. The tree is built once and is read-only afterwards.
//
// Slot order is significant: when two points are equidistant from a
// query, Nearest returns the lower slot. Callers that need a specific
// tie-break (lowest catalog index, here) arrange their slots so that
// the preferred point has the lower slot number.
type kdTree struct {
	colors []img.RGBColor
	nodes  []kdNode
	root   int
}

type kdNode struct {
	slot  int // index into colors
	axis  int // splitting axis: 0=R, 1=G, 2=B
	left  int // node index, -1 when absent
	right int
}

// newKDTree builds a balanced tree by recursive median splitting.
// The colors slice is retained, not copied; it must not change.
func newKDTree(colors []img.RGBColor) *kdTree {
	t := &kdTree{
		colors: colors,
		nodes:  make([]kdNode, 0, len(colors)),
	}

	slots := make([]int, len(colors))
	for i := range slots {
		slots[i] = i
	}
	t.root = t.build(slots, 0)
	return t
}

func (t *kdTree) build(slots []int, depth int) int {
	if len(slots) == 0 {
		return -1
	}

	axis := depth % 3
	// Secondary sort by slot keeps construction deterministic when
	// several points share a coordinate.
	sort.Slice(slots, func(a, b int) bool {
		ca := t.colors[slots[a]].Channel(axis)
		cb := t.colors[slots[b]].Channel(axis)
		if ca != cb {
			return ca < cb
		}
		return slots[a] < slots[b]
	})

	median := len(slots) / 2
	n := kdNode{slot: slots[median], axis: axis}
	idx := len(t.nodes)
	t.nodes = append(t.nodes, n)

	left := t.build(slots[:median], depth+1)
	right := t.build(slots[median+1:], depth+1)
	t.nodes[idx].left = left
	t.nodes[idx].right = right
	return idx
}

// Nearest returns the slot whose color has the smallest squared
// Euclidean distance to the query, preferring the lowest slot on ties.
// The tree must be non-empty.
func (t *kdTree) Nearest(query img.RGBColor) int {
	bestSlot := -1
	bestDist := int(^uint(0) >> 1)
	t.search(t.root, query, &bestSlot, &bestDist)
	return bestSlot
}

func (t *kdTree) search(node int, query img.RGBColor, bestSlot, bestDist *int) {
	if node == -1 {
		return
	}
	n := t.nodes[node]

	d := query.DistanceSq(t.colors[n.slot])
	if d < *bestDist || (d == *bestDist && n.slot < *bestSlot) {
		*bestDist = d
		*bestSlot = n.slot
	}

	split := int(t.colors[n.slot].Channel(n.axis))
	q := int(query.Channel(n.axis))

	near, far := n.left, n.right
	if q > split {
		near, far = n.right, n.left
	}

	t.search(near, query, bestSlot, bestDist)

	// The far subtree can still hold an equally close point, so prune
	// only when the splitting plane is strictly farther than the best.
	plane := q - split
	if plane*plane <= *bestDist {
		t.search(far, query, bestSlot, bestDist)
	}
}
