package geo

import "math"

type snapKey struct {
	ix, iy int
}

// SnapIndex clusters nearby points into integer-identified nodes. Points
// added within tolerance of an existing node merge into it; everything
// else allocates a new node. Lookup goes through a uniform grid sized to
// the tolerance, so adding n points costs O(n) instead of O(n2).
//
// Node ids are assigned in insertion order, which keeps every consumer
// deterministic for a given input sequence.
type SnapIndex struct {
	tol  float64
	grid map[snapKey][]int
	pts  []Point
}

// NewSnapIndex creates an index with the given merge tolerance. A
// non-positive tolerance still works but only merges exact duplicates.
func NewSnapIndex(tol float64) *SnapIndex {
	if tol <= 0 {
		tol = 1e-9
	}
	return &SnapIndex{
		tol:  tol,
		grid: make(map[snapKey][]int),
	}
}

func (ix *SnapIndex) keyFor(p Point) snapKey {
	return snapKey{
		ix: int(math.Floor(p.X / ix.tol)),
		iy: int(math.Floor(p.Y / ix.tol)),
	}
}

// Add returns the node id for p, merging into the nearest existing node
// within tolerance. The 3x3 cell neighborhood is searched so points on
// opposite sides of a cell border still find each other.
func (ix *SnapIndex) Add(p Point) int {
	k := ix.keyFor(p)
	best := -1
	bestDist := ix.tol
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for _, id := range ix.grid[snapKey{ix: k.ix + dx, iy: k.iy + dy}] {
				if d := p.Distance(ix.pts[id]); d <= bestDist {
					best = id
					bestDist = d
				}
			}
		}
	}
	if best >= 0 {
		return best
	}
	id := len(ix.pts)
	ix.pts = append(ix.pts, p)
	ix.grid[k] = append(ix.grid[k], id)
	return id
}

// Len returns the number of distinct nodes.
func (ix *SnapIndex) Len() int {
	return len(ix.pts)
}

// At returns the position of node id.
func (ix *SnapIndex) At(id int) Point {
	return ix.pts[id]
}

// Points returns the node arena indexed by id. The slice is shared with
// the index and must not be mutated.
func (ix *SnapIndex) Points() []Point {
	return ix.pts
}
