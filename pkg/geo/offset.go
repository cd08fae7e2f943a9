package geo

import "math"

// Offsetting works on an integer grid: coordinates are scaled up, rounded,
// and only rescaled after the ring has been untangled. Rounding every
// derived vertex to the grid keeps the recursive splitting stable; raw
// float intersections otherwise produce near-duplicate points that spin
// the untangler.
const (
	offsetScale = 1000.0

	// maxUntangleDepth bounds the recursive ring splitting. Every split
	// strictly reduces ring size, so the cap only trips on pathological
	// input; hitting it discards the ring rather than looping.
	maxUntangleDepth = 64

	// offsetDistanceTolerance is the slack allowed when validating that a
	// result vertex really moved the requested distance. Grid rounding and
	// miter geometry eat into the nominal offset.
	offsetDistanceTolerance = 0.02
)

// Offset returns the polygon displaced by delta on every edge. Negative
// delta shrinks (moves the boundary inward), positive delta grows. The
// result may be empty (the polygon vanished) or contain several rings (a
// concave polygon pinched apart). Result rings wind counterclockwise.
//
// Invalid input returns nil.
func (p Polygon) Offset(delta float64) []Polygon {
	if !p.Valid() || delta == 0 {
		if !p.Valid() {
			return nil
		}
		return []Polygon{p.Clone()}
	}

	src := p
	if src.Area() < 0 {
		src = src.Reversed()
	}

	raw := miterRing(src, delta)
	if len(raw) < 3 {
		return nil
	}

	var rings []Polygon
	untangle(raw, 0, &rings)

	minArea := math.Max(1e-9, p.AbsArea()*1e-6)
	out := make([]Polygon, 0, len(rings))
	for _, r := range rings {
		if !validOffsetRing(r, p, delta, minArea) {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return []Polygon{}
	}
	return out
}

// miterRing builds the raw offset ring on the integer grid. src must wind
// counterclockwise. The ring may self-intersect; untangling happens later.
func miterRing(src Polygon, delta float64) Polygon {
	n := len(src)
	scaled := make([]Point, n)
	for i, v := range src {
		scaled[i] = snapToGrid(v.Mul(offsetScale))
	}
	d := delta * offsetScale

	ring := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		prev := scaled[(i+n-1)%n]
		cur := scaled[i]
		next := scaled[(i+1)%n]

		e1 := cur.Sub(prev)
		e2 := next.Sub(cur)
		if e1.LengthSquared() < 1e-9 || e2.LengthSquared() < 1e-9 {
			continue
		}

		// Right-hand normals point away from the interior of a
		// counterclockwise ring, so positive delta grows the polygon.
		n1 := Point{X: e1.Y, Y: -e1.X}.Normalize()
		n2 := Point{X: e2.Y, Y: -e2.X}.Normalize()

		a1 := prev.Add(n1.Mul(d))
		a2 := cur.Add(n2.Mul(d))
		dir1, dir2 := e1, e2

		v := lineIntersection(a1, dir1, a2, dir2)
		if !v.IsFinite() {
			// Near-collinear edges: the shifted lines coincide, any
			// point on them works.
			v = cur.Add(n1.Mul(d))
		}
		ring = append(ring, snapToGrid(v))
	}
	return dedupeRing(ring)
}

// lineIntersection intersects the infinite lines p1+t*d1 and p2+s*d2,
// returning an infinite point when they are parallel.
func lineIntersection(p1, d1, p2, d2 Point) Point {
	denom := d1.Cross(d2)
	if math.Abs(denom) < 1e-9 {
		return Point{X: math.Inf(1), Y: math.Inf(1)}
	}
	t := p2.Sub(p1).Cross(d2) / denom
	return p1.Add(d1.Mul(t))
}

// untangle splits ring at its first self-intersection and recurses on both
// halves, appending simple rings to out. Rings still scaled to the grid.
func untangle(ring Polygon, depth int, out *[]Polygon) {
	if len(ring) < 3 || depth > maxUntangleDepth {
		return
	}
	n := len(ring)
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		// Non-adjacent edges only: j starts two edges ahead, and the
		// closing edge never pairs with edge 0.
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			c := ring[j]
			d := ring[(j+1)%n]
			x, ok := SegmentIntersection(a, b, c, d)
			if !ok {
				continue
			}
			x = snapToGrid(x)

			first := make(Polygon, 0, j-i+1)
			first = append(first, x)
			first = append(first, ring[i+1:j+1]...)

			second := make(Polygon, 0, n-(j-i)+1)
			second = append(second, x)
			second = append(second, ring[j+1:]...)
			second = append(second, ring[:i+1]...)

			untangle(dedupeRing(first), depth+1, out)
			untangle(dedupeRing(second), depth+1, out)
			return
		}
	}
	*out = append(*out, ring)
}

// validOffsetRing rescales the ring from the grid and checks that it is a
// plausible offset result: counterclockwise, non-sliver, and with every
// vertex on the correct side of the source boundary at (close to) the
// requested distance. Inverted loops produced by reflex corners fail the
// winding test, sliver artifacts fail the area test, and collapsed regions
// fail the distance test.
func validOffsetRing(ring Polygon, src Polygon, delta float64, minArea float64) bool {
	if len(ring) < 3 {
		return false
	}
	for i := range ring {
		ring[i] = ring[i].Mul(1 / offsetScale)
	}
	if ring.Area() <= 0 {
		return false
	}
	if ring.AbsArea() < minArea {
		return false
	}
	limit := math.Abs(delta) * (1 - offsetDistanceTolerance)
	wantInside := delta < 0
	for _, v := range ring {
		if src.Contains(v) != wantInside {
			return false
		}
		if src.DistanceToBoundary(v) < limit {
			return false
		}
	}
	return true
}

func snapToGrid(p Point) Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// dedupeRing removes consecutive duplicate vertices, including a duplicate
// pair wrapping around the closing edge.
func dedupeRing(ring Polygon) Polygon {
	if len(ring) == 0 {
		return ring
	}
	out := ring[:0]
	for _, v := range ring {
		if len(out) == 0 || out[len(out)-1].Distance(v) > 1e-9 {
			out = append(out, v)
		}
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) <= 1e-9 {
		out = out[:len(out)-1]
	}
	return out
}
