package geo

import "math"

// Polygon is a closed ring of vertices. The closing edge from the last
// vertex back to the first is implicit; callers must not repeat the first
// vertex at the end.
type Polygon []Point

// Valid reports whether the polygon has at least three vertices and a
// non-degenerate area.
func (p Polygon) Valid() bool {
	return len(p) >= 3 && math.Abs(p.Area()) > 1e-9
}

// Area returns the signed area of the polygon (shoelace formula).
// In screen coordinates (y down) a positive value means the vertices wind
// counterclockwise in the mathematical sense.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	sum := 0.0
	for i, v := range p {
		w := p[(i+1)%len(p)]
		sum += v.X*w.Y - w.X*v.Y
	}
	return sum / 2
}

// AbsArea returns the unsigned area of the polygon.
func (p Polygon) AbsArea() float64 {
	return math.Abs(p.Area())
}

// Perimeter returns the total boundary length, including the closing edge.
func (p Polygon) Perimeter() float64 {
	if len(p) < 2 {
		return 0
	}
	sum := 0.0
	for i, v := range p {
		sum += v.Distance(p[(i+1)%len(p)])
	}
	return sum
}

// Centroid returns the area centroid of the polygon. Degenerate polygons
// fall back to the mean of the vertices.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	a := p.Area()
	if math.Abs(a) < 1e-12 {
		var m Point
		for _, v := range p {
			m = m.Add(v)
		}
		return m.Mul(1 / float64(len(p)))
	}
	var c Point
	for i, v := range p {
		w := p[(i+1)%len(p)]
		f := v.Cross(w)
		c.X += (v.X + w.X) * f
		c.Y += (v.Y + w.Y) * f
	}
	return c.Mul(1 / (6 * a))
}

// BBox returns the axis-aligned bounding box as (min, max) corners.
func (p Polygon) BBox() (Point, Point) {
	if len(p) == 0 {
		return Point{}, Point{}
	}
	min, max := p[0], p[0]
	for _, v := range p[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// MaxSpan returns the larger dimension of the bounding box.
func (p Polygon) MaxSpan() float64 {
	min, max := p.BBox()
	return math.Max(max.X-min.X, max.Y-min.Y)
}

// Contains reports whether pt lies inside the polygon using the even-odd
// ray casting rule. Points exactly on an edge may report either side;
// callers that care nudge the query point or use DistanceToBoundary.
func (p Polygon) Contains(pt Point) bool {
	if len(p) < 3 {
		return false
	}
	inside := false
	j := len(p) - 1
	for i := 0; i < len(p); i++ {
		xi, yi := p[i].X, p[i].Y
		xj, yj := p[j].X, p[j].Y
		if (yi > pt.Y) != (yj > pt.Y) {
			// Guard the divisor against horizontal edges that slipped
			// past the strict inequality through rounding.
			x := (xj-xi)*(pt.Y-yi)/(yj-yi+1e-12) + xi
			if pt.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// DistanceToBoundary returns the minimum distance from pt to any edge of
// the polygon, regardless of which side pt is on.
func (p Polygon) DistanceToBoundary(pt Point) float64 {
	if len(p) == 0 {
		return math.Inf(1)
	}
	if len(p) == 1 {
		return pt.Distance(p[0])
	}
	min := math.Inf(1)
	for i, v := range p {
		w := p[(i+1)%len(p)]
		if d := pt.SegmentDistance(v, w); d < min {
			min = d
		}
	}
	return min
}

// Reversed returns a copy of the polygon with the opposite winding.
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Clone returns a deep copy of the polygon.
func (p Polygon) Clone() Polygon {
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Resample walks the boundary and returns sites spaced at most step apart,
// in boundary order, always including the original vertices. The ordering
// matters: skeleton extraction relies on consecutive indices being boundary
// neighbors. A non-positive step returns just the vertices.
func (p Polygon) Resample(step float64) []Point {
	if len(p) < 3 {
		return nil
	}
	sites := make([]Point, 0, len(p)*4)
	for i, v := range p {
		w := p[(i+1)%len(p)]
		sites = append(sites, v)
		if step <= 0 {
			continue
		}
		l := v.Distance(w)
		n := int(math.Ceil(l / step))
		for k := 1; k < n; k++ {
			sites = append(sites, v.Lerp(w, float64(k)/float64(n)))
		}
	}
	return sites
}
