// Package geo provides the 2D geometric primitives the placement engine is
// built on: points, polygons, and a robust signed-offset operation.
//
// Coordinates are in the drawing's pixel space (x grows right, y grows down).
// Conversion between pixels and meters is the caller's concern; everything in
// this package is unit-agnostic except where a parameter is explicitly
// documented otherwise.
package geo

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a convenience constructor for a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar z-component).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector normalizes to itself.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Lerp linearly interpolates between p and q.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// IsFinite reports whether both coordinates are finite numbers.
// Voronoi construction can emit NaN or infinite vertices on degenerate
// input; callers filter those out before they reach any candidate list.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// SegmentDistance returns the distance from p to the segment a-b.
func (p Point) SegmentDistance(a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// SegmentIntersection computes the proper intersection of segments a-b and
// c-d. The boolean is false when the segments are parallel, collinear, or
// meet only outside their interiors. Shared endpoints do not count as an
// intersection; untangling treats ring vertices as already connected.
func SegmentIntersection(a, b, c, d Point) (Point, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	ac := c.Sub(a)
	t := ac.Cross(s) / denom
	u := ac.Cross(r) / denom
	const eps = 1e-9
	if t <= eps || t >= 1-eps || u <= eps || u >= 1-eps {
		return Point{}, false
	}
	return a.Add(r.Mul(t)), true
}
