package geo

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p := Pt(3, 4)
	q := Pt(1, -2)

	if got := p.Add(q); got != Pt(4, 2) {
		t.Errorf("Add: got %v", got)
	}
	if got := p.Sub(q); got != Pt(2, 6) {
		t.Errorf("Sub: got %v", got)
	}
	if got := p.Mul(2); got != Pt(6, 8) {
		t.Errorf("Mul: got %v", got)
	}
	if got := p.Dot(q); got != 3-8 {
		t.Errorf("Dot: got %v", got)
	}
	if got := p.Cross(q); got != -6-4 {
		t.Errorf("Cross: got %v", got)
	}
	if got := p.Length(); got != 5 {
		t.Errorf("Length: got %v", got)
	}
	if got := p.Distance(Pt(3, 0)); got != 4 {
		t.Errorf("Distance: got %v", got)
	}
}

func TestPointNormalize(t *testing.T) {
	n := Pt(10, 0).Normalize()
	if n != Pt(1, 0) {
		t.Errorf("Normalize: got %v", n)
	}

	// Zero vector stays zero instead of dividing by zero.
	if got := (Point{}).Normalize(); got != (Point{}) {
		t.Errorf("Normalize zero: got %v", got)
	}
}

func TestPointLerp(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(10, 20)
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0): got %v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1): got %v", got)
	}
	if got := a.Lerp(b, 0.5); got != Pt(5, 10) {
		t.Errorf("Lerp(0.5): got %v", got)
	}
}

func TestPointIsFinite(t *testing.T) {
	if !Pt(1, 2).IsFinite() {
		t.Error("finite point reported non-finite")
	}
	if Pt(math.NaN(), 0).IsFinite() {
		t.Error("NaN x reported finite")
	}
	if Pt(0, math.Inf(1)).IsFinite() {
		t.Error("infinite y reported finite")
	}
}

func TestSegmentDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(10, 0)

	// Perpendicular drop onto the interior.
	if got := Pt(5, 3).SegmentDistance(a, b); got != 3 {
		t.Errorf("interior: got %v", got)
	}
	// Beyond the end clamps to the endpoint.
	if got := Pt(14, 3).SegmentDistance(a, b); got != 5 {
		t.Errorf("clamped: got %v", got)
	}
	// Degenerate segment.
	if got := Pt(3, 4).SegmentDistance(a, a); got != 5 {
		t.Errorf("degenerate: got %v", got)
	}
}

func TestSegmentIntersection(t *testing.T) {
	// Proper crossing.
	x, ok := SegmentIntersection(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0))
	if !ok {
		t.Fatal("crossing segments reported no intersection")
	}
	if x.Distance(Pt(5, 5)) > 1e-9 {
		t.Errorf("intersection point: got %v", x)
	}

	// Parallel segments never intersect.
	if _, ok := SegmentIntersection(Pt(0, 0), Pt(10, 0), Pt(0, 5), Pt(10, 5)); ok {
		t.Error("parallel segments reported an intersection")
	}

	// A shared endpoint does not count.
	if _, ok := SegmentIntersection(Pt(0, 0), Pt(10, 0), Pt(10, 0), Pt(10, 10)); ok {
		t.Error("shared endpoint reported as intersection")
	}

	// Disjoint segments.
	if _, ok := SegmentIntersection(Pt(0, 0), Pt(1, 0), Pt(5, 5), Pt(6, 5)); ok {
		t.Error("disjoint segments reported an intersection")
	}
}
