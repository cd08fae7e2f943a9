package geo

import (
	"math"
	"testing"
)

func square10() Polygon {
	return Polygon{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}
}

// lShape is a 10x10 square with the (x>5, y>5) quadrant removed.
func lShape() Polygon {
	return Polygon{Pt(0, 0), Pt(10, 0), Pt(10, 5), Pt(5, 5), Pt(5, 10), Pt(0, 10)}
}

func TestPolygonArea(t *testing.T) {
	sq := square10()

	if got := sq.Area(); math.Abs(got-100) > 1e-9 {
		t.Errorf("Area: got %v, want 100", got)
	}
	if got := sq.Reversed().Area(); math.Abs(got+100) > 1e-9 {
		t.Errorf("reversed Area: got %v, want -100", got)
	}
	if got := sq.Reversed().AbsArea(); math.Abs(got-100) > 1e-9 {
		t.Errorf("AbsArea: got %v, want 100", got)
	}
	if got := lShape().AbsArea(); math.Abs(got-75) > 1e-9 {
		t.Errorf("L-shape area: got %v, want 75", got)
	}
	if got := (Polygon{Pt(0, 0), Pt(1, 1)}).Area(); got != 0 {
		t.Errorf("degenerate Area: got %v", got)
	}
}

func TestPolygonValid(t *testing.T) {
	if !square10().Valid() {
		t.Error("square reported invalid")
	}
	if (Polygon{Pt(0, 0), Pt(1, 1)}).Valid() {
		t.Error("two-point polygon reported valid")
	}
	// Collinear vertices enclose no area.
	if (Polygon{Pt(0, 0), Pt(5, 0), Pt(10, 0)}).Valid() {
		t.Error("collinear polygon reported valid")
	}
}

func TestPolygonPerimeterAndCentroid(t *testing.T) {
	sq := square10()

	if got := sq.Perimeter(); math.Abs(got-40) > 1e-9 {
		t.Errorf("Perimeter: got %v, want 40", got)
	}
	if c := sq.Centroid(); c.Distance(Pt(5, 5)) > 1e-9 {
		t.Errorf("Centroid: got %v, want (5,5)", c)
	}
	// The centroid is winding-independent.
	if c := sq.Reversed().Centroid(); c.Distance(Pt(5, 5)) > 1e-9 {
		t.Errorf("reversed Centroid: got %v", c)
	}
}

func TestPolygonBBoxAndSpan(t *testing.T) {
	min, max := lShape().BBox()
	if min != Pt(0, 0) || max != Pt(10, 10) {
		t.Errorf("BBox: got %v, %v", min, max)
	}

	rect := Polygon{Pt(0, 0), Pt(20, 0), Pt(20, 5), Pt(0, 5)}
	if got := rect.MaxSpan(); got != 20 {
		t.Errorf("MaxSpan: got %v, want 20", got)
	}
}

func TestPolygonContains(t *testing.T) {
	sq := square10()
	if !sq.Contains(Pt(5, 5)) {
		t.Error("center reported outside")
	}
	if sq.Contains(Pt(15, 5)) {
		t.Error("outside point reported inside")
	}
	if sq.Contains(Pt(5, -1)) {
		t.Error("point above reported inside")
	}

	// Concave polygons: the notch does not belong to the interior.
	l := lShape()
	if !l.Contains(Pt(2, 2)) {
		t.Error("L interior reported outside")
	}
	if l.Contains(Pt(8, 8)) {
		t.Error("L notch reported inside")
	}
}

func TestPolygonDistanceToBoundary(t *testing.T) {
	sq := square10()
	if got := sq.DistanceToBoundary(Pt(5, 5)); math.Abs(got-5) > 1e-9 {
		t.Errorf("center distance: got %v, want 5", got)
	}
	if got := sq.DistanceToBoundary(Pt(5, 2)); math.Abs(got-2) > 1e-9 {
		t.Errorf("near edge: got %v, want 2", got)
	}
	// Outside points measure to the nearest edge too.
	if got := sq.DistanceToBoundary(Pt(13, 5)); math.Abs(got-3) > 1e-9 {
		t.Errorf("outside distance: got %v, want 3", got)
	}
}

func TestPolygonResample(t *testing.T) {
	sq := square10()

	sites := sq.Resample(5)
	// Four vertices plus one midpoint per 10-unit edge.
	if len(sites) != 8 {
		t.Fatalf("Resample count: got %d, want 8", len(sites))
	}
	// Sites stay in boundary order starting from the first vertex.
	if sites[0] != Pt(0, 0) || sites[1] != Pt(5, 0) || sites[2] != Pt(10, 0) {
		t.Errorf("Resample order: got %v %v %v", sites[0], sites[1], sites[2])
	}

	// A non-positive step yields the vertices only.
	if got := sq.Resample(0); len(got) != 4 {
		t.Errorf("Resample(0): got %d sites", len(got))
	}

	// Steps longer than every edge also yield the vertices only.
	if got := sq.Resample(100); len(got) != 4 {
		t.Errorf("Resample(100): got %d sites", len(got))
	}
}

func TestPolygonCloneIndependence(t *testing.T) {
	sq := square10()
	c := sq.Clone()
	c[0] = Pt(-1, -1)
	if sq[0] != Pt(0, 0) {
		t.Error("Clone shares backing storage with the original")
	}
}
