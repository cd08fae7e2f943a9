package skeleton

import (
	"math"
	"testing"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

func TestBranchArcLengthWalk(t *testing.T) {
	b := Branch{
		Nodes:  []int{7, 3, 9},
		Points: []geo.Point{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10)},
	}

	if b.From() != 7 || b.To() != 9 {
		t.Errorf("endpoints: got %d, %d", b.From(), b.To())
	}
	if got := b.Length(); math.Abs(got-20) > 1e-9 {
		t.Errorf("Length: got %v, want 20", got)
	}

	// Interpolation along the first and second leg.
	if p := b.PointAt(5); p.Distance(geo.Pt(5, 0)) > 1e-9 {
		t.Errorf("PointAt(5): got %v", p)
	}
	if p := b.PointAt(15); p.Distance(geo.Pt(10, 5)) > 1e-9 {
		t.Errorf("PointAt(15): got %v", p)
	}
	if p := b.Midpoint(); p.Distance(geo.Pt(10, 0)) > 1e-9 {
		t.Errorf("Midpoint: got %v", p)
	}

	// Out-of-range distances clamp to the endpoints.
	if p := b.PointAt(-3); p != geo.Pt(0, 0) {
		t.Errorf("PointAt(-3): got %v", p)
	}
	if p := b.PointAt(100); p != geo.Pt(10, 10) {
		t.Errorf("PointAt(100): got %v", p)
	}
}

func TestSplitAtBends(t *testing.T) {
	right := Branch{
		Nodes:  []int{0, 1, 2},
		Points: []geo.Point{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10)},
	}

	out, bends := splitAtBends([]Branch{right}, 45)
	if len(out) != 2 {
		t.Fatalf("right angle: got %d branches, want 2", len(out))
	}
	if len(bends) != 1 || bends[0] != 1 {
		t.Fatalf("bend nodes: got %v, want [1]", bends)
	}
	if out[0].To() != 1 || out[1].From() != 1 {
		t.Errorf("split does not share the bend node: %d, %d", out[0].To(), out[1].From())
	}

	// A straight polyline stays whole.
	straight := Branch{
		Nodes:  []int{0, 1, 2},
		Points: []geo.Point{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(20, 0)},
	}
	out, bends = splitAtBends([]Branch{straight}, 45)
	if len(out) != 1 || len(bends) != 0 {
		t.Errorf("straight: got %d branches, %d bends", len(out), len(bends))
	}

	// A shallow 30 degree turn survives the 45 degree threshold.
	shallow := Branch{
		Nodes:  []int{0, 1, 2},
		Points: []geo.Point{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10+10*math.Cos(math.Pi/6), 10*math.Sin(math.Pi/6))},
	}
	out, bends = splitAtBends([]Branch{shallow}, 45)
	if len(out) != 1 || len(bends) != 0 {
		t.Errorf("shallow turn: got %d branches, %d bends", len(out), len(bends))
	}

	// Threshold zero disables splitting.
	out, bends = splitAtBends([]Branch{right}, 0)
	if len(out) != 1 || len(bends) != 0 {
		t.Errorf("disabled: got %d branches, %d bends", len(out), len(bends))
	}
}
