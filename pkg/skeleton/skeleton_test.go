package skeleton

import (
	"math"
	"testing"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

func rectangle(w, h float64) geo.Polygon {
	return geo.Polygon{geo.Pt(0, 0), geo.Pt(w, 0), geo.Pt(w, h), geo.Pt(0, h)}
}

func TestBuildRejectsInvalidPolygon(t *testing.T) {
	_, err := Build(geo.Polygon{geo.Pt(0, 0), geo.Pt(1, 1)}, Config{})
	if err != ErrInvalidPolygon {
		t.Fatalf("invalid polygon: got %v, want ErrInvalidPolygon", err)
	}
}

func TestBuildTinyPolygonIsEmptyNotError(t *testing.T) {
	// A 4x4 triangle resamples to fewer than four sites at the default
	// step; the skeleton is empty but valid.
	tri := geo.Polygon{geo.Pt(0, 0), geo.Pt(4, 0), geo.Pt(0, 4)}
	s, err := Build(tri, Config{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if s.Graph.NumNodes() != 0 {
		t.Errorf("tiny skeleton has %d nodes, want 0", s.Graph.NumNodes())
	}
	if len(s.Branches) != 0 {
		t.Errorf("tiny skeleton has %d branches", len(s.Branches))
	}
	if s.TotalLength() != 0 {
		t.Errorf("tiny skeleton length %v", s.TotalLength())
	}
	if _, ok := s.LongestBranch(); ok {
		t.Error("tiny skeleton reported a longest branch")
	}
	if _, _, ok := s.NearestJunction(geo.Pt(1, 1)); ok {
		t.Error("tiny skeleton reported a junction")
	}
}

func TestBuildCorridor(t *testing.T) {
	// A 200x20 corridor. The skeleton must trace the long axis.
	poly := rectangle(200, 20)
	s, err := Build(poly, Config{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if len(s.Segments) == 0 {
		t.Fatal("corridor produced no segments")
	}
	if s.Graph.NumNodes() < 4 {
		t.Fatalf("corridor graph has %d nodes", s.Graph.NumNodes())
	}

	// Most of the corridor's length lies along the center line.
	if got := s.TotalLength(); got < 120 {
		t.Errorf("TotalLength: got %v, want >= 120", got)
	}

	// A node near the middle of the long axis.
	found := false
	for id := 0; id < s.Graph.NumNodes(); id++ {
		p := s.Graph.Pos(id)
		if !p.IsFinite() {
			t.Fatalf("node %d has non-finite position %v", id, p)
		}
		if p.X > 40 && p.X < 160 && math.Abs(p.Y-10) < 4 {
			found = true
		}
	}
	if !found {
		t.Error("no node near the corridor center line")
	}

	// Branch endpoints and interiors stay finite.
	for _, b := range s.Branches {
		if len(b.Nodes) < 2 || len(b.Points) != len(b.Nodes) {
			t.Fatalf("malformed branch: %d nodes, %d points", len(b.Nodes), len(b.Points))
		}
		for _, p := range b.Points {
			if !p.IsFinite() {
				t.Fatalf("branch point %v not finite", p)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	poly := rectangle(200, 20)

	a, err := Build(poly, Config{})
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	b, err := Build(poly, Config{})
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}

	if a.Graph.NumNodes() != b.Graph.NumNodes() {
		t.Fatalf("node counts differ: %d vs %d", a.Graph.NumNodes(), b.Graph.NumNodes())
	}
	for id := 0; id < a.Graph.NumNodes(); id++ {
		if a.Graph.Pos(id) != b.Graph.Pos(id) {
			t.Fatalf("node %d position differs: %v vs %v", id, a.Graph.Pos(id), b.Graph.Pos(id))
		}
	}
	if a.TotalLength() != b.TotalLength() {
		t.Errorf("lengths differ: %v vs %v", a.TotalLength(), b.TotalLength())
	}
	if len(a.Branches) != len(b.Branches) {
		t.Errorf("branch counts differ: %d vs %d", len(a.Branches), len(b.Branches))
	}
}

func TestBuildPlusShapedJunction(t *testing.T) {
	// A plus: two 60-wide bars crossing at (100,100). The arms meet in a
	// junction near the center.
	plus := geo.Polygon{
		geo.Pt(70, 0), geo.Pt(130, 0), geo.Pt(130, 70), geo.Pt(200, 70),
		geo.Pt(200, 130), geo.Pt(130, 130), geo.Pt(130, 200), geo.Pt(70, 200),
		geo.Pt(70, 130), geo.Pt(0, 130), geo.Pt(0, 70), geo.Pt(70, 70),
	}
	s, err := Build(plus, Config{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	j, dist, ok := s.NearestJunction(geo.Pt(100, 100))
	if !ok {
		t.Fatal("plus-shaped room has no junction")
	}
	if dist > 15 {
		t.Errorf("nearest junction %v is %v from the center", j.Pos, dist)
	}
}

func TestBuildLCorridorBendJunction(t *testing.T) {
	// An L corridor with 40-wide legs. The two center lines meet around
	// (140,20) in a sharp bend; whether the corner shows up as a real
	// degree-3 node or as a split bend, it must be reported as a junction.
	l := geo.Polygon{
		geo.Pt(0, 0), geo.Pt(160, 0), geo.Pt(160, 160),
		geo.Pt(120, 160), geo.Pt(120, 40), geo.Pt(0, 40),
	}
	s, err := Build(l, Config{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	_, dist, ok := s.NearestJunction(geo.Pt(140, 20))
	if !ok {
		t.Fatal("L corridor has no junction at all")
	}
	if dist > 15 {
		t.Errorf("nearest junction is %v from the elbow", dist)
	}
}

func TestJunctionsAndTerminalsDisjoint(t *testing.T) {
	poly := rectangle(200, 20)
	s, err := Build(poly, Config{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	seen := map[int]bool{}
	for _, j := range s.Junctions() {
		if j.Degree < 3 && !j.Geometric {
			t.Errorf("junction node %d has degree %d and is not geometric", j.Node, j.Degree)
		}
		seen[j.Node] = true
	}
	for _, term := range s.Terminals() {
		if term.Degree != 1 {
			t.Errorf("terminal node %d has degree %d", term.Node, term.Degree)
		}
		if seen[term.Node] {
			t.Errorf("node %d is both junction and terminal", term.Node)
		}
	}
}

func TestSortJunctionsByDegree(t *testing.T) {
	js := []Junction{
		{Node: 2, Degree: 3},
		{Node: 1, Degree: 4},
		{Node: 0, Degree: 3},
	}
	SortJunctionsByDegree(js)

	if js[0].Node != 1 {
		t.Errorf("first junction: got node %d, want 1", js[0].Node)
	}
	// Equal degrees order by node id.
	if js[1].Node != 0 || js[2].Node != 2 {
		t.Errorf("tie break: got nodes %d, %d", js[1].Node, js[2].Node)
	}
}
