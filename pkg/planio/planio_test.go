package planio

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/placement"
)

func TestReadPlan(t *testing.T) {
	doc := `{
		"scale_ratio": 10,
		"walls": [
			{"start": {"x": 0, "y": 0}, "end": {"x": 400, "y": 0}},
			{"start": {"x": 400, "y": 0}, "end": {"x": 400, "y": 300}}
		],
		"anchors": [
			{"id": "a1", "x": 200, "y": 150, "radius_m": 8, "auto": true, "room_index": 0}
		],
		"placement_area": [
			{"x": 0, "y": 0}, {"x": 400, "y": 0}, {"x": 400, "y": 300}, {"x": 0, "y": 300}
		]
	}`

	p, err := ReadPlan(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadPlan error: %v", err)
	}

	if p.ScaleRatio != 10 {
		t.Errorf("ScaleRatio = %v, want 10", p.ScaleRatio)
	}
	if len(p.Walls) != 2 {
		t.Fatalf("got %d walls, want 2", len(p.Walls))
	}
	if p.Walls[1].End != geo.Pt(400, 300) {
		t.Errorf("wall 1 end = %v, want (400,300)", p.Walls[1].End)
	}
	if len(p.Anchors) != 1 {
		t.Fatalf("got %d anchors, want 1", len(p.Anchors))
	}
	a := p.Anchors[0]
	if a.ID != "a1" || a.X != 200 || a.Y != 150 || a.RadiusM != 8 || !a.Auto {
		t.Errorf("anchor = %+v", a)
	}
	if len(p.PlacementArea) != 4 {
		t.Errorf("got %d placement area points, want 4", len(p.PlacementArea))
	}
}

func TestReadPlanUnknownFields(t *testing.T) {
	// Documents from newer versions or annotated by other tools still
	// import.
	doc := `{"scale_ratio": 5, "comment": "drawn by hand", "layers": [1, 2]}`
	p, err := ReadPlan(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadPlan error: %v", err)
	}
	if p.ScaleRatio != 5 {
		t.Errorf("ScaleRatio = %v, want 5", p.ScaleRatio)
	}
}

func TestReadPlanMalformed(t *testing.T) {
	if _, err := ReadPlan(strings.NewReader("{")); err == nil {
		t.Error("truncated JSON should fail")
	}
	if _, err := ReadPlan(strings.NewReader(`[1, 2]`)); err == nil {
		t.Error("non-object document should fail")
	}
}

func TestReadPlanRejectsDuplicateAnchorIDs(t *testing.T) {
	doc := `{"anchors": [
		{"id": "dup", "x": 0, "y": 0},
		{"id": "dup", "x": 10, "y": 0}
	]}`
	_, err := ReadPlan(strings.NewReader(doc))
	if err == nil {
		t.Fatal("duplicate anchor ids should fail")
	}
	if !strings.Contains(err.Error(), "dup") {
		t.Errorf("error %q does not name the duplicate id", err)
	}

	// Anchors without ids are fine, and may repeat.
	doc = `{"anchors": [{"x": 0, "y": 0}, {"x": 10, "y": 0}]}`
	if _, err := ReadPlan(strings.NewReader(doc)); err != nil {
		t.Errorf("id-less anchors should pass: %v", err)
	}
}

func TestReadPlanRejectsNegativeScale(t *testing.T) {
	if _, err := ReadPlan(strings.NewReader(`{"scale_ratio": -1}`)); err == nil {
		t.Error("negative scale should fail")
	}
}

func TestWritePlanRoundTrip(t *testing.T) {
	p := &Plan{
		ScaleRatio: 10,
		Walls: []floorplan.Wall{
			{Start: geo.Pt(0, 0), End: geo.Pt(100, 0)},
			{Start: geo.Pt(100, 0), End: geo.Pt(100, 100)},
		},
		Anchors: []placement.Anchor{
			{ID: "a1", X: 50, Y: 50, RadiusM: 8, Auto: true, RoomIndex: 0},
		},
	}

	var buf bytes.Buffer
	if err := WritePlan(p, &buf); err != nil {
		t.Fatalf("WritePlan error: %v", err)
	}

	back, err := ReadPlan(&buf)
	if err != nil {
		t.Fatalf("ReadPlan error: %v", err)
	}
	if back.ScaleRatio != p.ScaleRatio {
		t.Errorf("ScaleRatio = %v, want %v", back.ScaleRatio, p.ScaleRatio)
	}
	if len(back.Walls) != 2 || back.Walls[0].End != geo.Pt(100, 0) {
		t.Errorf("walls did not survive the round trip: %+v", back.Walls)
	}
	if len(back.Anchors) != 1 || back.Anchors[0].ID != "a1" {
		t.Errorf("anchors did not survive the round trip: %+v", back.Anchors)
	}
}

func TestWritePlanRejectsNonFinite(t *testing.T) {
	p := &Plan{Walls: []floorplan.Wall{
		{Start: geo.Pt(math.NaN(), 0), End: geo.Pt(10, 0)},
	}}
	err := WritePlan(p, &bytes.Buffer{})
	if err == nil {
		t.Fatal("non-finite wall should fail")
	}
	if !strings.Contains(err.Error(), "wall 0") {
		t.Errorf("error %q does not name the bad wall", err)
	}
}

func TestImportExportPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	p := &Plan{
		ScaleRatio: 8,
		Walls:      []floorplan.Wall{{Start: geo.Pt(0, 0), End: geo.Pt(50, 0)}},
	}

	if err := ExportPlan(p, path); err != nil {
		t.Fatalf("ExportPlan error: %v", err)
	}
	back, err := ImportPlan(path)
	if err != nil {
		t.Fatalf("ImportPlan error: %v", err)
	}
	if back.ScaleRatio != 8 || len(back.Walls) != 1 {
		t.Errorf("imported plan = %+v", back)
	}

	if _, err := ImportPlan(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestValidateEmptyPlan(t *testing.T) {
	var p Plan
	if err := p.Validate(); err != nil {
		t.Errorf("empty plan should validate: %v", err)
	}
}
