package placement

import (
	"math"
	"testing"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

// Radius 8m at scale 10 gives 80px; conflict thresholds are 32px
// (critical), 72px (high), 96px (normal).

func TestArbitratePriorityThresholds(t *testing.T) {
	opts := validatedOptions(t, Options{})
	cands := []Candidate{
		{Pos: geo.Pt(0, 0), Priority: PriorityCritical},
		{Pos: geo.Pt(30, 0), Priority: PriorityCritical},  // 30 <= 32: rejected
		{Pos: geo.Pt(40, 0), Priority: PriorityCritical},  // clears both
		{Pos: geo.Pt(0, 85), Priority: PriorityHigh},      // 85 > 72: accepted
		{Pos: geo.Pt(100, 0), Priority: PriorityNormal},   // 60 from (40,0) <= 96: rejected
	}

	got := arbitrate(cands, nil, &opts)
	if len(got) != 3 {
		t.Fatalf("accepted %d candidates, want 3", len(got))
	}
	if got[0].Pos != geo.Pt(0, 0) || got[1].Pos != geo.Pt(40, 0) || got[2].Pos != geo.Pt(0, 85) {
		t.Errorf("accepted set: %v", got)
	}
}

func TestArbitrateCriticalBeforeNormal(t *testing.T) {
	opts := validatedOptions(t, Options{})

	// The normal candidate comes first in generation order but loses to
	// the critical one at the same spot.
	cands := []Candidate{
		{Pos: geo.Pt(10, 10), Priority: PriorityNormal},
		{Pos: geo.Pt(12, 10), Priority: PriorityCritical},
	}
	got := arbitrate(cands, nil, &opts)
	if len(got) != 1 {
		t.Fatalf("accepted %d, want 1", len(got))
	}
	if got[0].Priority != PriorityCritical {
		t.Errorf("survivor priority: got %v", got[0].Priority)
	}
}

func TestArbitrateExistingClearance(t *testing.T) {
	opts := validatedOptions(t, Options{})
	existing := []geo.Point{geo.Pt(200, 0)}

	cands := []Candidate{
		{Pos: geo.Pt(205, 0), Priority: PriorityCritical}, // 5 <= 10: rejected
		{Pos: geo.Pt(215, 0), Priority: PriorityCritical}, // 15 > 10: accepted
	}
	got := arbitrate(cands, existing, &opts)
	if len(got) != 1 {
		t.Fatalf("accepted %d, want 1", len(got))
	}
	if got[0].Pos != geo.Pt(215, 0) {
		t.Errorf("survivor: %v", got[0].Pos)
	}
}

func TestArbitrateContainment(t *testing.T) {
	opts := validatedOptions(t, Options{
		PlacementArea:        geo.Polygon{geo.Pt(0, 0), geo.Pt(100, 0), geo.Pt(100, 100), geo.Pt(0, 100)},
		PlacementAreaEnabled: true,
	})

	cands := []Candidate{
		{Pos: geo.Pt(50, 50), Priority: PriorityCritical},
		{Pos: geo.Pt(150, 50), Priority: PriorityCritical},
	}
	got := arbitrate(cands, nil, &opts)
	if len(got) != 1 {
		t.Fatalf("accepted %d, want 1", len(got))
	}
	if got[0].Pos != geo.Pt(50, 50) {
		t.Errorf("survivor: %v", got[0].Pos)
	}
}

func TestArbitrateDropsNonFinite(t *testing.T) {
	opts := validatedOptions(t, Options{})
	cands := []Candidate{
		{Pos: geo.Pt(math.NaN(), 0), Priority: PriorityCritical},
		{Pos: geo.Pt(10, 10), Priority: PriorityNormal},
	}
	got := arbitrate(cands, nil, &opts)
	if len(got) != 1 || got[0].Pos != geo.Pt(10, 10) {
		t.Errorf("accepted: %v", got)
	}
}

func TestAnchorIDDeterministic(t *testing.T) {
	c := Candidate{Pos: geo.Pt(123.456, 78.9), RoomIndex: 2}

	a := anchorID(c, 8, "circle")
	b := anchorID(c, 8, "circle")
	if a != b {
		t.Errorf("same content produced different ids: %s vs %s", a, b)
	}

	// Any content change changes the id.
	if anchorID(c, 6, "circle") == a {
		t.Error("radius change kept the id")
	}
	c.Corner = true
	if anchorID(c, 8, "circle") == a {
		t.Error("corner change kept the id")
	}
}
