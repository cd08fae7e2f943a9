package planio

import (
	"fmt"
	"math"

	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/placement"
)

// Plan is the floor-plan document. See the package documentation for the
// JSON format. The zero value is a valid empty document.
type Plan struct {
	// ScaleRatio is pixels per meter for every coordinate in the
	// document. Zero means "not specified"; operations that need a scale
	// reject such documents with their own error.
	ScaleRatio float64 `json:"scale_ratio,omitempty"`

	// Walls are the raw wall segments of the floor plan.
	Walls []floorplan.Wall `json:"walls,omitempty"`

	// Anchors are placement results or pre-existing device positions.
	Anchors []placement.Anchor `json:"anchors,omitempty"`

	// PlacementArea optionally restricts placement and density passes to
	// a polygon.
	PlacementArea geo.Polygon `json:"placement_area,omitempty"`
}

// Validate checks the document for structural problems: non-finite
// coordinates, a negative scale, or duplicate anchor ids. It does not
// decide whether the document suits a particular operation; that is the
// operation's job.
func (p *Plan) Validate() error {
	if p.ScaleRatio < 0 || !isFinite(p.ScaleRatio) {
		return fmt.Errorf("scale_ratio %v: must be a finite, non-negative number", p.ScaleRatio)
	}
	for i, w := range p.Walls {
		if !w.Start.IsFinite() || !w.End.IsFinite() {
			return fmt.Errorf("wall %d: coordinates must be finite", i)
		}
		if w.Thickness < 0 || !isFinite(w.Thickness) {
			return fmt.Errorf("wall %d: thickness %v must be finite and non-negative", i, w.Thickness)
		}
	}
	seen := make(map[string]int, len(p.Anchors))
	for i, a := range p.Anchors {
		if !a.Pos().IsFinite() {
			return fmt.Errorf("anchor %d: coordinates must be finite", i)
		}
		if a.RadiusM < 0 || !isFinite(a.RadiusM) {
			return fmt.Errorf("anchor %d: radius %v must be finite and non-negative", i, a.RadiusM)
		}
		if a.ID != "" {
			if j, dup := seen[a.ID]; dup {
				return fmt.Errorf("anchor %d: id %q already used by anchor %d", i, a.ID, j)
			}
			seen[a.ID] = i
		}
	}
	for i, pt := range p.PlacementArea {
		if !pt.IsFinite() {
			return fmt.Errorf("placement_area point %d: coordinates must be finite", i)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
