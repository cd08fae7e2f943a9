package placement

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

// Anchor is a finished placement point. It is the engine's only output
// entity; the drawing surface owns it from the moment it is returned.
type Anchor struct {
	ID string `json:"id" bson:"id"`

	// X and Y are pixel coordinates in the floor plan's space.
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`

	// RadiusM is the coverage radius in meters. Zero means "use the
	// project's global radius".
	RadiusM float64 `json:"radius_m,omitempty" bson:"radius_m,omitempty"`

	// Shape is the coverage shape tag, passed through untouched.
	Shape string `json:"shape,omitempty" bson:"shape,omitempty"`

	// ShowRadius is a display flag, passed through untouched.
	ShowRadius bool `json:"show_radius,omitempty" bson:"show_radius,omitempty"`

	// Auto marks engine-generated anchors; user-placed anchors carry
	// false and are never removed by density reduction.
	Auto bool `json:"auto,omitempty" bson:"auto,omitempty"`

	// Locked exempts the anchor from density reduction.
	Locked bool `json:"locked,omitempty" bson:"locked,omitempty"`

	// Corner marks anchors placed on offset-ring corners; they are
	// protected from density pruning like locked anchors.
	Corner bool `json:"corner,omitempty" bson:"corner,omitempty"`

	// RoomIndex is the detected room the anchor was placed in, or -1.
	RoomIndex int `json:"room_index" bson:"room_index"`
}

// Pos returns the anchor position as a point.
func (a Anchor) Pos() geo.Point {
	return geo.Pt(a.X, a.Y)
}

// Radius returns the anchor's own radius, or fallback when unset.
func (a Anchor) Radius(fallback float64) float64 {
	if a.RadiusM > 0 {
		return a.RadiusM
	}
	return fallback
}

// anchorNamespace is the UUID namespace for deterministic anchor ids.
var anchorNamespace = uuid.MustParse("c5b2d1e4-7a4f-4e0b-9b63-2f8a41d0a9c7")

// anchorID derives a stable id from the placement content. Identical
// runs produce identical ids, which is what makes the whole pipeline
// idempotent from the caller's point of view.
func anchorID(c Candidate, radiusM float64, shape string) string {
	content := fmt.Sprintf("%.3f:%.3f:%.3f:%s:%d:%t",
		c.Pos.X, c.Pos.Y, radiusM, shape, c.RoomIndex, c.Corner)
	return uuid.NewSHA1(anchorNamespace, []byte(content)).String()
}

// newAnchor builds the anchor for an accepted candidate.
func newAnchor(c Candidate, opts *Options) Anchor {
	return Anchor{
		ID:         anchorID(c, opts.RadiusM, opts.Shape),
		X:          c.Pos.X,
		Y:          c.Pos.Y,
		RadiusM:    opts.RadiusM,
		Shape:      opts.Shape,
		ShowRadius: opts.ShowRadius,
		Auto:       true,
		Corner:     c.Corner,
		RoomIndex:  c.RoomIndex,
	}
}
