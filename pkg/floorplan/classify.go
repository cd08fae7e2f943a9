package floorplan

import (
	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/tuning"
)

// Class is the size classification of a room. It selects the placement
// strategy: compact rooms get a single centered anchor, extended rooms
// are covered along their skeleton, large rooms get ring or skeleton
// coverage depending on their shape.
type Class int

const (
	Compact Class = iota
	Extended
	Large
)

func (c Class) String() string {
	switch c {
	case Compact:
		return "compact"
	case Extended:
		return "extended"
	case Large:
		return "large"
	}
	return "unknown"
}

// Classification is the full classification verdict for a room.
type Classification struct {
	Class Class

	// ComplexTopology marks compact or extended rooms whose skeleton has
	// enough junctions that centroid or simple-path placement would miss
	// whole wings; such rooms are routed through the skeleton strategy.
	ComplexTopology bool

	AreaM2    float64
	SpanM     float64
	Junctions int
}

// ClassifyRoom classifies poly for the given scale (pixels per meter).
// The junction count comes from the room's skeleton; callers without a
// skeleton pass zero, which disables the topology override.
//
// Area wins over span: a room both huge and elongated is large, not
// extended.
func ClassifyRoom(poly geo.Polygon, scale float64, junctions int, rules tuning.Classify) Classification {
	c := Classification{
		Junctions: junctions,
	}
	if scale > 0 {
		c.AreaM2 = poly.AbsArea() / (scale * scale)
		c.SpanM = poly.MaxSpan() / scale
	}

	switch {
	case c.AreaM2 > rules.LargeAreaM2:
		c.Class = Large
	case c.SpanM >= rules.ExtendedSpanM:
		c.Class = Extended
	default:
		c.Class = Compact
	}

	if c.Class != Large && junctions >= rules.ComplexJunctions {
		c.ComplexTopology = true
	}
	return c
}
