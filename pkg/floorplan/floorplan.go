// Package floorplan turns raw wall segments into rooms. Walls are treated
// as edges of a planar graph; the bounded faces of that graph are the
// enclosed rooms. Detection is purely geometric: segments that do not
// participate in any closed loop contribute nothing.
package floorplan

import "github.com/anchorplan/anchorplan/pkg/geo"

// Wall is a single wall segment in pixel coordinates. Thickness and
// Material are annotations carried through from the source drawing;
// detection considers only the centerline endpoints.
type Wall struct {
	Start     geo.Point `json:"start"`
	End       geo.Point `json:"end"`
	Thickness float64   `json:"thickness,omitempty"`
	Material  string    `json:"material,omitempty"`
}

// Length returns the wall length in pixels.
func (w Wall) Length() float64 {
	return w.Start.Distance(w.End)
}

// Room is an enclosed region reconstructed from the wall graph. Index is
// the room's position in the canonically sorted detection output and is
// stable for a given floor plan regardless of wall input order.
type Room struct {
	Index   int         `json:"index"`
	Polygon geo.Polygon `json:"polygon"`
}

// AreaM2 returns the room area in square meters for the given scale
// (pixels per meter).
func (r Room) AreaM2(scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	return r.Polygon.AbsArea() / (scale * scale)
}

// SpanM returns the larger bounding-box dimension in meters.
func (r Room) SpanM(scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	return r.Polygon.MaxSpan() / scale
}
