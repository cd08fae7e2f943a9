package placement

import (
	"math"

	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/skeleton"
)

// roomContext bundles everything the strategies need for one room: the
// polygon, its skeleton, and the classification verdict.
type roomContext struct {
	room  floorplan.Room
	skel  *skeleton.Skeleton
	class floorplan.Classification
}

// buildRoomContext derives the skeleton and classification for a room.
// The classification counts only true topological junctions (degree >= 3);
// bend junctions influence placement but not room class.
func buildRoomContext(room floorplan.Room, opts *Options) (roomContext, error) {
	t := opts.Tuning
	cfg := skeleton.Config{
		SampleStep:    math.Max(t.Skeleton.SampleStepMinPx, t.Skeleton.SampleStepM*opts.ScaleRatio),
		MaxSites:      t.Skeleton.MaxSites,
		NeighborGap:   t.Skeleton.NeighborGap,
		SnapTolerance: t.Skeleton.SnapTolerancePx,
		BendThreshold: t.Skeleton.BendThresholdDeg,
	}
	skel, err := skeleton.Build(room.Polygon, cfg)
	if err != nil {
		return roomContext{}, err
	}

	topo := 0
	for _, j := range skel.Junctions() {
		if !j.Geometric {
			topo++
		}
	}
	return roomContext{
		room:  room,
		skel:  skel,
		class: floorplan.ClassifyRoom(room.Polygon, opts.ScaleRatio, topo, t.Classify),
	}, nil
}

// scopeAllows reports whether rooms of the given class participate in a
// run with the given target scope.
func scopeAllows(scope Scope, class floorplan.Class) bool {
	switch scope {
	case ScopeSmall:
		return class == floorplan.Compact || class == floorplan.Extended
	case ScopeLarge:
		return class == floorplan.Large
	}
	return true
}

// strategyFor selects the candidate generator for a room. Complex
// topology overrides size: a small room with enough junctions is covered
// along its skeleton like a narrow large room, because a centroid or a
// pair of endpoint anchors would leave whole wings dark.
func strategyFor(rc roomContext, opts *Options) (string, func(roomContext, *Options) []Candidate) {
	if rc.class.ComplexTopology {
		return "skeleton", narrowCandidates
	}
	switch rc.class.Class {
	case floorplan.Large:
		if acceptsOffset(rc, opts) {
			return "rings", wideCandidates
		}
		return "skeleton", narrowCandidates
	case floorplan.Extended:
		return "extended", extendedCandidates
	default:
		return "compact", compactCandidates
	}
}

// acceptsOffset reports whether the room survives a single inward offset
// step without vanishing. Wide rooms do; long thin rooms collapse and are
// covered along the skeleton instead.
func acceptsOffset(rc roomContext, opts *Options) bool {
	d := opts.OffsetStepM * opts.ScaleRatio
	return len(rc.room.Polygon.Offset(-d)) > 0
}

// compactCandidates covers a compact room with a single anchor at its
// area centroid. Concave rooms whose centroid falls outside the polygon
// fall back to the midpoint of the longest skeleton branch, which is
// interior by construction.
func compactCandidates(rc roomContext, opts *Options) []Candidate {
	pos := rc.room.Polygon.Centroid()
	if !rc.room.Polygon.Contains(pos) {
		b, ok := rc.skel.LongestBranch()
		if !ok {
			return nil
		}
		pos = b.Midpoint()
	}
	return []Candidate{{
		Pos:       pos,
		Priority:  PriorityCritical,
		RoomIndex: rc.room.Index,
	}}
}

// extendedCandidates covers an elongated room along its skeleton:
// junction nodes when there are any, otherwise the corridor's terminal
// nodes, otherwise the midpoint of the longest branch (a pure loop
// skeleton has neither junctions nor terminals). A room whose skeleton
// collapsed entirely gets its centroid as a last resort.
func extendedCandidates(rc roomContext, opts *Options) []Candidate {
	var out []Candidate

	if js := rc.skel.Junctions(); len(js) > 0 {
		for _, j := range js {
			out = append(out, Candidate{
				Pos:       j.Pos,
				Priority:  PriorityHigh,
				RoomIndex: rc.room.Index,
			})
		}
		return out
	}

	if ts := rc.skel.Terminals(); len(ts) > 0 {
		for _, t := range ts {
			out = append(out, Candidate{
				Pos:       t.Pos,
				Priority:  PriorityNormal,
				RoomIndex: rc.room.Index,
			})
		}
		return out
	}

	if b, ok := rc.skel.LongestBranch(); ok {
		return []Candidate{{
			Pos:       b.Midpoint(),
			Priority:  PriorityNormal,
			RoomIndex: rc.room.Index,
		}}
	}

	opts.Logger.Debug("skeleton empty, falling back to centroid", "room", rc.room.Index)
	return []Candidate{{
		Pos:       rc.room.Polygon.Centroid(),
		Priority:  PriorityNormal,
		RoomIndex: rc.room.Index,
	}}
}
