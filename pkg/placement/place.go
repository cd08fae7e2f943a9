package placement

import (
	"context"
	"time"

	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/observability"
)

// Place runs the full placement pipeline: detect rooms from the walls,
// derive per-room geometry, generate and arbitrate candidates, and return
// the final anchors. existing holds the positions of anchors already on
// the plan; new anchors keep their distance from them.
//
// The only error condition is invalid options. Geometry failures degrade
// per room: a room the engine cannot process contributes no anchors and
// the run continues. Calling Place twice with identical inputs returns
// identical anchors, ids included.
func Place(walls []floorplan.Wall, opts Options, existing []geo.Point) ([]Anchor, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	ctx := context.Background()
	logger := opts.Logger

	observability.Engine().OnPlaceStart(ctx, len(walls), len(existing))

	detectStart := time.Now()
	observability.Engine().OnDetectStart(ctx, len(walls))
	rooms := floorplan.DetectRooms(walls, opts.Tuning.Detect.SnapEpsilonM*opts.ScaleRatio)
	observability.Engine().OnDetectComplete(ctx, len(walls), len(rooms), time.Since(detectStart))
	logger.Debug("rooms detected", "walls", len(walls), "rooms", len(rooms))

	anchors := placeRooms(ctx, rooms, existing, &opts)

	logger.Info("placement complete",
		"rooms", len(rooms),
		"anchors", len(anchors),
		"duration", time.Since(start))
	observability.Engine().OnPlaceComplete(ctx, len(anchors), time.Since(start), nil)
	return anchors, nil
}

// PlaceRooms runs placement on pre-detected rooms. Place is equivalent to
// [floorplan.DetectRooms] followed by PlaceRooms; the pipeline runner uses
// this entry so a cached room set skips detection entirely.
func PlaceRooms(rooms []floorplan.Room, opts Options, existing []geo.Point) ([]Anchor, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	ctx := context.Background()

	observability.Engine().OnPlaceStart(ctx, 0, len(existing))
	anchors := placeRooms(ctx, rooms, existing, &opts)

	opts.Logger.Info("placement complete",
		"rooms", len(rooms),
		"anchors", len(anchors),
		"duration", time.Since(start))
	observability.Engine().OnPlaceComplete(ctx, len(anchors), time.Since(start), nil)
	return anchors, nil
}

// placeRooms generates candidates per room and arbitrates them into the
// final anchor set.
func placeRooms(ctx context.Context, rooms []floorplan.Room, existing []geo.Point, opts *Options) []Anchor {
	var all []Candidate
	for _, room := range rooms {
		all = append(all, roomCandidates(ctx, room, opts)...)
	}

	accepted := arbitrate(all, existing, opts)
	anchors := make([]Anchor, 0, len(accepted))
	for _, c := range accepted {
		anchors = append(anchors, newAnchor(c, opts))
	}
	return anchors
}

// roomCandidates runs the selected strategy for one room. Geometry code
// panicking on pathological input is contained here: the room is logged
// and skipped, the run continues.
func roomCandidates(ctx context.Context, room floorplan.Room, opts *Options) (cands []Candidate) {
	logger := opts.Logger
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("room skipped after geometry failure", "room", room.Index, "reason", r)
			cands = nil
		}
	}()

	if !room.Polygon.Valid() {
		logger.Debug("degenerate room skipped", "room", room.Index)
		return nil
	}

	rc, err := buildRoomContext(room, opts)
	if err != nil {
		logger.Warn("skeleton failed, room skipped", "room", room.Index, "err", err)
		return nil
	}
	if !scopeAllows(opts.TargetScope, rc.class.Class) {
		return nil
	}

	name, strategy := strategyFor(rc, opts)
	roomStart := time.Now()
	observability.Engine().OnRoomStart(ctx, room.Index, rc.class.Class.String())

	raw := strategy(rc, opts)
	cands = filterInside(raw, rc)

	logger.Debug("strategy finished",
		"room", room.Index,
		"class", rc.class.Class,
		"strategy", name,
		"junctions", rc.class.Junctions,
		"candidates", len(cands))
	observability.Engine().OnRoomComplete(ctx, room.Index, rc.class.Class.String(), len(cands), time.Since(roomStart), nil)
	return cands
}

// filterInside drops candidates with non-finite coordinates or positions
// outside the room. Strategy geometry keeps its points interior by
// construction, but Voronoi noise and centroid fallbacks are not trusted.
func filterInside(cands []Candidate, rc roomContext) []Candidate {
	out := cands[:0:0]
	for _, c := range cands {
		if !c.Pos.IsFinite() {
			continue
		}
		if !rc.room.Polygon.Contains(c.Pos) {
			continue
		}
		out = append(out, c)
	}
	return out
}
