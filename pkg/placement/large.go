package placement

import (
	"math"

	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/skeleton"
)

var infDistance = math.Inf(1)

// wideCandidates covers a wide large room with concentric offset rings.
// Rings are generated at odd multiples of the offset step (step, 3*step,
// 5*step, ...) until one vanishes or the ring cap trips. Every ring
// vertex becomes a corner-protected critical candidate; ring edges long
// enough to leave a coverage gap are filled at the overlap-budget
// spacing. Skeleton junctions left uncovered by the rings are added
// afterwards, and branches connecting two such gap junctions are filled
// under the same budget.
func wideCandidates(rc roomContext, opts *Options) []Candidate {
	t := opts.Tuning
	scale := opts.ScaleRatio
	stepPx := opts.OffsetStepM * scale
	edgeMinPx := t.Rings.EdgeFillMinM * scale
	spacingPx := opts.fillSpacingM(t.Rings.EdgeSpacingFloorM) * scale

	var out []Candidate
	for k := 0; k < t.Rings.MaxRings; k++ {
		d := float64(2*k+1) * stepPx
		rings := rc.room.Polygon.Offset(-d)
		if len(rings) == 0 {
			break
		}
		for _, ring := range rings {
			out = appendRingCandidates(out, ring, rc.room.Index, edgeMinPx, spacingPx)
		}
	}

	out = appendJunctionGapFill(out, rc, t.Rings.JunctionGapM*scale, spacingPx)
	return out
}

// appendRingCandidates emits a corner candidate per ring vertex and fills
// long edges with interior candidates at the given spacing.
func appendRingCandidates(out []Candidate, ring geo.Polygon, roomIndex int, edgeMinPx, spacingPx float64) []Candidate {
	for i, v := range ring {
		out = append(out, Candidate{
			Pos:       v,
			Priority:  PriorityCritical,
			Corner:    true,
			RoomIndex: roomIndex,
		})

		w := ring[(i+1)%len(ring)]
		l := v.Distance(w)
		if l <= edgeMinPx {
			continue
		}
		n := fillCount(l, spacingPx)
		for f := 1; f <= n; f++ {
			out = append(out, Candidate{
				Pos:       v.Lerp(w, float64(f)/float64(n+1)),
				Priority:  PriorityCritical,
				RoomIndex: roomIndex,
			})
		}
	}
	return out
}

// appendJunctionGapFill adds skeleton junctions that ended up farther
// than gapPx from every ring candidate, then fills branches whose both
// endpoints were added this way. Ring placement follows the walls; in
// rooms with interior structure the skeleton junctions mark meeting
// points the rings can miss entirely.
func appendJunctionGapFill(out []Candidate, rc roomContext, gapPx, spacingPx float64) []Candidate {
	gapNodes := make(map[int]bool)
	for _, j := range rc.skel.Junctions() {
		if nearestCandidate(out, j.Pos) <= gapPx {
			continue
		}
		out = append(out, Candidate{
			Pos:       j.Pos,
			Priority:  PriorityCritical,
			RoomIndex: rc.room.Index,
		})
		gapNodes[j.Node] = true
	}
	if len(gapNodes) < 2 {
		return out
	}

	for _, b := range rc.skel.Branches {
		if b.From() == b.To() || !gapNodes[b.From()] || !gapNodes[b.To()] {
			continue
		}
		out = appendBranchFill(out, b, rc.room.Index, spacingPx)
	}
	return out
}

// narrowCandidates covers a room along its medial-axis skeleton: a
// critical candidate at every junction, plus interior fill along every
// branch long enough to leave a gap between its endpoint anchors. Long
// thin rooms and complex-topology small rooms both route here.
func narrowCandidates(rc roomContext, opts *Options) []Candidate {
	t := opts.Tuning
	scale := opts.ScaleRatio
	minLenPx := t.Skeleton.BranchFillMinM * scale
	spacingPx := opts.fillSpacingM(t.Skeleton.BranchSpacingFloorM) * scale

	var out []Candidate
	for _, j := range rc.skel.Junctions() {
		out = append(out, Candidate{
			Pos:       j.Pos,
			Priority:  PriorityCritical,
			RoomIndex: rc.room.Index,
		})
	}
	for _, b := range rc.skel.Branches {
		if b.Length() <= minLenPx {
			continue
		}
		out = appendBranchFill(out, b, rc.room.Index, spacingPx)
	}
	return out
}

// appendBranchFill interpolates critical candidates along a branch at
// the given spacing. Nothing is placed when fewer than two spacing
// intervals fit.
func appendBranchFill(out []Candidate, b skeleton.Branch, roomIndex int, spacingPx float64) []Candidate {
	l := b.Length()
	n := fillCount(l, spacingPx)
	for f := 1; f <= n; f++ {
		out = append(out, Candidate{
			Pos:       b.PointAt(l * float64(f) / float64(n+1)),
			Priority:  PriorityCritical,
			RoomIndex: roomIndex,
		})
	}
	return out
}

// nearestCandidate returns the distance from p to the closest candidate,
// or +Inf for an empty list.
func nearestCandidate(cands []Candidate, p geo.Point) float64 {
	best := infDistance
	for _, c := range cands {
		if d := c.Pos.Distance(p); d < best {
			best = d
		}
	}
	return best
}
