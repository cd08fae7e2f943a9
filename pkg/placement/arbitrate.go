package placement

import (
	"sort"

	"github.com/anchorplan/anchorplan/pkg/geo"
)

// arbitrate resolves raw candidates from all rooms into the accepted set.
// Candidates are walked in priority order (critical first; generation
// order breaks ties, kept stable so runs are reproducible). A candidate
// is accepted only if it clears the priority-scaled conflict distance to
// every previously accepted point, clears the fixed clearance to every
// pre-existing anchor, and lies inside the containment polygon when one
// is active. Rejections are silent; dropping a candidate is the normal
// way duplicates between adjacent rooms disappear.
func arbitrate(cands []Candidate, existing []geo.Point, opts *Options) []Candidate {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	radiusPx := opts.RadiusPx()
	arb := opts.Tuning.Arbitration
	containment := opts.containmentActive()

	accepted := make([]Candidate, 0, len(sorted))
next:
	for _, c := range sorted {
		if !c.Pos.IsFinite() {
			continue
		}
		threshold := c.conflictFactor(arb) * radiusPx
		for _, a := range accepted {
			if c.Pos.Distance(a.Pos) <= threshold {
				continue next
			}
		}
		for _, e := range existing {
			if c.Pos.Distance(e) <= arb.ExistingClearancePx {
				continue next
			}
		}
		if containment && !opts.PlacementArea.Contains(c.Pos) {
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted
}
