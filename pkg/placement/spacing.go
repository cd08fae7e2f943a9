package placement

import "math"

// spacingFactor returns the spacing multiplier in units of the coverage
// radius. An explicit SpacingFactor option wins; otherwise the factor is
// derived from the coverage target and signal floor: the base factor is
// scaled down linearly with demand, bottoming out at half the base when
// both inputs are maxed.
func (o *Options) spacingFactor() float64 {
	if o.SpacingFactor > 0 {
		return o.SpacingFactor
	}
	sp := o.Tuning.Spacing
	covN := (o.CoverageTarget - sp.CoverageMin) / (sp.CoverageMax - sp.CoverageMin)
	sigN := (o.MinSignal - sp.SignalFloorDBm) / (sp.SignalCeilDBm - sp.SignalFloorDBm)
	demand := clamp((covN+sigN)/2, 0, 1)
	return sp.BaseFactor * (1 - 0.5*demand)
}

// fillSpacingM returns the spacing in meters used when interpolating
// anchors along a ring edge or skeleton branch. Two rules compete and the
// tighter one wins:
//
//   - the overlap budget: adjacent coverage disks may overlap by at most
//     the budget, so spacing stays above 2*radius minus it (floored at
//     floorM to survive tiny radii);
//   - the density demand: the spacing factor times the radius, floored
//     at the absolute minimum spacing.
//
// At stock coverage settings the density term is looser than the budget
// term and the budget formula decides alone.
func (o *Options) fillSpacingM(floorM float64) float64 {
	sp := o.Tuning.Spacing
	budget := math.Max(floorM, 2*o.RadiusM-sp.OverlapBudgetM)
	density := math.Max(sp.MinSpacingM, o.spacingFactor()*o.RadiusM)
	return math.Min(budget, density)
}

// fillCount returns how many interior fill points a stretch of length l
// takes at the given spacing: the stretch divides into floor(l/spacing)
// intervals and the interior points sit between them. Fewer than two
// intervals means the endpoints already satisfy the budget and nothing
// is placed.
func fillCount(l, spacing float64) int {
	if spacing <= 0 || l <= 0 {
		return 0
	}
	k := int(l / spacing)
	if k < 2 {
		return 0
	}
	return k - 1
}
