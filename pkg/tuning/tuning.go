// Package tuning collects every numeric knob of the placement engine in
// one place: classification thresholds, spacing formula parameters, angle
// thresholds, and iteration caps. Values ship with working defaults and
// can be overridden from a TOML profile, so field-tuning a deployment does
// not require a rebuild.
package tuning

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Detect holds room detection parameters.
type Detect struct {
	// SnapEpsilonM is the endpoint merge tolerance in world meters.
	// Wall corners drawn within this distance count as the same corner.
	SnapEpsilonM float64 `toml:"snap_epsilon_m"`
}

// Classify holds room classification thresholds.
type Classify struct {
	// LargeAreaM2 is the floor area above which a room is large.
	LargeAreaM2 float64 `toml:"large_area_m2"`
	// ExtendedSpanM is the bounding-box span at or above which a
	// non-large room is extended rather than compact.
	ExtendedSpanM float64 `toml:"extended_span_m"`
	// ComplexJunctions is the skeleton junction count at or above which
	// a compact or extended room is routed through the skeleton
	// strategy regardless of its size class.
	ComplexJunctions int `toml:"complex_junctions"`
}

// Rings holds inward offset-ring parameters for wide large rooms.
type Rings struct {
	// StepM is the base ring offset step; rings are generated at odd
	// multiples of it (step, 3*step, 5*step, ...).
	StepM float64 `toml:"step_m"`
	// MaxRings caps ring generation independently of room size.
	MaxRings int `toml:"max_rings"`
	// EdgeFillMinM is the ring edge length above which intermediate
	// anchors are interpolated along the edge.
	EdgeFillMinM float64 `toml:"edge_fill_min_m"`
	// EdgeSpacingFloorM is the lower bound on interpolated spacing.
	EdgeSpacingFloorM float64 `toml:"edge_spacing_floor_m"`
	// JunctionGapM is the distance from a skeleton junction to the
	// nearest ring candidate above which the junction itself gets an
	// anchor.
	JunctionGapM float64 `toml:"junction_gap_m"`
}

// Skeleton holds medial-axis extraction parameters.
type Skeleton struct {
	// SampleStepM is the target boundary site spacing in meters.
	SampleStepM float64 `toml:"sample_step_m"`
	// SampleStepMinPx floors the site spacing in pixels so tiny scale
	// ratios cannot explode the site count.
	SampleStepMinPx float64 `toml:"sample_step_min_px"`
	// MaxSites caps the number of boundary sites per room.
	MaxSites int `toml:"max_sites"`
	// NeighborGap is the minimum circular site-index distance for a
	// Voronoi edge to count as medial.
	NeighborGap int `toml:"neighbor_gap"`
	// SnapTolerancePx clusters Voronoi vertices into graph nodes.
	SnapTolerancePx float64 `toml:"snap_tolerance_px"`
	// BendThresholdDeg splits branches at turns sharper than this.
	BendThresholdDeg float64 `toml:"bend_threshold_deg"`
	// BranchFillMinM is the branch length above which narrow-room
	// placement interpolates interior anchors.
	BranchFillMinM float64 `toml:"branch_fill_min_m"`
	// BranchSpacingFloorM is the lower bound on branch interpolation
	// spacing.
	BranchSpacingFloorM float64 `toml:"branch_spacing_floor_m"`
}

// Spacing holds the parameters of the spacing formulas shared by the
// fill-style strategies.
type Spacing struct {
	// OverlapBudgetM caps how far two adjacent coverage disks may
	// overlap: spacing is never tighter than 2*radius minus this.
	OverlapBudgetM float64 `toml:"overlap_budget_m"`
	// BaseFactor is the nominal spacing factor in units of radius before
	// the density modifier is applied.
	BaseFactor float64 `toml:"base_factor"`
	// MinSpacingM is the absolute spacing floor regardless of how
	// aggressive the density settings are.
	MinSpacingM float64 `toml:"min_spacing_m"`
	// CoverageMin and CoverageMax bound the coverage-target input of the
	// density modifier.
	CoverageMin float64 `toml:"coverage_min"`
	CoverageMax float64 `toml:"coverage_max"`
	// SignalFloorDBm and SignalCeilDBm bound the minimum-signal input of
	// the density modifier.
	SignalFloorDBm float64 `toml:"signal_floor_dbm"`
	SignalCeilDBm  float64 `toml:"signal_ceil_dbm"`
}

// Arbitration holds conflict-resolution distances. Factors are in units
// of the coverage radius; clearances are absolute pixels.
type Arbitration struct {
	CriticalFactor float64 `toml:"critical_factor"`
	HighFactor     float64 `toml:"high_factor"`
	NormalFactor   float64 `toml:"normal_factor"`
	// ExistingClearancePx is the minimum distance to a manually placed
	// anchor.
	ExistingClearancePx float64 `toml:"existing_clearance_px"`
}

// Density holds density-reduction parameters.
type Density struct {
	// OverlapSlack widens the overlap test slightly so disks that touch
	// within float noise still count as overlapping.
	OverlapSlack float64 `toml:"overlap_slack"`
}

// Tuning is the complete tuning profile of the engine.
type Tuning struct {
	Detect      Detect      `toml:"detect"`
	Classify    Classify    `toml:"classify"`
	Rings       Rings       `toml:"rings"`
	Skeleton    Skeleton    `toml:"skeleton"`
	Spacing     Spacing     `toml:"spacing"`
	Arbitration Arbitration `toml:"arbitration"`
	Density     Density     `toml:"density"`
}

// Default returns the stock tuning profile.
func Default() Tuning {
	return Tuning{
		Detect: Detect{
			SnapEpsilonM: 0.01,
		},
		Classify: Classify{
			LargeAreaM2:      110,
			ExtendedSpanM:    13,
			ComplexJunctions: 3,
		},
		Rings: Rings{
			StepM:             5,
			MaxRings:          12,
			EdgeFillMinM:      13,
			EdgeSpacingFloorM: 0.1,
			JunctionGapM:      8,
		},
		Skeleton: Skeleton{
			SampleStepM:         0.4,
			SampleStepMinPx:     2,
			MaxSites:            1200,
			NeighborGap:         2,
			SnapTolerancePx:     3,
			BendThresholdDeg:    45,
			BranchFillMinM:      15,
			BranchSpacingFloorM: 1,
		},
		Spacing: Spacing{
			OverlapBudgetM: 1.5,
			BaseFactor:     1.9,
			MinSpacingM:    3,
			CoverageMin:    50,
			CoverageMax:    100,
			SignalFloorDBm: -90,
			SignalCeilDBm:  -40,
		},
		Arbitration: Arbitration{
			CriticalFactor:      0.4,
			HighFactor:          0.9,
			NormalFactor:        1.2,
			ExistingClearancePx: 10,
		},
		Density: Density{
			OverlapSlack: 1.01,
		},
	}
}

// Load reads a TOML profile from path on top of the defaults: keys absent
// from the file keep their stock values.
func Load(path string) (Tuning, error) {
	t := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning profile: %w", err)
	}
	if err := toml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning profile: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

// Validate checks the profile for values the engine cannot work with.
func (t Tuning) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{t.Detect.SnapEpsilonM > 0, "detect.snap_epsilon_m must be positive"},
		{t.Classify.LargeAreaM2 > 0, "classify.large_area_m2 must be positive"},
		{t.Classify.ExtendedSpanM > 0, "classify.extended_span_m must be positive"},
		{t.Classify.ComplexJunctions > 0, "classify.complex_junctions must be positive"},
		{t.Rings.StepM > 0, "rings.step_m must be positive"},
		{t.Rings.MaxRings > 0, "rings.max_rings must be positive"},
		{t.Rings.EdgeSpacingFloorM > 0, "rings.edge_spacing_floor_m must be positive"},
		{t.Skeleton.SampleStepM > 0, "skeleton.sample_step_m must be positive"},
		{t.Skeleton.MaxSites > 3, "skeleton.max_sites must exceed 3"},
		{t.Skeleton.NeighborGap > 0, "skeleton.neighbor_gap must be positive"},
		{t.Spacing.OverlapBudgetM >= 0, "spacing.overlap_budget_m must not be negative"},
		{t.Spacing.BaseFactor > 0, "spacing.base_factor must be positive"},
		{t.Spacing.MinSpacingM > 0, "spacing.min_spacing_m must be positive"},
		{t.Spacing.CoverageMax > t.Spacing.CoverageMin, "spacing.coverage_max must exceed coverage_min"},
		{t.Spacing.SignalCeilDBm > t.Spacing.SignalFloorDBm, "spacing.signal_ceil_dbm must exceed signal_floor_dbm"},
		{t.Arbitration.CriticalFactor > 0, "arbitration.critical_factor must be positive"},
		{t.Density.OverlapSlack >= 1, "density.overlap_slack must be at least 1"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("tuning: %s", c.msg)
		}
	}
	return nil
}
