// Package placement is the core of the Anchorplan engine: it turns wall
// segments into a finished set of anchor positions.
//
// # Architecture
//
// The pipeline runs in five stages:
//
//  1. Detect: reconstruct enclosed room polygons from the wall graph
//  2. Skeletonize: derive offset rings and a medial-axis skeleton per room
//  3. Classify: bucket each room as compact, extended, or large
//  4. Strategize: run the classification's candidate generator
//  5. Arbitrate: resolve all candidates into the final anchor set
//
// Everything is synchronous and pure: a call takes a snapshot of walls,
// options, and existing anchors and returns a fresh result. Calling again
// with the same inputs returns the same anchors, ids included.
//
// # Usage
//
//	opts := placement.Options{ScaleRatio: 10, RadiusM: 8}
//	anchors, err := placement.Place(walls, opts, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Density reduction over an existing anchor set is a separate entry point:
//
//	kept, err := placement.OptimizeDensity(anchors, walls, placement.DensityOptions{
//	    Threshold:  3,
//	    ScaleRatio: 10,
//	    RadiusM:    8,
//	})
package placement

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/anchorplan/anchorplan/pkg/errors"
	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/tuning"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultRadiusM is the coverage radius assumed when none is given.
	DefaultRadiusM = 8.0

	// DefaultShape is the coverage shape tag attached to anchors. The
	// engine treats it as opaque; only the drawing surface interprets it.
	DefaultShape = "circle"

	// DefaultCoverageTarget is the coverage percentage at which the
	// density modifier leaves the base spacing factor untouched.
	DefaultCoverageTarget = 50.0

	// DefaultMinSignal is the signal floor in dBm at which the density
	// modifier leaves the base spacing factor untouched.
	DefaultMinSignal = -90.0
)

// Scope selects which anchors a pass applies to.
type Scope string

// Valid scopes for placement and density reduction.
const (
	// ScopeAll applies to every room and every anchor.
	ScopeAll Scope = "all"
	// ScopeSmall applies to compact and extended rooms only.
	ScopeSmall Scope = "small"
	// ScopeLarge applies to large rooms only.
	ScopeLarge Scope = "large"
)

// ValidScopes is the set of supported scope values.
var ValidScopes = map[Scope]bool{
	ScopeAll:   true,
	ScopeSmall: true,
	ScopeLarge: true,
}

// ValidateScope checks that a scope is valid.
func ValidateScope(scope Scope) error {
	if !ValidScopes[scope] {
		return errors.New(errors.ErrCodeInvalidScope,
			"invalid scope: %q (must be one of: all, small, large)", scope)
	}
	return nil
}

// =============================================================================
// Options - Placement Configuration
// =============================================================================

// Options contains all configuration for a placement run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// ScaleRatio converts pixels to meters (pixels per meter). Required.
	ScaleRatio float64 `json:"scale_ratio"`

	// RadiusM is the coverage radius in meters.
	RadiusM float64 `json:"radius_m,omitempty"`

	// Shape is the coverage shape tag copied onto every anchor.
	Shape string `json:"shape,omitempty"`

	// ShowRadius is a display flag copied onto every anchor.
	ShowRadius bool `json:"show_radius,omitempty"`

	// MinOverlapM is a legacy tuning field kept for plan-file
	// compatibility; the engine does not read it.
	MinOverlapM float64 `json:"min_overlap_m,omitempty"`

	// WallThicknessM is the drawn wall thickness; informational only.
	WallThicknessM float64 `json:"wall_thickness_m,omitempty"`

	// SpacingFactor overrides the density-derived spacing factor when
	// positive. Zero means derive from CoverageTarget and MinSignal.
	SpacingFactor float64 `json:"spacing_factor,omitempty"`

	// TargetScope limits placement to rooms of one size class.
	TargetScope Scope `json:"target_scope,omitempty"`

	// CoverageTarget is the desired coverage percentage (50-100).
	// Values outside the range are clamped.
	CoverageTarget float64 `json:"coverage_target,omitempty"`

	// MinSignal is the minimum acceptable signal strength in dBm
	// (-90..-40). Values outside the range are clamped.
	MinSignal float64 `json:"min_signal,omitempty"`

	// OffsetStepM overrides the ring offset step for large rooms.
	// Zero means use the tuning profile's value.
	OffsetStepM float64 `json:"offset_step_m,omitempty"`

	// PlacementArea restricts accepted anchors to a containment polygon
	// when PlacementAreaEnabled is set.
	PlacementArea        geo.Polygon `json:"placement_area,omitempty"`
	PlacementAreaEnabled bool        `json:"placement_area_enabled,omitempty"`

	// Runtime options (not serialized)
	Tuning *tuning.Tuning `json:"-"`
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := errors.ValidateScale(o.ScaleRatio); err != nil {
		return err
	}
	if o.RadiusM == 0 {
		o.RadiusM = DefaultRadiusM
	}
	if err := errors.ValidateRadius(o.RadiusM); err != nil {
		return err
	}
	if o.Shape == "" {
		o.Shape = DefaultShape
	}
	if o.TargetScope == "" {
		o.TargetScope = ScopeAll
	}
	if err := ValidateScope(o.TargetScope); err != nil {
		return err
	}
	if o.Tuning == nil {
		t := tuning.Default()
		o.Tuning = &t
	}
	if err := o.Tuning.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTuning, err, "tuning profile rejected")
	}

	sp := o.Tuning.Spacing
	if o.CoverageTarget == 0 {
		o.CoverageTarget = DefaultCoverageTarget
	}
	o.CoverageTarget = clamp(o.CoverageTarget, sp.CoverageMin, sp.CoverageMax)
	if o.MinSignal == 0 {
		o.MinSignal = DefaultMinSignal
	}
	o.MinSignal = clamp(o.MinSignal, sp.SignalFloorDBm, sp.SignalCeilDBm)

	if o.OffsetStepM == 0 {
		o.OffsetStepM = o.Tuning.Rings.StepM
	}
	if o.OffsetStepM <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions,
			"offset step must be positive, got %v", o.OffsetStepM)
	}
	if o.PlacementAreaEnabled && !o.PlacementArea.Valid() {
		return errors.New(errors.ErrCodeInvalidOptions,
			"placement area is enabled but not a valid polygon")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// RadiusPx returns the coverage radius in pixels.
func (o *Options) RadiusPx() float64 {
	return o.RadiusM * o.ScaleRatio
}

// containmentActive reports whether accepted anchors must lie inside the
// placement area.
func (o *Options) containmentActive() bool {
	return o.PlacementAreaEnabled && o.PlacementArea.Valid()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
