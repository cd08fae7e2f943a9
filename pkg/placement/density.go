package placement

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/anchorplan/anchorplan/pkg/errors"
	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/observability"
	"github.com/anchorplan/anchorplan/pkg/tuning"
)

// DensityOptions configures a density-reduction pass.
// This struct supports JSON serialization for API requests.
type DensityOptions struct {
	// Threshold is the overlap count at which an anchor becomes
	// removable: an anchor overlapping Threshold or more neighbors is a
	// removal candidate. Required, must be positive.
	Threshold int `json:"threshold"`

	// ScaleRatio converts pixels to meters (pixels per meter). Required.
	ScaleRatio float64 `json:"scale_ratio"`

	// RadiusM is the fallback coverage radius for anchors without one.
	RadiusM float64 `json:"radius_m,omitempty"`

	// TargetScope limits removal to anchors in rooms of one size class.
	// Anchors outside every room are only eligible under ScopeAll.
	TargetScope Scope `json:"target_scope,omitempty"`

	// PlacementArea, when a valid polygon, limits removal to anchors
	// inside it.
	PlacementArea geo.Polygon `json:"placement_area,omitempty"`

	// Runtime options (not serialized)
	Tuning *tuning.Tuning `json:"-"`
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
func (o *DensityOptions) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Threshold <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions,
			"overlap threshold must be positive, got %d", o.Threshold)
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
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// OptimizeDensity thins out an over-dense anchor set: as long as any
// eligible anchor overlaps at least Threshold neighbors, the worst
// offender is removed and overlap counts are recomputed. Walls are only
// used to re-derive rooms for size-class scoping and may be nil under
// ScopeAll.
//
// Only unlocked, auto-placed, non-corner anchors inside the active scope
// are ever removed; everything else passes through unchanged, though it
// still counts toward its neighbors' overlap. The anchor count never
// grows, and input order is preserved.
func OptimizeDensity(anchors []Anchor, walls []floorplan.Wall, opts DensityOptions) ([]Anchor, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	ctx := context.Background()
	logger := opts.Logger

	observability.Engine().OnOptimizeStart(ctx, len(anchors), opts.Threshold)

	pool := make([]Anchor, len(anchors))
	copy(pool, anchors)
	eligible := eligibilityMask(pool, walls, &opts)

	// Each pass removes exactly one anchor, so passes are naturally
	// bounded by the pool size; the quadratic budget is the hard stop
	// for adversarial input.
	budget := len(pool) * len(pool)
	removed := 0
	for pass := 0; ; pass++ {
		if pass > budget {
			logger.Warn("density pass budget exhausted, returning partial result",
				"passes", pass, "removed", removed)
			break
		}
		idx := worstOffender(pool, eligible, &opts)
		if idx < 0 {
			break
		}
		logger.Debug("removing overdense anchor", "id", pool[idx].ID, "pass", pass)
		pool = append(pool[:idx], pool[idx+1:]...)
		eligible = append(eligible[:idx], eligible[idx+1:]...)
		removed++
	}

	logger.Info("density reduction complete",
		"input", len(anchors),
		"removed", removed,
		"kept", len(pool),
		"duration", time.Since(start))
	observability.Engine().OnOptimizeComplete(ctx, removed, len(pool), time.Since(start))
	return pool, nil
}

// eligibilityMask marks the anchors the pass may remove: auto-placed,
// unlocked, not corner-protected, and inside the active scope. Size-class
// scoping re-derives the rooms from the walls; class depends only on
// area and span, so no skeletons are built here.
func eligibilityMask(pool []Anchor, walls []floorplan.Wall, opts *DensityOptions) []bool {
	type classedRoom struct {
		poly  geo.Polygon
		class floorplan.Class
	}
	var rooms []classedRoom
	if opts.TargetScope != ScopeAll && len(walls) > 0 {
		for _, r := range floorplan.DetectRooms(walls, opts.Tuning.Detect.SnapEpsilonM*opts.ScaleRatio) {
			c := floorplan.ClassifyRoom(r.Polygon, opts.ScaleRatio, 0, opts.Tuning.Classify)
			rooms = append(rooms, classedRoom{poly: r.Polygon, class: c.Class})
		}
	}
	areaActive := opts.PlacementArea.Valid()

	mask := make([]bool, len(pool))
	for i, a := range pool {
		if !a.Auto || a.Locked || a.Corner {
			continue
		}
		if areaActive && !opts.PlacementArea.Contains(a.Pos()) {
			continue
		}
		if opts.TargetScope != ScopeAll {
			class, found := floorplan.Compact, false
			for _, r := range rooms {
				if r.poly.Contains(a.Pos()) {
					class, found = r.class, true
					break
				}
			}
			if !found || !scopeAllows(opts.TargetScope, class) {
				continue
			}
		}
		mask[i] = true
	}
	return mask
}

// worstOffender returns the index of the eligible anchor with the highest
// overlap count at or above the threshold, or -1 when the set is settled.
// Ties resolve to the earliest index so runs are reproducible.
func worstOffender(pool []Anchor, eligible []bool, opts *DensityOptions) int {
	slack := opts.Tuning.Density.OverlapSlack
	best, bestCount := -1, 0
	for i := range pool {
		if !eligible[i] {
			continue
		}
		count := 0
		for j := range pool {
			if i == j {
				continue
			}
			reach := (pool[i].Radius(opts.RadiusM) + pool[j].Radius(opts.RadiusM)) * opts.ScaleRatio
			if pool[i].Pos().Distance(pool[j].Pos()) <= reach*slack {
				count++
			}
		}
		if count >= opts.Threshold && count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}
