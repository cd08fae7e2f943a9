package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/anchorplan/anchorplan/pkg/cache"
	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/geo"
	"github.com/anchorplan/anchorplan/pkg/observability"
	"github.com/anchorplan/anchorplan/pkg/placement"
)

// Runner encapsulates pipeline execution with caching. Both CLI and API
// use it so the caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger - it does not
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// The cache is wrapped so hits and misses reach the observability hooks.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.Instrument(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete detect → place pipeline with caching.
// existing holds the anchors already on the plan; they keep their
// positions and the new anchors keep their distance from them.
func (r *Runner) Execute(ctx context.Context, walls []floorplan.Wall, existing []placement.Anchor, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		PlanHash: planFingerprint(walls, existing),
	}
	result.Stats.WallCount = len(walls)

	// Stage 1: Detect
	detectStart := time.Now()
	rooms, roomsHit, err := r.DetectWithCacheInfo(ctx, walls, opts)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	result.Rooms = rooms
	result.Stats.DetectTime = time.Since(detectStart)
	result.Stats.RoomCount = len(rooms)
	result.CacheInfo.RoomsHit = roomsHit

	r.Logger.Info("rooms detected",
		"walls", len(walls),
		"rooms", len(rooms),
		"cached", roomsHit,
		"duration", result.Stats.DetectTime)

	// Stage 2: Place
	placeStart := time.Now()
	anchors, placeHit, err := r.PlaceWithCacheInfo(ctx, rooms, existing, opts)
	if err != nil {
		return nil, fmt.Errorf("place: %w", err)
	}
	result.Anchors = anchors
	result.Stats.PlaceTime = time.Since(placeStart)
	result.Stats.AnchorCount = len(anchors)
	result.CacheInfo.PlacementHit = placeHit

	r.Logger.Info("anchors placed",
		"anchors", len(anchors),
		"cached", placeHit,
		"duration", result.Stats.PlaceTime)

	return result, nil
}

// DetectWithCacheInfo detects rooms with caching and returns cache hit
// info.
func (r *Runner) DetectWithCacheInfo(ctx context.Context, walls []floorplan.Wall, opts Options) ([]floorplan.Room, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	tun := opts.Placement.Tuning
	scale := opts.Placement.ScaleRatio
	key := r.Keyer.RoomsKey(wallsFingerprint(walls), cache.RoomsKeyOpts{
		SnapEpsilonM: tun.Detect.SnapEpsilonM,
		ScaleRatio:   scale,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var rooms []floorplan.Room
		if err := cache.GetJSON(ctx, r.Cache, key, &rooms); err == nil {
			return rooms, true, nil
		}
	}

	// Detect
	start := time.Now()
	observability.Engine().OnDetectStart(ctx, len(walls))
	rooms := floorplan.DetectRooms(walls, tun.Detect.SnapEpsilonM*scale)
	observability.Engine().OnDetectComplete(ctx, len(walls), len(rooms), time.Since(start))

	// Cache the result
	_ = cache.SetJSON(ctx, r.Cache, key, rooms, cache.TTLRooms)

	return rooms, false, nil
}

// Detect is a convenience wrapper that calls DetectWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Detect(ctx context.Context, walls []floorplan.Wall, opts Options) ([]floorplan.Room, error) {
	rooms, _, err := r.DetectWithCacheInfo(ctx, walls, opts)
	return rooms, err
}

// PlaceWithCacheInfo places anchors in pre-detected rooms with caching
// and returns cache hit info.
func (r *Runner) PlaceWithCacheInfo(ctx context.Context, rooms []floorplan.Room, existing []placement.Anchor, opts Options) ([]placement.Anchor, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Every input that can change the output is part of the key: the
	// rooms, the existing anchors, the serialized options, and the
	// tuning profile (excluded from the options serialization).
	roomsData, _ := json.Marshal(struct {
		Rooms    []floorplan.Room   `json:"rooms"`
		Existing []placement.Anchor `json:"existing"`
	}{rooms, existing})
	optsData, _ := json.Marshal(opts.Placement)
	tunData, _ := json.Marshal(opts.Placement.Tuning)

	key := r.Keyer.PlacementKey(cache.Hash(roomsData), cache.PlacementKeyOpts{
		OptionsHash: cache.Hash(optsData),
		TuningHash:  cache.Hash(tunData),
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var anchors []placement.Anchor
		if err := cache.GetJSON(ctx, r.Cache, key, &anchors); err == nil {
			return anchors, true, nil
		}
	}

	// Place
	anchors, err := placement.PlaceRooms(rooms, opts.Placement, anchorPositions(existing))
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	_ = cache.SetJSON(ctx, r.Cache, key, anchors, cache.TTLPlacement)

	return anchors, false, nil
}

// Place is a convenience wrapper that calls PlaceWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Place(ctx context.Context, rooms []floorplan.Room, existing []placement.Anchor, opts Options) ([]placement.Anchor, error) {
	anchors, _, err := r.PlaceWithCacheInfo(ctx, rooms, existing, opts)
	return anchors, err
}

// Optimize runs the density-reduction pass. Density input sets rarely
// repeat, so the pass is not cached.
func (r *Runner) Optimize(ctx context.Context, anchors []placement.Anchor, walls []floorplan.Wall, opts placement.DensityOptions) ([]placement.Anchor, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return placement.OptimizeDensity(anchors, walls, opts)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// wallsFingerprint hashes the serialized wall set.
func wallsFingerprint(walls []floorplan.Wall) string {
	data, _ := json.Marshal(walls)
	return cache.Hash(data)
}

// planFingerprint hashes the whole placement input: walls plus existing
// anchors.
func planFingerprint(walls []floorplan.Wall, existing []placement.Anchor) string {
	data, _ := json.Marshal(struct {
		Walls    []floorplan.Wall   `json:"walls"`
		Existing []placement.Anchor `json:"existing"`
	}{walls, existing})
	return cache.Hash(data)
}

// anchorPositions projects anchors to their positions for the engine's
// clearance checks.
func anchorPositions(anchors []placement.Anchor) []geo.Point {
	if len(anchors) == 0 {
		return nil
	}
	pts := make([]geo.Point, len(anchors))
	for i, a := range anchors {
		pts[i] = a.Pos()
	}
	return pts
}
