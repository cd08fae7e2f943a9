// Package pipeline provides the placement pipeline shared by the CLI and
// the HTTP API.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Detect: reconstruct rooms from the wall segments
//  2. Place: generate and arbitrate anchors for the detected rooms
//
// Both stages are pure functions of their inputs, so their results are
// cached by content hash. Each stage can be run independently or as part
// of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	opts := pipeline.Options{
//	    Placement: placement.Options{ScaleRatio: 10},
//	}
//	result, err := runner.Execute(ctx, plan.Walls, plan.Anchors, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	anchors := result.Anchors
//
// Run individual stages:
//
//	// Detection only
//	rooms, err := runner.Detect(ctx, walls, opts)
//
//	// Placement with pre-detected rooms
//	anchors, err := runner.Place(ctx, rooms, existing, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/placement"
)

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Placement carries the engine options for the placement stage.
	// Detection reads its scale and tuning profile.
	Placement placement.Options `json:"placement"`

	// Refresh bypasses cache reads. Fresh results are still written
	// back, so a refreshed run repopulates the cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

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
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Placement.Logger == nil {
		o.Placement.Logger = o.Logger
	}
	if err := o.Placement.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Rooms are the detected rooms in canonical order.
	Rooms []floorplan.Room `json:"rooms"`

	// Anchors are the final placed anchors.
	Anchors []placement.Anchor `json:"anchors"`

	// PlanHash is the content hash of the wall set and existing anchors.
	PlanHash string `json:"plan_hash"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	WallCount   int           `json:"wall_count"`
	RoomCount   int           `json:"room_count"`
	AnchorCount int           `json:"anchor_count"`
	DetectTime  time.Duration `json:"detect_time"`
	PlaceTime   time.Duration `json:"place_time"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RoomsHit     bool `json:"rooms_hit"`     // Whether detection came from cache
	PlacementHit bool `json:"placement_hit"` // Whether placement came from cache
}
