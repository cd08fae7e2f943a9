// Package cache provides result caching for the placement pipeline.
//
// The engine's two expensive stages, room detection and placement, are
// pure functions of their inputs, which makes their results safe to cache
// by content hash. The [Cache] interface abstracts the storage backend:
// [FileCache] for the CLI, [RedisCache] for shared API deployments, and
// [NullCache] to disable caching entirely.
//
// Keys are built by a [Keyer] so that every input that can change a
// result is part of its key, and so deployments can namespace their
// entries (see [ScopedKeyer]).
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is the storage interface shared by every backend.
//
// Get reports a miss with hit=false and a nil error; errors are reserved
// for backend failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per entry kind. Detection and placement results are
// deterministic, so the TTLs exist only to bound storage growth.
const (
	// TTLRooms is the lifetime of cached room-detection results.
	TTLRooms = 24 * time.Hour

	// TTLPlacement is the lifetime of cached placement results.
	TTLPlacement = 24 * time.Hour
)

// Keyer builds cache keys for the pipeline's cacheable stages. planHash
// is the content hash of the serialized wall set (plus existing anchors
// for placement); the opts structs carry every parameter that can change
// the stage's output.
type Keyer interface {
	RoomsKey(planHash string, opts RoomsKeyOpts) string
	PlacementKey(planHash string, opts PlacementKeyOpts) string
}

// RoomsKeyOpts holds the parameters room detection depends on.
type RoomsKeyOpts struct {
	SnapEpsilonM float64
	ScaleRatio   float64
}

// PlacementKeyOpts holds the parameters a placement run depends on
// beyond the plan itself.
type PlacementKeyOpts struct {
	// OptionsHash is the hash of the serialized placement options.
	OptionsHash string

	// TuningHash is the hash of the serialized tuning profile, which is
	// not part of the options serialization.
	TuningHash string
}

// keyVersion is bumped when a serialization or algorithm change makes
// old entries unusable.
const keyVersion = "v1"

// DefaultKeyer is the standard key builder.
type DefaultKeyer struct {
	version string
}

// NewDefaultKeyer creates the standard key builder.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{version: keyVersion}
}

// RoomsKey generates the key for a room-detection result.
func (k *DefaultKeyer) RoomsKey(planHash string, opts RoomsKeyOpts) string {
	return hashKey("rooms:"+k.version, planHash, opts)
}

// PlacementKey generates the key for a placement result.
func (k *DefaultKeyer) PlacementKey(planHash string, opts PlacementKeyOpts) string {
	return hashKey("placement:"+k.version, planHash, opts)
}

// GetJSON fetches key from c and unmarshals the entry into v. A miss is
// reported as [ErrCacheMiss].
func GetJSON(ctx context.Context, c Cache, key string, v interface{}) error {
	data, hit, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !hit {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, v)
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
