// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about engine execution, cache operations, and run storage.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnDetectStart(ctx, wallCount)
//	// ... detect rooms ...
//	observability.Engine().OnDetectComplete(ctx, wallCount, roomCount, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the placement engine.
type EngineHooks interface {
	// Detection events
	OnDetectStart(ctx context.Context, wallCount int)
	OnDetectComplete(ctx context.Context, wallCount, roomCount int, duration time.Duration)

	// Per-room strategy events
	OnRoomStart(ctx context.Context, roomIndex int, class string)
	OnRoomComplete(ctx context.Context, roomIndex int, class string, candidateCount int, duration time.Duration, err error)

	// Whole-run events
	OnPlaceStart(ctx context.Context, wallCount, existingCount int)
	OnPlaceComplete(ctx context.Context, anchorCount int, duration time.Duration, err error)
	OnOptimizeStart(ctx context.Context, anchorCount, threshold int)
	OnOptimizeComplete(ctx context.Context, removedCount, keptCount int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from run-archive storage operations.
type StoreHooks interface {
	// OnRunStored records a successful run archive write.
	OnRunStored(ctx context.Context, runID string, anchorCount int)

	// OnRunFetched records a run archive read.
	OnRunFetched(ctx context.Context, runID string, found bool)

	// OnStoreError records a storage failure.
	OnStoreError(ctx context.Context, op string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnDetectStart(context.Context, int)                              {}
func (NoopEngineHooks) OnDetectComplete(context.Context, int, int, time.Duration)       {}
func (NoopEngineHooks) OnRoomStart(context.Context, int, string)                        {}
func (NoopEngineHooks) OnRoomComplete(context.Context, int, string, int, time.Duration, error) {
}
func (NoopEngineHooks) OnPlaceStart(context.Context, int, int)                      {}
func (NoopEngineHooks) OnPlaceComplete(context.Context, int, time.Duration, error)  {}
func (NoopEngineHooks) OnOptimizeStart(context.Context, int, int)                   {}
func (NoopEngineHooks) OnOptimizeComplete(context.Context, int, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnRunStored(context.Context, string, int)  {}
func (NoopStoreHooks) OnRunFetched(context.Context, string, bool) {}
func (NoopStoreHooks) OnStoreError(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any placement runs.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any storage operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
	storeHooks = NoopStoreHooks{}
}
