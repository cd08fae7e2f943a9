package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or
// tenants sharing one Redis server keep separate cache namespaces.
//
// Example usage:
//
//	// Per-project keys on a shared server
//	keyer := cache.NewScopedKeyer(nil, "project:atrium-14:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key the
// inner keyer generates. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RoomsKey generates a prefixed key for a room-detection result.
func (k *ScopedKeyer) RoomsKey(planHash string, opts RoomsKeyOpts) string {
	return k.prefix + k.inner.RoomsKey(planHash, opts)
}

// PlacementKey generates a prefixed key for a placement result.
func (k *ScopedKeyer) PlacementKey(planHash string, opts PlacementKeyOpts) string {
	return k.prefix + k.inner.PlacementKey(planHash, opts)
}
