package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key of the form prefix:hash(parts...). Parts
// are JSON-serialized before hashing so structs and scalars mix freely.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%x", prefix, sha256.Sum256(data))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// The pipeline uses it to fingerprint wall sets and option payloads.
func Hash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
