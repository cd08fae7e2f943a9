package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateScale validates a scale ratio (pixels per meter). Every metric
// computation divides by it, so zero, negative, and non-finite values are
// rejected outright.
func ValidateScale(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return New(ErrCodeInvalidOptions, "scale ratio must be finite")
	}
	if scale <= 0 {
		return New(ErrCodeInvalidOptions, "scale ratio must be positive, got %v", scale)
	}
	return nil
}

// ValidateRadius validates a coverage radius in meters.
func ValidateRadius(radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return New(ErrCodeInvalidOptions, "coverage radius must be finite")
	}
	if radius <= 0 {
		return New(ErrCodeInvalidOptions, "coverage radius must be positive, got %v", radius)
	}
	return nil
}

// ValidateScope validates a density-reduction scope name.
func ValidateScope(scope string) error {
	switch scope {
	case "all", "small", "large":
		return nil
	}
	return New(ErrCodeInvalidScope, "invalid scope: %q (must be one of: all, small, large)", scope)
}

// ValidatePlanPath validates a floor-plan file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePlanPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPlan, "plan path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPlan, "plan path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPlan, "plan path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPlan, "plan path cannot contain path traversal sequences (..)")
	}

	return nil
}
