package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateScale(t *testing.T) {
	tests := []struct {
		name    string
		scale   float64
		wantErr bool
	}{
		{"typical scale", 10, false},
		{"fractional scale", 0.5, false},

		{"zero", 0, true},
		{"negative", -10, true},
		{"NaN", math.NaN(), true},
		{"positive infinity", math.Inf(1), true},
		{"negative infinity", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScale(tt.scale)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScale(%v) error = %v, wantErr %v", tt.scale, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOptions) {
				t.Errorf("ValidateScale(%v) returned wrong error code: %v", tt.scale, err)
			}
		})
	}
}

func TestValidateRadius(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		wantErr bool
	}{
		{"default radius", 8, false},
		{"small radius", 0.1, false},

		{"zero", 0, true},
		{"negative", -8, true},
		{"NaN", math.NaN(), true},
		{"infinite", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRadius(tt.radius)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRadius(%v) error = %v, wantErr %v", tt.radius, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOptions) {
				t.Errorf("ValidateRadius(%v) returned wrong error code: %v", tt.radius, err)
			}
		})
	}
}

func TestValidateScope(t *testing.T) {
	tests := []struct {
		name    string
		scope   string
		wantErr bool
	}{
		{"all", "all", false},
		{"small", "small", false},
		{"large", "large", false},

		{"empty", "", true},
		{"unknown", "medium", true},
		{"wrong case", "ALL", true},
		{"mixed case", "Small", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScope(tt.scope)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScope(%q) error = %v, wantErr %v", tt.scope, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScope) {
				t.Errorf("ValidateScope(%q) returned wrong error code: %v", tt.scope, err)
			}
		})
	}
}

func TestValidatePlanPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple file", "floor2.json", false},
		{"nested path", "plans/tower-a/floor2.json", false},
		{"absolute path", "/var/plans/floor2.json", false},
		{"dotted filename", "floor2.v3.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "plans/../secret.json", true},
		{"null byte", "floor2\x00.json", true},
		{"control char", "floor2\x01.json", true},
		{"newline", "floor2\n.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlanPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlanPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPlan) {
				t.Errorf("ValidatePlanPath(%q) returned wrong error code: %v", tt.path, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidOptions,
		ErrCodeInvalidWalls,
		ErrCodeInvalidPolygon,
		ErrCodeInvalidScope,
		ErrCodeInvalidPlan,
		ErrCodeInvalidTuning,
		ErrCodeInvalidFormat,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeRunNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
