package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidOptions, "scale ratio must be positive, got %v", -2.5)

	if err.Code != ErrCodeInvalidOptions {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidOptions)
	}
	if err.Message != "scale ratio must be positive, got -2.5" {
		t.Errorf("Message = %q", err.Message)
	}

	expected := "INVALID_OPTIONS: scale ratio must be positive, got -2.5"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Wrap(ErrCodeInvalidPlan, cause, "decode floor2.json")

	if err.Code != ErrCodeInvalidPlan {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidPlan)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidScope, "bad scope"),
			code:     ErrCodeInvalidScope,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidScope, "bad scope"),
			code:     ErrCodeInvalidPlan,
			expected: false,
		},
		{
			name:     "wrapped error reports the outer code",
			err:      Wrap(ErrCodeInvalidPlan, New(ErrCodeInvalidOptions, "inner"), "outer"),
			code:     ErrCodeInvalidPlan,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeRunNotFound, "run abc not found"),
			expected: ErrCodeRunNotFound,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "strips the code prefix",
			err:      New(ErrCodeInvalidTuning, "rings.step_m must be positive"),
			expected: "rings.step_m must be positive",
		},
		{
			name:     "plain error unchanged",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}
