package placement

import (
	"math"
	"testing"
)

func validatedOptions(t *testing.T, opts Options) Options {
	t.Helper()
	if opts.ScaleRatio == 0 {
		opts.ScaleRatio = 10
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("options rejected: %v", err)
	}
	return opts
}

func TestSpacingFactor(t *testing.T) {
	// Stock settings: no demand, full base factor.
	opts := validatedOptions(t, Options{})
	if got := opts.spacingFactor(); math.Abs(got-1.9) > 1e-9 {
		t.Errorf("stock factor: got %v, want 1.9", got)
	}

	// Maxed coverage and signal halve the factor.
	opts = validatedOptions(t, Options{CoverageTarget: 100, MinSignal: -40})
	if got := opts.spacingFactor(); math.Abs(got-0.95) > 1e-9 {
		t.Errorf("maxed demand: got %v, want 0.95", got)
	}

	// Halfway coverage alone gives a quarter of the reduction.
	opts = validatedOptions(t, Options{CoverageTarget: 75})
	if got := opts.spacingFactor(); math.Abs(got-1.9*0.875) > 1e-9 {
		t.Errorf("half coverage: got %v, want %v", got, 1.9*0.875)
	}

	// An explicit override wins over the derived factor.
	opts = validatedOptions(t, Options{SpacingFactor: 1.0, CoverageTarget: 100})
	if got := opts.spacingFactor(); got != 1.0 {
		t.Errorf("override: got %v, want 1", got)
	}

	// Out-of-range inputs clamp instead of extrapolating.
	opts = validatedOptions(t, Options{CoverageTarget: 500, MinSignal: -10})
	if got := opts.spacingFactor(); math.Abs(got-0.95) > 1e-9 {
		t.Errorf("clamped demand: got %v, want 0.95", got)
	}
}

func TestFillSpacing(t *testing.T) {
	// Stock radius 8m: the overlap budget (2*8 - 1.5) is tighter than
	// the density spacing (1.9*8) and decides.
	opts := validatedOptions(t, Options{})
	if got := opts.fillSpacingM(0.1); math.Abs(got-14.5) > 1e-9 {
		t.Errorf("stock spacing: got %v, want 14.5", got)
	}

	// An aggressive spacing factor flips it: density is tighter.
	opts = validatedOptions(t, Options{SpacingFactor: 1.0})
	if got := opts.fillSpacingM(0.1); math.Abs(got-8) > 1e-9 {
		t.Errorf("factor 1 spacing: got %v, want 8", got)
	}

	// A small radius shrinks the budget term below the density spacing.
	opts = validatedOptions(t, Options{RadiusM: 1, SpacingFactor: 1.0})
	if got := opts.fillSpacingM(0.1); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("tiny radius: got %v, want 0.5", got)
	}

	// The floor argument keeps the budget term positive for small radii.
	opts = validatedOptions(t, Options{RadiusM: 0.5})
	if got := opts.fillSpacingM(1); math.Abs(got-1) > 1e-9 {
		t.Errorf("floored budget: got %v, want 1", got)
	}
}

func TestFillCount(t *testing.T) {
	cases := []struct {
		l, spacing float64
		want       int
	}{
		{30, 14.5, 1},  // two intervals fit, one interior point
		{45, 14.5, 2},  // three intervals
		{14, 14.5, 0},  // less than one interval
		{20, 14.5, 0},  // one interval: endpoints suffice
		{100, 10, 9},   // ten intervals
		{10, 0, 0},     // degenerate spacing
		{0, 10, 0},     // degenerate length
		{-5, 10, 0},    // negative length
	}
	for _, tc := range cases {
		if got := fillCount(tc.l, tc.spacing); got != tc.want {
			t.Errorf("fillCount(%v, %v): got %d, want %d", tc.l, tc.spacing, got, tc.want)
		}
	}
}
