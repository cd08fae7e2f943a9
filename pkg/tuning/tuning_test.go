package tuning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default profile invalid: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	profile := `
[classify]
large_area_m2 = 90.0

[spacing]
overlap_budget_m = 2.0
`
	if err := os.WriteFile(path, []byte(profile), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	// Overridden keys.
	if cfg.Classify.LargeAreaM2 != 90 {
		t.Errorf("LargeAreaM2: got %v, want 90", cfg.Classify.LargeAreaM2)
	}
	if cfg.Spacing.OverlapBudgetM != 2 {
		t.Errorf("OverlapBudgetM: got %v, want 2", cfg.Spacing.OverlapBudgetM)
	}

	// Untouched keys keep their stock values.
	def := Default()
	if cfg.Classify.ExtendedSpanM != def.Classify.ExtendedSpanM {
		t.Errorf("ExtendedSpanM changed: got %v", cfg.Classify.ExtendedSpanM)
	}
	if cfg.Rings.StepM != def.Rings.StepM {
		t.Errorf("StepM changed: got %v", cfg.Rings.StepM)
	}
	if cfg.Arbitration.CriticalFactor != def.Arbitration.CriticalFactor {
		t.Errorf("CriticalFactor changed: got %v", cfg.Arbitration.CriticalFactor)
	}
}

func TestLoadRejectsInvalidProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.toml")
	profile := `
[rings]
step_m = -1.0
`
	if err := os.WriteFile(path, []byte(profile), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("negative ring step accepted")
	}
	if !strings.Contains(err.Error(), "step_m") {
		t.Errorf("error does not name the bad key: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestValidateCatchesBadRanges(t *testing.T) {
	cfg := Default()
	cfg.Spacing.CoverageMax = cfg.Spacing.CoverageMin
	if err := cfg.Validate(); err == nil {
		t.Error("coverage_max == coverage_min accepted")
	}

	cfg = Default()
	cfg.Density.OverlapSlack = 0.5
	if err := cfg.Validate(); err == nil {
		t.Error("overlap_slack below 1 accepted")
	}

	cfg = Default()
	cfg.Skeleton.MaxSites = 3
	if err := cfg.Validate(); err == nil {
		t.Error("max_sites of 3 accepted")
	}
}
