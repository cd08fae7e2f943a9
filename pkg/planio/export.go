package planio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WritePlan encodes the plan as indented JSON and writes it to w. The
// plan is validated first so a structurally broken document fails with a
// field-level error instead of a marshalling one.
//
// The output can be re-imported with [ReadPlan] for round-trip
// processing.
func WritePlan(p *Plan, w io.Writer) error {
	if err := p.Validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportPlan writes the plan document to a file at path.
func ExportPlan(p *Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePlan(p, f)
}
