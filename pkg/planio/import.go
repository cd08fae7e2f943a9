package planio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadPlan decodes a plan document from r and validates it.
//
// Unknown JSON fields are ignored. ReadPlan does not close r. The
// returned plan is independent of r and safe to modify.
func ReadPlan(r io.Reader) (*Plan, error) {
	var p Plan
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ImportPlan reads the plan document at path.
func ImportPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	p, err := ReadPlan(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
