package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkeletonCommand(t *testing.T) {
	input := writePlanFile(t, officePlan(), "office.json")
	output := filepath.Join(filepath.Dir(input), "skeleton.dot")

	if err := runCLI(t, "skeleton", input, "--room", "0", "-o", output, "--no-cache"); err != nil {
		t.Fatalf("skeleton error: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	dot := string(data)

	if !strings.HasPrefix(dot, "graph skeleton {") {
		t.Errorf("output should be a DOT graph, got prefix %q", dot[:min(len(dot), 20)])
	}
	if !strings.Contains(dot, "layout=neato") {
		t.Error("output should pin the neato layout")
	}
	if !strings.Contains(dot, "n0") {
		t.Error("output should contain at least one node")
	}
}

func TestSkeletonCommandRoomOutOfRange(t *testing.T) {
	input := writePlanFile(t, officePlan(), "office.json")

	if err := runCLI(t, "skeleton", input, "--room", "5", "--no-cache"); err == nil {
		t.Error("skeleton with an out-of-range room index should fail")
	}
	if err := runCLI(t, "skeleton", input, "--room", "-1", "--no-cache"); err == nil {
		t.Error("skeleton with a negative room index should fail")
	}
}
