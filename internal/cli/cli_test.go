package cli

import (
	"io"
	"testing"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c == nil {
		t.Fatal("New() returned nil")
	}
	if c.Logger == nil {
		t.Fatal("New() returned CLI without logger")
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != appName {
		t.Errorf("root.Use = %q, want %q", root.Use, appName)
	}
	if !root.SilenceUsage {
		t.Error("root command should silence usage on errors")
	}

	want := []string{"place", "optimize", "rooms", "skeleton", "serve", "cache", "completion"}
	registered := make(map[string]bool)
	for _, sub := range root.Commands() {
		registered[sub.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestNewRunnerNoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)
	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatalf("newRunner(true) error: %v", err)
	}
	defer runner.Close()

	if runner == nil {
		t.Fatal("newRunner(true) returned nil runner")
	}
}
