package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// testSpinner returns a fast spinner drawing into buf.
func testSpinner(ctx context.Context, message string, buf *bytes.Buffer) *Spinner {
	s := newSpinner(ctx, message)
	s.interval = time.Millisecond
	s.out = buf
	return s
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(context.Background(), "Placing anchors...", &buf)

	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Placing anchors...") {
		t.Errorf("spinner output should contain the message, got %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner output should end with a line clear, got %q", out)
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(context.Background(), "working", &buf)

	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(context.Background(), "never shown", &buf)

	// Must not hang waiting for a goroutine that never ran.
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner that never started should not write, got %q", buf.String())
	}
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := testSpinner(ctx, "working", &buf)
	s.Start()

	if s.Cancelled() {
		t.Error("spinner should not report cancelled before the context is")
	}

	cancel()
	if !s.Cancelled() {
		t.Error("spinner should report cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopDoesNotCountAsCancelled(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(context.Background(), "working", &buf)

	s.Start()
	s.Stop()

	if s.Cancelled() {
		t.Error("a plain Stop should not count as cancellation")
	}
}

func TestSpinnerElapsedSuffix(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(context.Background(), "working", &buf)
	s.elapsedAfter = 0

	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "working 0s") {
		t.Errorf("long-running spinner should append elapsed time, got %q", buf.String())
	}
}
