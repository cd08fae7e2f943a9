package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner is the progress indicator shown while detection and placement
// run. It animates on stderr so stdout stays clean for piped plan output.
// The spinner winds down on its own when the command's context is
// cancelled; once an operation has run for a few seconds the elapsed time
// is appended to the message.
type Spinner struct {
	message      string
	interval     time.Duration
	elapsedAfter time.Duration
	out          io.Writer

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	running  bool
	done     chan struct{}
	stopOnce sync.Once
	width    int
	begun    time.Time
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// newSpinner creates a spinner bound to ctx. It does not draw anything
// until Start is called.
func newSpinner(ctx context.Context, message string) *Spinner {
	derived, cancel := context.WithCancel(ctx)
	return &Spinner{
		message:      message,
		interval:     80 * time.Millisecond,
		elapsedAfter: 2 * time.Second,
		out:          os.Stderr,
		parent:       ctx,
		ctx:          derived,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
}

// Start begins the animation. Calling Start on a running spinner does
// nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.begun = time.Now()
	s.mu.Unlock()

	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

// draw renders one frame and remembers the widest line so Stop can clear
// the whole thing.
func (s *Spinner) draw(frame string) {
	text := s.message
	if e := time.Since(s.begun); e >= s.elapsedAfter {
		text = fmt.Sprintf("%s %ds", s.message, int(e.Seconds()))
	}
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if w := lipgloss.Width(line); w > s.width {
		s.width = w
	}
	fmt.Fprintf(s.out, "\r%s", line)
}

// Stop halts the animation and clears the line. Stop is idempotent and
// safe to call on a spinner that was never started.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()

		s.mu.Lock()
		started := s.running
		s.mu.Unlock()
		if started {
			<-s.done
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.width > 0 {
			fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
		}
	})
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the surrounding context was cancelled. A
// plain Stop does not count.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
