package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger. Messages below level are dropped and
// timestamps render as "15:04:05.00" so repeated runs line up visually.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress stamps the start of a long-running step and reports the
// elapsed time when the step finishes. Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing a step.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs the formatted message at info level with the elapsed time
// appended, rounded to the millisecond: "Classified 8 rooms (312ms)".
func (p *progress) done(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// loggerKey carries the command logger through a context.
type loggerKey struct{}

// withLogger attaches l to ctx for helpers further down the call chain
// that have no direct access to the CLI struct.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default()
// when none was attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
