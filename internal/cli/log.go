package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type ctxKey struct{}

// withLogger returns a context carrying l, retrievable via loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default if
// none was attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// progress reports the elapsed time of a long-running step.
type progress struct {
	logger *log.Logger
	label  string
	start  time.Time
}

func newProgress(l *log.Logger, label string) *progress {
	l.Debug("starting", "step", label)
	return &progress{logger: l, label: label, start: timeNow()}
}

func (p *progress) done() {
	p.logger.Info(p.label+" done", "elapsed", timeNow().Sub(p.start))
}

// timeNow is a var so tests could override it; production always uses
// time.Now.
var timeNow = defaultNow

func defaultNow() time.Time { return time.Now() }
