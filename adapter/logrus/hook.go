package logrusadapter

import (
	"io"
	"slices"
	"strconv"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/trickstertwo/ffilog"
)

// Hook is a logrus.Hook that forwards every entry to the process-wide
// ffilog backend.
//
// logrus hands hooks an unordered map; fields are emitted sorted by key so
// the callback sees a stable line.
type Hook struct {
	target       string
	traceContext bool
}

var _ logrus.Hook = (*Hook)(nil)

// Config configures a Hook.
type Config struct {
	Target       string // target tag for every record
	TraceContext bool   // add trace_id/span_id from entry.Context
}

// NewHook returns a Hook.
func NewHook(cfg Config) *Hook {
	return &Hook{target: cfg.Target, traceContext: cfg.TraceContext}
}

// Levels reports every logrus level; filtering is the backend's job.
func (h *Hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire emits e. It never returns an error so logrus does not print to
// stderr on delivery trouble.
func (h *Hook) Fire(e *logrus.Entry) error {
	l := ffilog.L()
	level := fromLogrusLevel(e.Level)
	if !l.Enabled(level) {
		return nil
	}

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	fields := make([]ffilog.Field, 0, len(keys)+3)
	for _, k := range keys {
		fields = append(fields, ffilog.FieldOf(k, e.Data[k]))
	}
	if h.traceContext && e.Context != nil {
		if sc := trace.SpanContextFromContext(e.Context); sc.IsValid() {
			fields = append(fields,
				ffilog.Str("trace_id", sc.TraceID().String()),
				ffilog.Str("span_id", sc.SpanID().String()),
			)
		}
	}
	if e.Caller != nil {
		fields = append(fields, ffilog.Str(logrus.FieldKeyFile, e.Caller.File+":"+strconv.Itoa(e.Caller.Line)))
	}

	l.Log(level, h.target, e.Message, fields)
	return nil
}

func fromLogrusLevel(l logrus.Level) ffilog.Level {
	switch l {
	case logrus.TraceLevel:
		return ffilog.LevelTrace
	case logrus.DebugLevel:
		return ffilog.LevelDebug
	case logrus.InfoLevel:
		return ffilog.LevelInfo
	case logrus.WarnLevel:
		return ffilog.LevelWarn
	default:
		// Error, Fatal, Panic.
		return ffilog.LevelError
	}
}

// NewLogger returns a logrus.Logger whose only output is a Hook. Its own
// writer is discarded and its level admits everything.
func NewLogger(cfg Config) *logrus.Logger {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	lg.SetLevel(logrus.TraceLevel)
	lg.AddHook(NewHook(cfg))
	return lg
}
