package slogadapter

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"

	"go.opentelemetry.io/otel/trace"

	"github.com/trickstertwo/ffilog"
)

// Field names for trace correlation.
const (
	fieldTraceID = "trace_id"
	fieldSpanID  = "span_id"
	fieldSource  = "source"
)

// Options configures a Handler.
type Options struct {
	// Level is an extra filter applied before the process-wide one.
	Level slog.Leveler
	// Target is the target tag for every record; empty uses the logger's.
	Target string
	// TraceContext adds trace_id/span_id from an active span in ctx.
	TraceContext bool
	// AddSource adds "file:line" of the log call.
	AddSource bool
}

// Handler is a slog.Handler that routes records to the process-wide ffilog
// backend. The backend is looked up on every record, so a Handler created
// before registration starts delivering once a backend is installed and goes
// quiet after teardown.
type Handler struct {
	opts   Options
	attrs  []ffilog.Field
	prefix string // group path, "a.b."
}

var _ slog.Handler = (*Handler)(nil)

// New returns a Handler. opts may be nil.
func New(opts *Options) *Handler {
	h := &Handler{}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// NewLogger is slog.New(New(opts)).
func NewLogger(opts *Options) *slog.Logger {
	return slog.New(New(opts))
}

// Enabled reports whether level passes both the handler's and the backend's filter.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	if h.opts.Level != nil && level < h.opts.Level.Level() {
		return false
	}
	return ffilog.Enabled(fromSlog(level))
}

// Handle converts r and emits it synchronously.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	l := ffilog.L()
	level := fromSlog(r.Level)
	if !l.Enabled(level) {
		return nil
	}

	fields := make([]ffilog.Field, 0, len(h.attrs)+r.NumAttrs()+3)
	fields = append(fields, h.attrs...)
	if h.opts.TraceContext && ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				ffilog.Str(fieldTraceID, sc.TraceID().String()),
				ffilog.Str(fieldSpanID, sc.SpanID().String()),
			)
		}
	}
	if h.opts.AddSource && r.PC != 0 {
		fs := runtime.CallersFrames([]uintptr{r.PC})
		f, _ := fs.Next()
		fields = append(fields, ffilog.Str(fieldSource, f.File+":"+strconv.Itoa(f.Line)))
	}
	r.Attrs(func(a slog.Attr) bool {
		fields = appendAttr(fields, h.prefix, a)
		return true
	})

	l.Log(level, h.opts.Target, r.Message, fields)
	return nil
}

// WithAttrs returns a Handler that adds attrs under the current group.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	child := *h
	child.attrs = make([]ffilog.Field, 0, len(h.attrs)+len(attrs))
	child.attrs = append(child.attrs, h.attrs...)
	for _, a := range attrs {
		child.attrs = appendAttr(child.attrs, h.prefix, a)
	}
	return &child
}

// WithGroup qualifies later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	child := *h
	child.prefix = h.prefix + name + "."
	return &child
}

// fromSlog is the identity: ffilog levels share slog's numbering.
func fromSlog(l slog.Level) ffilog.Level {
	return ffilog.Level(l)
}

func appendAttr(dst []ffilog.Field, prefix string, a slog.Attr) []ffilog.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	key := prefix + a.Key
	v := a.Value
	switch v.Kind() {
	case slog.KindString:
		return append(dst, ffilog.Str(key, v.String()))
	case slog.KindInt64:
		return append(dst, ffilog.Int64(key, v.Int64()))
	case slog.KindUint64:
		return append(dst, ffilog.Uint64(key, v.Uint64()))
	case slog.KindFloat64:
		return append(dst, ffilog.Float64(key, v.Float64()))
	case slog.KindBool:
		return append(dst, ffilog.Bool(key, v.Bool()))
	case slog.KindDuration:
		return append(dst, ffilog.Dur(key, v.Duration()))
	case slog.KindTime:
		return append(dst, ffilog.Time(key, v.Time()))
	case slog.KindGroup:
		group := v.Group()
		if len(group) == 0 {
			return dst
		}
		// An empty group key inlines its members.
		if a.Key != "" {
			prefix = key + "."
		}
		for _, ga := range group {
			dst = appendAttr(dst, prefix, ga)
		}
		return dst
	default:
		return append(dst, ffilog.FieldOf(key, v.Any()))
	}
}
