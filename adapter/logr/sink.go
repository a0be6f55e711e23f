package logradapter

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/trickstertwo/ffilog"
)

// Sink is a logr.LogSink routing to the process-wide ffilog backend.
//
// Verbosity maps V(0) to Info, V(1) to Debug and anything higher to Trace.
// Names given to WithName are joined with "/" into the record's target.
type Sink struct {
	name   string
	values []ffilog.Field
}

var _ logr.LogSink = (*Sink)(nil)

// New returns a logr.Logger backed by a Sink.
func New() logr.Logger {
	return logr.New(&Sink{})
}

// Init implements logr.LogSink. Call depth is not used.
func (s *Sink) Init(logr.RuntimeInfo) {}

// Enabled reports whether V(level) would reach the backend.
func (s *Sink) Enabled(level int) bool {
	return ffilog.Enabled(fromV(level))
}

// Info emits a V(level) record.
func (s *Sink) Info(level int, msg string, kvs ...any) {
	s.emit(fromV(level), msg, nil, kvs)
}

// Error emits an Error record carrying err.
func (s *Sink) Error(err error, msg string, kvs ...any) {
	s.emit(ffilog.LevelError, msg, err, kvs)
}

// WithValues returns a Sink with kvs bound.
func (s *Sink) WithValues(kvs ...any) logr.LogSink {
	child := *s
	child.values = appendKVs(append([]ffilog.Field(nil), s.values...), kvs)
	return &child
}

// WithName appends name to the target.
func (s *Sink) WithName(name string) logr.LogSink {
	child := *s
	if s.name == "" {
		child.name = name
	} else {
		child.name = s.name + "/" + name
	}
	return &child
}

func (s *Sink) emit(level ffilog.Level, msg string, err error, kvs []any) {
	l := ffilog.L()
	if !l.Enabled(level) {
		return
	}
	fields := make([]ffilog.Field, 0, len(s.values)+len(kvs)/2+1)
	fields = append(fields, s.values...)
	if err != nil {
		fields = append(fields, ffilog.Err("error", err))
	}
	fields = appendKVs(fields, kvs)
	l.Log(level, s.name, msg, fields)
}

func fromV(v int) ffilog.Level {
	switch {
	case v <= 0:
		return ffilog.LevelInfo
	case v == 1:
		return ffilog.LevelDebug
	default:
		return ffilog.LevelTrace
	}
}

// appendKVs converts alternating key/value pairs. A trailing key without a
// value is kept with a nil value; non-string keys are formatted.
func appendKVs(dst []ffilog.Field, kvs []any) []ffilog.Field {
	for i := 0; i < len(kvs); i += 2 {
		k, ok := kvs[i].(string)
		if !ok {
			k = fmt.Sprint(kvs[i])
		}
		if i+1 >= len(kvs) {
			dst = append(dst, ffilog.Any(k, nil))
			break
		}
		v := kvs[i+1]
		if m, ok := v.(logr.Marshaler); ok {
			v = m.MarshalLog()
		}
		dst = append(dst, ffilog.FieldOf(k, v))
	}
	return dst
}
