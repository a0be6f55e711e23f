package zapadapter

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/ffilog"
)

// Core is a zapcore.Core that routes entries to the process-wide ffilog
// backend.
//
// Notes:
//   - Fields bound via With are converted once, not per entry.
//   - The backend is resolved per entry, so teardown silences loggers built
//     on this core immediately.
//   - zap's Fatal/Panic levels map to Error; exiting or panicking stays
//     zap's decision.
type Core struct {
	level  zapcore.LevelEnabler // optional extra filter
	target string
	prefix string // namespace path, "a.b."
	fields []ffilog.Field
}

var _ zapcore.Core = (*Core)(nil)

// Option configures a Core.
type Option func(*Core)

// WithLevel adds a zap-side filter applied before the backend's.
func WithLevel(le zapcore.LevelEnabler) Option {
	return func(c *Core) { c.level = le }
}

// WithTarget sets the target tag used when the zap logger has no name.
func WithTarget(target string) Option {
	return func(c *Core) { c.target = target }
}

// NewCore returns a Core.
func NewCore(opts ...Option) *Core {
	c := &Core{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether lvl passes both the core's and the backend's filter.
func (c *Core) Enabled(lvl zapcore.Level) bool {
	if c.level != nil && !c.level.Enabled(lvl) {
		return false
	}
	return ffilog.Enabled(fromZapLevel(lvl))
}

// With returns a child core with fs bound.
func (c *Core) With(fs []zapcore.Field) zapcore.Core {
	if len(fs) == 0 {
		return c
	}
	child := *c
	child.fields = make([]ffilog.Field, 0, len(c.fields)+len(fs))
	child.fields = append(child.fields, c.fields...)
	child.fields, child.prefix = appendFields(child.fields, c.prefix, fs)
	return &child
}

// Check adds c to ce when the entry is enabled.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write emits ent synchronously. It never fails: delivery failures are
// absorbed by the bridge.
func (c *Core) Write(ent zapcore.Entry, fs []zapcore.Field) error {
	l := ffilog.L()
	level := fromZapLevel(ent.Level)
	if !l.Enabled(level) {
		return nil
	}
	fields := c.fields
	if len(fs) > 0 {
		fields = make([]ffilog.Field, 0, len(c.fields)+len(fs))
		fields = append(fields, c.fields...)
		fields, _ = appendFields(fields, c.prefix, fs)
	}
	target := ent.LoggerName
	if target == "" {
		target = c.target
	}
	l.Log(level, target, ent.Message, fields)
	return nil
}

// Sync flushes the backend.
func (c *Core) Sync() error {
	return ffilog.L().Flush()
}

func fromZapLevel(l zapcore.Level) ffilog.Level {
	switch {
	case l < zapcore.InfoLevel:
		return ffilog.LevelDebug // zap has no trace
	case l == zapcore.InfoLevel:
		return ffilog.LevelInfo
	case l == zapcore.WarnLevel:
		return ffilog.LevelWarn
	default:
		// Error, DPanic, Panic and Fatal.
		return ffilog.LevelError
	}
}

// appendFields converts fs, returning the namespace prefix in effect after
// them.
func appendFields(dst []ffilog.Field, prefix string, fs []zapcore.Field) ([]ffilog.Field, string) {
	for i := range fs {
		f := &fs[i]
		if f.Type == zapcore.NamespaceType {
			prefix += f.Key + "."
			continue
		}
		dst = appendField(dst, prefix, f)
	}
	return dst, prefix
}

func appendField(dst []ffilog.Field, prefix string, f *zapcore.Field) []ffilog.Field {
	key := prefix + f.Key
	switch f.Type {
	case zapcore.SkipType:
		return dst
	case zapcore.StringType:
		return append(dst, ffilog.Str(key, f.String))
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
		return append(dst, ffilog.Int64(key, f.Integer))
	case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type, zapcore.UintptrType:
		return append(dst, ffilog.Uint64(key, uint64(f.Integer)))
	case zapcore.Float64Type:
		return append(dst, ffilog.Float64(key, math.Float64frombits(uint64(f.Integer))))
	case zapcore.Float32Type:
		return append(dst, ffilog.Float64(key, float64(math.Float32frombits(uint32(f.Integer)))))
	case zapcore.BoolType:
		return append(dst, ffilog.Bool(key, f.Integer == 1))
	case zapcore.DurationType:
		return append(dst, ffilog.Dur(key, time.Duration(f.Integer)))
	case zapcore.TimeType:
		t := time.Unix(0, f.Integer)
		if loc, ok := f.Interface.(*time.Location); ok && loc != nil {
			t = t.In(loc)
		}
		return append(dst, ffilog.Time(key, t))
	case zapcore.TimeFullType:
		t, _ := f.Interface.(time.Time)
		return append(dst, ffilog.Time(key, t))
	case zapcore.ErrorType:
		err, _ := f.Interface.(error)
		if err == nil {
			return dst
		}
		return append(dst, ffilog.Err(key, err))
	case zapcore.ByteStringType, zapcore.BinaryType:
		b, _ := f.Interface.([]byte)
		return append(dst, ffilog.Bytes(key, b))
	case zapcore.StringerType:
		if s, ok := f.Interface.(fmt.Stringer); ok && s != nil {
			return append(dst, ffilog.Str(key, s.String()))
		}
		return append(dst, ffilog.Any(key, nil))
	default:
		// Marshalers, reflected values and complex numbers: let zap's own
		// map encoder flatten them.
		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		for k, v := range enc.Fields {
			dst = append(dst, ffilog.FieldOf(prefix+k, v))
		}
		return dst
	}
}
