package ffilog

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

type Logger struct {
	adapter    Adapter
	target     string
	clock      xclock.Clock
	baseFields []Field

	// minLevel is shared with every child created by With/Named so that
	// raising it to LevelOff silences the whole family at once.
	minLevel *atomic.Int64

	// Observers: lock-free reads via atomic.Value; synchronized updates via obsMu.
	// Stored value is []Observer and MUST be treated as immutable by readers.
	observers atomic.Value // holds []Observer
	obsMu     sync.Mutex
}

// Factory: internal constructor.
func newLogger(cfg Config) *Logger {
	l := &Logger{
		adapter:  cfg.Adapter,
		target:   cfg.Target,
		clock:    cfg.Clock,
		minLevel: new(atomic.Int64),

		baseFields: copyFields(nil, cfg.Fields),
	}
	l.minLevel.Store(int64(cfg.MinLevel))
	if len(cfg.Observers) > 0 {
		obs := make([]Observer, len(cfg.Observers))
		copy(obs, cfg.Observers)
		l.observers.Store(obs)
	} else {
		l.observers.Store(([]Observer)(nil))
	}
	return l
}

// MinLevel returns the current filter.
func (l *Logger) MinLevel() Level {
	return Level(l.minLevel.Load())
}

// SetMinLevel changes the filter for l and every logger derived from it.
func (l *Logger) SetMinLevel(level Level) {
	l.minLevel.Store(int64(level))
	if ls, ok := l.adapter.(adapterLevelSetter); ok {
		ls.SetMinLevel(level)
	}
}

// Enabled reports whether logs at 'level' would be emitted by this logger.
// Use to avoid building fields in hot paths when disabled.
func (l *Logger) Enabled(level Level) bool {
	if level < l.MinLevel() || level == LevelOff {
		return false
	}
	return l.adapter.Enabled(level)
}

// Level entry points returning fluent builders.

func (l *Logger) Trace() *Event { return getEvent(l, LevelTrace) }
func (l *Logger) Debug() *Event { return getEvent(l, LevelDebug) }
func (l *Logger) Info() *Event  { return getEvent(l, LevelInfo) }
func (l *Logger) Warn() *Event  { return getEvent(l, LevelWarn) }
func (l *Logger) Error() *Event { return getEvent(l, LevelError) }

// Log emits a record without the fluent builder. Ingress adapters use it;
// an empty target falls back to the logger's own.
func (l *Logger) Log(level Level, target, msg string, fields []Field) {
	l.emit(level, target, msg, fields)
}

// With returns a child logger with bound fields.
func (l *Logger) With(fs ...Field) *Logger {
	child := l.child()
	child.baseFields = append(copyFields(nil, l.baseFields), fs...)
	return child
}

// Named returns a child logger whose records carry target.
func (l *Logger) Named(target string) *Logger {
	child := l.child()
	child.target = target
	return child
}

// Flush forwards to the adapter.
func (l *Logger) Flush() error {
	return l.adapter.Flush()
}

func (l *Logger) child() *Logger {
	child := &Logger{
		adapter:    l.adapter,
		target:     l.target,
		clock:      l.clock,
		baseFields: l.baseFields,
		minLevel:   l.minLevel,
	}
	// Inherit a snapshot of observers.
	child.observers.Store(l.snapshotObservers())
	return child
}

func (l *Logger) snapshotObservers() []Observer {
	v := l.observers.Load()
	if v == nil {
		return nil
	}
	cur := v.([]Observer)
	if len(cur) == 0 {
		return nil
	}
	out := make([]Observer, len(cur))
	copy(out, cur)
	return out
}

func (l *Logger) AddObserver(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	cur := l.snapshotObservers()
	cur = append(cur, o)
	l.observers.Store(cur)
}

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

func (l *Logger) emit(level Level, target, msg string, evFields []Field) {
	if !l.Enabled(level) {
		l.filtered(level)
		return
	}
	if target == "" {
		target = l.target
	}

	fields := evFields
	if len(l.baseFields) > 0 {
		fields = make([]Field, 0, len(l.baseFields)+len(evFields))
		fields = append(fields, l.baseFields...)
		fields = append(fields, evFields...)
	}

	r := Record{
		At:      l.now(),
		Level:   level,
		Target:  target,
		Message: msg,
		Fields:  fields,
	}
	l.adapter.Log(r)

	v := l.observers.Load()
	if v == nil {
		return
	}
	obs := v.([]Observer)
	if len(obs) == 0 {
		return
	}
	// Observers may hold the record; event fields are pooled.
	r.Fields = copyFields(nil, r.Fields)
	for _, o := range obs {
		o.OnLog(r)
	}
}

// filtered reports a rejected record to the adapter when the logger has
// been switched off, which is what teardown does to loggers still held.
func (l *Logger) filtered(level Level) {
	if level == LevelOff || l.MinLevel() != LevelOff {
		return
	}
	if dc, ok := l.adapter.(adapterDropCounter); ok {
		dc.countDropped()
	}
}

// nopAdapter backs the logger returned by L() when no backend is installed.
type nopAdapter struct{}

func (nopAdapter) Log(Record)         {}
func (nopAdapter) Enabled(Level) bool { return false }
func (nopAdapter) Flush() error       { return nil }
