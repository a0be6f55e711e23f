// Package ffilogtest provides a Go-side callback recorder for tests that
// exercise code logging through the process-wide ffilog backend.
package ffilogtest

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/ffilog"
)

// Call is one callback invocation as the foreign side saw it.
type Call struct {
	Level ffilog.WireLevel // zero for ContractLine
	Text  string
}

// Recorder plays the foreign caller. It records every callback invocation
// and, as an Observer, every structured record that produced one.
type Recorder struct {
	mu      sync.Mutex
	calls   []Call
	records []ffilog.Record

	// Status is returned from the line callback; negative simulates failure.
	Status int
}

// LevelFunc is a ContractLevel callback.
func (r *Recorder) LevelFunc(_ ffilog.Context, level ffilog.WireLevel, msg *byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Level: level, Text: GoString(msg)})
}

// LineFunc is a ContractLine callback.
func (r *Recorder) LineFunc(_ ffilog.Context, line *byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	text := GoString(line)
	r.calls = append(r.calls, Call{Text: text})
	if r.Status < 0 {
		return r.Status
	}
	return len(text)
}

// OnLog implements ffilog.Observer.
func (r *Recorder) OnLog(rec ffilog.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

// Calls returns a copy of the recorded invocations.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Records returns a copy of the observed records.
func (r *Recorder) Records() []ffilog.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ffilog.Record, len(r.records))
	copy(out, r.records)
	return out
}

// Context is the opaque pointer the recorder registers with.
func (r *Recorder) Context() ffilog.Context {
	return ffilog.Context(unsafe.Pointer(r))
}

// Install registers a ContractLevel bridge over a new Recorder as the
// process-wide backend and deregisters it when the test ends. Tests using it
// must not run in parallel.
func Install(t testing.TB, level ffilog.Level, opts ...ffilog.BridgeOption) *Recorder {
	t.Helper()
	r := &Recorder{}
	b, err := ffilog.NewLevelBridge(r.LevelFunc, r.Context(), opts...)
	require.NoError(t, err)
	register(t, r, b, level)
	return r
}

// InstallLine is Install for ContractLine.
func InstallLine(t testing.TB, level ffilog.Level, opts ...ffilog.BridgeOption) *Recorder {
	t.Helper()
	r := &Recorder{}
	b, err := ffilog.NewLineBridge(r.LineFunc, r.Context(), opts...)
	require.NoError(t, err)
	register(t, r, b, level)
	return r
}

func register(t testing.TB, r *Recorder, b *ffilog.Bridge, level ffilog.Level) {
	t.Helper()
	bundle, err := ffilog.RegisterWith(r, b, ffilog.Config{
		MinLevel:  level,
		Observers: []ffilog.Observer{r},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, ctx := ffilog.Deregister(bundle)
		require.Equal(t, r.Context(), ctx)
	})
}

// GoString copies a NUL-terminated buffer into a Go string.
func GoString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// Field returns the first field named k in rec.
func Field(rec ffilog.Record, k string) (ffilog.Field, bool) {
	for _, f := range rec.Fields {
		if f.K == k {
			return f, true
		}
	}
	return ffilog.Field{}, false
}
