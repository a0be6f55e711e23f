package ffilog

import (
	"sync"
	"unsafe"
)

// cString copies a NUL-terminated buffer into a Go string.
func cString(p *byte) string {
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

type call struct {
	ctx   Context
	level WireLevel
	msg   string
}

// sink plays the foreign caller: it records every invocation and can be
// told to fail.
type sink struct {
	mu      sync.Mutex
	calls   []call
	flushes int
	status  int
}

func (s *sink) levelFunc(ctx Context, level WireLevel, msg *byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{ctx: ctx, level: level, msg: cString(msg)})
	s.flushes++
}

func (s *sink) lineFunc(ctx Context, line *byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := cString(line)
	s.calls = append(s.calls, call{ctx: ctx, msg: text})
	s.flushes++
	if s.status < 0 {
		return s.status
	}
	return len(text)
}

func (s *sink) snapshot() []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]call, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *sink) context() Context {
	return Context(unsafe.Pointer(s))
}

// reset empties the process-wide slot between tests.
func resetProcess() {
	if l := process.Load(); l != nil {
		process.Disable(l)
	}
}
