package ffilog

import (
	"sync"
	"sync/atomic"
)

// Slot holds at most one active Logger. Reads are lock-free so every log
// call site can consult it; Install and Disable are serialized.
//
// Lifecycle: empty -> installed (Install) -> empty again (Disable). Install
// on an occupied slot fails instead of replacing, so the installed backend
// is never orphaned.
type Slot struct {
	mu  sync.Mutex
	cur atomic.Pointer[Logger]
}

// Install places l into the slot.
func (s *Slot) Install(l *Logger) error {
	if l == nil {
		return ErrNoAdapter
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur.Load() != nil {
		return ErrAlreadyInstalled
	}
	s.cur.Store(l)
	return nil
}

// Load returns the installed logger or nil.
func (s *Slot) Load() *Logger {
	return s.cur.Load()
}

// Installed reports whether the slot is occupied.
func (s *Slot) Installed() bool {
	return s.cur.Load() != nil
}

// Disable raises l's filter to LevelOff and empties the slot if it still
// holds l. Loggers already handed out (children included) stop emitting
// because they share l's level. It reports whether l was the occupant.
func (s *Slot) Disable(l *Logger) bool {
	if l == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l.SetMinLevel(LevelOff)
	return s.cur.CompareAndSwap(l, nil)
}

var (
	// process is the process-wide backend slot.
	process Slot

	disabled = newLogger(Config{Adapter: nopAdapter{}, MinLevel: LevelOff})
)

// Install places l into the process-wide slot. It fails with
// ErrAlreadyInstalled while another logger is installed.
func Install(l *Logger) error { return process.Install(l) }

// Installed reports whether a backend occupies the process-wide slot.
func Installed() bool { return process.Installed() }

// L returns the process-wide logger. When nothing is installed it returns a
// disabled logger, so logging before registration or after teardown is a
// no-op rather than a crash.
func L() *Logger {
	if l := process.Load(); l != nil {
		return l
	}
	return disabled
}
