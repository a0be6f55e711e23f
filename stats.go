package ffilog

import "sync/atomic"

type stats struct {
	delivered atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

// StatsSnapshot is a point-in-time counters snapshot.
type StatsSnapshot struct {
	// Delivered counts callback invocations that reported success.
	Delivered uint64
	// Failed counts invocations that returned a negative status or panicked.
	Failed uint64
	// Dropped counts records emitted after teardown, typically through
	// loggers held from before it.
	Dropped uint64
}

func (s *stats) snapshot() StatsSnapshot {
	return StatsSnapshot{
		Delivered: s.delivered.Load(),
		Failed:    s.failed.Load(),
		Dropped:   s.dropped.Load(),
	}
}
