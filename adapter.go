package ffilog

// Adapter is the logging backend Strategy. Log receives a fully assembled
// Record: bound and event fields merged, single authoritative timestamp set.
//
// Log runs synchronously on the emitting goroutine and must not panic.
type Adapter interface {
	Log(r Record)
	// Enabled is the backend's own fast-path filter, consulted after the
	// Logger's min level.
	Enabled(level Level) bool
	Flush() error
}

// adapterLevelSetter is an optional interface adapters can implement
// to receive min-level configuration from Builder/Config.
type adapterLevelSetter interface {
	SetMinLevel(Level)
}

// adapterDropCounter is an optional interface for adapters that account
// for records a Logger filtered out after the adapter was torn down.
type adapterDropCounter interface {
	countDropped()
}
