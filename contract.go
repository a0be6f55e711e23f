package ffilog

import "unsafe"

// Context is the caller-owned opaque pointer. It is passed back unchanged
// on every callback and returned by Handle.Deinit. Nothing in this module
// dereferences, inspects or frees it; keeping it valid between
// registration and deregistration is the caller's obligation.
type Context unsafe.Pointer

// Contract selects the wire shape of a delivery. The two shapes are
// incompatible, so each has its own constructor and C entry point.
//
// In both contracts the message text is cut at its first NUL byte; field
// values are quoted so they never carry one. ContractLine also escapes CR
// and LF in the message and target as \r and \n, so each call carries
// exactly one line. Callbacks must be safe for concurrent use from any
// goroutine and must flush their sink on every call.
type Contract uint8

const (
	// ContractLevel: void fn(void *ctx, int32_t level, const char *msg).
	// msg is the record's message followed by " key=value" pairs. There is
	// no status; every invocation counts as delivered.
	ContractLevel Contract = iota + 1

	// ContractLine: ptrdiff_t fn(void *ctx, const char *line). line is one
	// level-prefixed, newline-terminated text line. A negative return
	// signals failure; anything else is the number of bytes written.
	ContractLine
)

func (c Contract) String() string {
	switch c {
	case ContractLevel:
		return "level"
	case ContractLine:
		return "line"
	}
	return "unknown"
}

// LevelFunc is the Go-side view of a ContractLevel callback. msg points at
// a NUL-terminated buffer that is only valid for the duration of the call.
type LevelFunc func(ctx Context, level WireLevel, msg *byte)

// LineFunc is the Go-side view of a ContractLine callback. line points at a
// NUL-terminated buffer that is only valid for the duration of the call.
type LineFunc func(ctx Context, line *byte) int
