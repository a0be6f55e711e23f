// Package ffilog relays a Go library's structured log records to a
// foreign caller (typically C) through a plain function pointer plus an
// opaque context pointer.
//
// # Registration & Teardown
//
// The owning library builds a Bridge from the caller's callback, registers
// it as the process-wide backend, and keeps the returned Handle:
//
//	b, err := ffilog.NewLevelBridge(fn, ctx)
//	if err != nil {
//		return err
//	}
//	bundle, err := ffilog.Register(state, b, ffilog.LevelInfo)
//	...
//	ffilog.Info().Int("value", 1).Msg("incremented")
//	...
//	state, ctx = ffilog.Deregister(bundle)
//
// Only one backend can be installed at a time; Register fails with
// ErrAlreadyInstalled instead of replacing it. After Deregister every
// logging call is a no-op and the context pointer is back with its owner.
//
// # Callback Contracts
//
// Two incompatible wire shapes are supported, each with its own
// constructor: ContractLevel (level + message, no status) and ContractLine
// (one level-prefixed line, signed status). See Contract for the rules
// shared by both.
//
// # Caller Obligations
//
// These cannot be checked and are preconditions of registration: the
// callback is safe to call concurrently from any thread, it flushes its
// sink on every call, and the context pointer stays valid until Deinit
// returns it. Deinit runs once, after logging has ceased.
//
// Delivery is best-effort. A failing callback is counted (Bridge.Stats)
// and optionally reported to an ErrorHandler; it is never retried and
// never surfaces as a panic.
package ffilog
