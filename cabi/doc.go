// Package cabi turns C function pointers into ffilog callbacks and keeps
// the registrations handed across the C boundary.
//
// With cgo, calls go through small static C trampolines. Without cgo, on
// platforms purego supports, they go through purego.SyscallN. Other builds
// report ffilog.ErrUnsupported.
//
// The C declarations live in ffilog.h next to this file.
package cabi
