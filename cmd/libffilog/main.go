// Command libffilog builds ffilog as a C shared library:
//
//	go build -buildmode=c-shared -o libffilog.so ./cmd/libffilog
//
// Include cabi/ffilog.h for the callback typedefs and level constants.
package main

/*
#cgo CFLAGS: -I${SRCDIR}/../../cabi
#include "ffilog.h"
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/trickstertwo/ffilog"
	"github.com/trickstertwo/ffilog/cabi"
)

var registry = cabi.NewRegistry()

// setLastError records err for the calling C thread only.
func setLastError(err error) { cabi.SetLastError(err) }

// guard turns a panic into the last error so it never unwinds into C.
func guard() {
	if r := recover(); r != nil {
		setLastError(fmt.Errorf("ffilog: panic: %v", r))
	}
}

func register(c ffilog.Contract, fn, ctx unsafe.Pointer, level C.int32_t) C.uintptr_t {
	defer guard()
	id, err := registry.Register(c, fn, ctx, ffilog.WireLevel(level))
	setLastError(err)
	if err != nil {
		return 0
	}
	return C.uintptr_t(id)
}

//export ffilog_register
func ffilog_register(fn C.ffilog_level_fn, ctx unsafe.Pointer, level C.int32_t) C.uintptr_t {
	return register(ffilog.ContractLevel, unsafe.Pointer(fn), ctx, level)
}

//export ffilog_register_line
func ffilog_register_line(fn C.ffilog_line_fn, ctx unsafe.Pointer, level C.int32_t) C.uintptr_t {
	return register(ffilog.ContractLine, unsafe.Pointer(fn), ctx, level)
}

//export ffilog_deregister
func ffilog_deregister(h C.uintptr_t) (ctx unsafe.Pointer) {
	defer guard()
	ctx, err := registry.Deregister(uintptr(h))
	setLastError(err)
	return ctx
}

//export ffilog_enabled
func ffilog_enabled(level C.int32_t) C.int {
	defer guard()
	l, err := ffilog.LevelFromWire(ffilog.WireLevel(level))
	if err != nil || !ffilog.Enabled(l) {
		return 0
	}
	return 1
}

//export ffilog_emit
func ffilog_emit(level C.int32_t, target, msg *C.char) {
	defer guard()
	l, err := ffilog.LevelFromWire(ffilog.WireLevel(level))
	if err != nil {
		setLastError(err)
		return
	}
	lg := ffilog.L()
	if !lg.Enabled(l) {
		return
	}
	var t string
	if target != nil {
		t = C.GoString(target)
	}
	lg.Log(l, t, C.GoString(msg), nil)
}

//export ffilog_stats
func ffilog_stats(h C.uintptr_t, out *C.ffilog_stats_t) C.int {
	defer guard()
	if out == nil {
		setLastError(fmt.Errorf("%w: nil stats pointer", ffilog.ErrInvalidCallback))
		return -1
	}
	r, err := registry.Lookup(uintptr(h))
	setLastError(err)
	if err != nil {
		return -1
	}
	s := r.Stats()
	out.delivered = C.uint64_t(s.Delivered)
	out.failed = C.uint64_t(s.Failed)
	out.dropped = C.uint64_t(s.Dropped)
	return 0
}

// ffilog_last_error returns the error left by the calling thread's most
// recent register, deregister or stats call, or NULL if it succeeded. A
// rejected ffilog_emit level also sets it. Errors are kept per thread, so
// calls on other threads never replace or free the string; it stays valid
// until this thread makes one of those calls again.
//
//export ffilog_last_error
func ffilog_last_error() *C.char {
	return (*C.char)(cabi.LastError())
}

func main() {}
