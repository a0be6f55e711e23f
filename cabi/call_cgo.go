//go:build cgo

package cabi

/*
#include "ffilog.h"

static void ffilog_call_level(ffilog_level_fn f, void *ctx, int32_t level, const char *msg) {
	f(ctx, level, msg);
}

static ptrdiff_t ffilog_call_line(ffilog_line_fn f, void *ctx, const char *line) {
	return f(ctx, line);
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/trickstertwo/ffilog"
)

// LevelFunc wraps a C ffilog_level_fn. NULL is rejected.
func LevelFunc(fn unsafe.Pointer) (ffilog.LevelFunc, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: NULL level function", ffilog.ErrInvalidCallback)
	}
	cfn := C.ffilog_level_fn(fn)
	return func(ctx ffilog.Context, level ffilog.WireLevel, msg *byte) {
		C.ffilog_call_level(cfn, unsafe.Pointer(ctx), C.int32_t(level), (*C.char)(unsafe.Pointer(msg)))
	}, nil
}

// LineFunc wraps a C ffilog_line_fn. NULL is rejected.
func LineFunc(fn unsafe.Pointer) (ffilog.LineFunc, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: NULL line function", ffilog.ErrInvalidCallback)
	}
	cfn := C.ffilog_line_fn(fn)
	return func(ctx ffilog.Context, line *byte) int {
		return int(C.ffilog_call_line(cfn, unsafe.Pointer(ctx), (*C.char)(unsafe.Pointer(line))))
	}, nil
}
