//go:build !cgo && (darwin || freebsd || linux || netbsd || windows)

package cabi

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/trickstertwo/ffilog"
)

// LevelFunc wraps a C ffilog_level_fn. NULL is rejected.
func LevelFunc(fn unsafe.Pointer) (ffilog.LevelFunc, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: NULL level function", ffilog.ErrInvalidCallback)
	}
	p := uintptr(fn)
	return func(ctx ffilog.Context, level ffilog.WireLevel, msg *byte) {
		purego.SyscallN(p, uintptr(unsafe.Pointer(ctx)), uintptr(level), uintptr(unsafe.Pointer(msg)))
		runtime.KeepAlive(msg)
	}, nil
}

// LineFunc wraps a C ffilog_line_fn. NULL is rejected.
func LineFunc(fn unsafe.Pointer) (ffilog.LineFunc, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: NULL line function", ffilog.ErrInvalidCallback)
	}
	p := uintptr(fn)
	return func(ctx ffilog.Context, line *byte) int {
		r1, _, _ := purego.SyscallN(p, uintptr(unsafe.Pointer(ctx)), uintptr(unsafe.Pointer(line)))
		runtime.KeepAlive(line)
		return int(r1)
	}, nil
}
