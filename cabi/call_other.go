//go:build !cgo && !(darwin || freebsd || linux || netbsd || windows)

package cabi

import (
	"unsafe"

	"github.com/trickstertwo/ffilog"
)

// LevelFunc always fails on this build.
func LevelFunc(unsafe.Pointer) (ffilog.LevelFunc, error) {
	return nil, ffilog.ErrUnsupported
}

// LineFunc always fails on this build.
func LineFunc(unsafe.Pointer) (ffilog.LineFunc, error) {
	return nil, ffilog.ErrUnsupported
}
