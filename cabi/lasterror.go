//go:build cgo

package cabi

/*
#include <stdlib.h>

static _Thread_local char *ffilog_last_err;

static void ffilog_set_last_err(char *s) {
	free(ffilog_last_err);
	ffilog_last_err = s;
}

static const char *ffilog_get_last_err(void) {
	return ffilog_last_err;
}
*/
import "C"

import "unsafe"

// SetLastError stores err as the calling OS thread's last error; nil
// clears it. The previous string of the same thread is freed.
//
// Inside an exported function the goroutine stays on the C caller's thread,
// so each C thread sees only its own errors. Elsewhere, callers must lock
// the goroutine to its thread (runtime.LockOSThread) for the value to be
// meaningful.
func SetLastError(err error) {
	var s *C.char
	if err != nil {
		s = C.CString(err.Error())
	}
	C.ffilog_set_last_err(s)
}

// LastError returns the calling thread's last error as a C string, or nil.
// It stays valid until the same thread sets another error.
func LastError() unsafe.Pointer {
	return unsafe.Pointer(C.ffilog_get_last_err())
}

// LastErrorString is LastError copied into Go memory.
func LastErrorString() string {
	p := LastError()
	if p == nil {
		return ""
	}
	return C.GoString((*C.char)(p))
}
