//go:build cgo

// Package cabitest provides C callbacks that record what they receive, for
// tests of the C ABI. It is not safe for concurrent use.
package cabitest

/*
#include <stdlib.h>
#include <string.h>
#include <stdint.h>
#include <stddef.h>

#define REC_MAX 64
#define REC_LEN 512

typedef struct {
	int32_t   levels[REC_MAX];
	char      msgs[REC_MAX][REC_LEN];
	int       count;
	int       flushes;
	ptrdiff_t status;
} recorder_t;

static void rec_store(recorder_t *r, int32_t level, const char *msg) {
	if (r->count < REC_MAX) {
		r->levels[r->count] = level;
		strncpy(r->msgs[r->count], msg, REC_LEN - 1);
		r->msgs[r->count][REC_LEN - 1] = 0;
	}
	r->count++;
	r->flushes++;
}

static void rec_level(void *ctx, int32_t level, const char *msg) {
	rec_store((recorder_t *)ctx, level, msg);
}

static ptrdiff_t rec_line(void *ctx, const char *line) {
	recorder_t *r = (recorder_t *)ctx;
	rec_store(r, 0, line);
	if (r->status < 0) {
		return r->status;
	}
	return (ptrdiff_t)strlen(line);
}

static void *rec_level_fn(void) { return (void *)rec_level; }
static void *rec_line_fn(void) { return (void *)rec_line; }
*/
import "C"

import "unsafe"

// MaxCalls is the number of calls whose content is kept.
const MaxCalls = int(C.REC_MAX)

// Recorder is a C-allocated call log. Its address is the context pointer
// handed to the callbacks.
type Recorder struct {
	r *C.recorder_t
}

// New allocates a zeroed Recorder. Free must be called when done.
func New() *Recorder {
	return &Recorder{r: (*C.recorder_t)(C.calloc(1, C.sizeof_recorder_t))}
}

// Free releases the C memory.
func (r *Recorder) Free() {
	C.free(unsafe.Pointer(r.r))
	r.r = nil
}

// Context is the opaque pointer to register with.
func (r *Recorder) Context() unsafe.Pointer { return unsafe.Pointer(r.r) }

// SetStatus sets the value the line callback returns; negative simulates
// failure.
func (r *Recorder) SetStatus(n int) { r.r.status = C.ptrdiff_t(n) }

// Count reports how many times a callback ran.
func (r *Recorder) Count() int { return int(r.r.count) }

// Flushes reports how many times the sink was flushed.
func (r *Recorder) Flushes() int { return int(r.r.flushes) }

// Call returns the level and text of the i-th call. Level is 0 for the
// line callback.
func (r *Recorder) Call(i int) (int32, string) {
	if i < 0 || i >= r.Count() || i >= MaxCalls {
		return 0, ""
	}
	return int32(r.r.levels[i]), C.GoString(&r.r.msgs[i][0])
}

// LevelFn is a C ffilog_level_fn recording into the context Recorder.
func LevelFn() unsafe.Pointer { return C.rec_level_fn() }

// LineFn is a C ffilog_line_fn recording into the context Recorder.
func LineFn() unsafe.Pointer { return C.rec_line_fn() }
