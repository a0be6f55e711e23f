// Package encode holds the allocation-conscious byte encoding used to turn
// records into the text handed across the callback boundary.
package encode

import (
	"strings"
	"sync"
	"unsafe"
)

// DefaultSize is the initial capacity of pooled buffers.
const DefaultSize = 2048

// maxPooled caps what goes back into the pool so one huge record does not
// pin memory forever.
const maxPooled = 64 * 1024

// Buffer is a simple growing byte buffer with manual capacity management.
type Buffer struct{ b []byte }

func (buf *Buffer) AppendString(s string) { buf.b = append(buf.b, s...) }
func (buf *Buffer) AppendByte(c byte)     { buf.b = append(buf.b, c) }
func (buf *Buffer) AppendBytes(p []byte)  { buf.b = append(buf.b, p...) }

// Len returns the number of encoded bytes, excluding any terminator.
func (buf *Buffer) Len() int { return len(buf.b) }

// Bytes returns the encoded bytes. The slice is only valid until Put.
func (buf *Buffer) Bytes() []byte { return buf.b }

// Reset empties the buffer, keeping its capacity.
func (buf *Buffer) Reset() { buf.b = buf.b[:0] }

func (buf *Buffer) grow(n int) {
	free := cap(buf.b) - len(buf.b)
	if n <= free {
		return
	}
	need := len(buf.b) + n
	newCap := cap(buf.b) * 2
	if newCap < need {
		newCap = need
	}
	nb := make([]byte, len(buf.b), newCap)
	copy(nb, buf.b)
	buf.b = nb
}

// CString appends a NUL terminator and returns a pointer to the first byte.
// The pointer is valid until the buffer is modified or returned with Put;
// Len is unaffected so the terminator is never counted.
func (buf *Buffer) CString() *byte {
	buf.grow(1)
	buf.b = append(buf.b, 0)
	p := unsafe.SliceData(buf.b)
	buf.b = buf.b[:len(buf.b)-1]
	return p
}

var pool = sync.Pool{New: func() any { return &Buffer{b: make([]byte, 0, DefaultSize)} }}

// Get returns an empty pooled buffer with at least initCap capacity.
func Get(initCap int) *Buffer {
	if initCap <= 0 {
		initCap = DefaultSize
	}
	buf := pool.Get().(*Buffer)
	if cap(buf.b) < initCap {
		buf.b = make([]byte, 0, initCap)
	} else {
		buf.b = buf.b[:0]
	}
	return buf
}

// Put returns buf to the pool.
func Put(buf *Buffer) {
	if cap(buf.b) <= maxPooled {
		pool.Put(buf)
	}
}

// TruncateNUL cuts s at its first NUL byte, the only terminator rule the
// C side understands.
func TruncateNUL(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// AppendSingleLine writes s up to its first NUL with CR and LF escaped as
// \r and \n, so the text can neither end nor split a line.
func (buf *Buffer) AppendSingleLine(s string) {
	s = TruncateNUL(s)
	start := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		default:
			continue
		}
		buf.AppendString(s[start:i])
		buf.AppendString(esc)
		start = i + 1
	}
	buf.AppendString(s[start:])
}
