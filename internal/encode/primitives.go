package encode

import (
	"encoding/base64"
	"math"
	"strconv"
	"time"
	"unicode/utf8"
)

const digits = "0123456789abcdef"
const minInt64Str = "-9223372036854775808"

func (buf *Buffer) AppendInt64(v int64) {
	if v == 0 {
		buf.AppendByte('0')
		return
	}
	if v < 0 {
		if v == -1<<63 {
			buf.AppendString(minInt64Str)
			return
		}
		buf.AppendByte('-')
		v = -v
	}
	buf.AppendUint64(uint64(v))
}

func (buf *Buffer) AppendUint64(v uint64) {
	if v == 0 {
		buf.AppendByte('0')
		return
	}
	var tmp [20]byte
	i := len(tmp)
	for v > 0 {
		i--
		tmp[i] = byte('0' + v%10)
		v /= 10
	}
	buf.AppendBytes(tmp[i:])
}

func (buf *Buffer) AppendFloat64(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if math.IsNaN(f) {
			buf.AppendString("NaN")
		} else if math.IsInf(f, 1) {
			buf.AppendString("+Inf")
		} else {
			buf.AppendString("-Inf")
		}
		return
	}
	var tmp [32]byte
	b := strconv.AppendFloat(tmp[:0], f, 'g', -1, 64)
	buf.AppendBytes(b)
}

func (buf *Buffer) AppendBool(v bool) {
	if v {
		buf.AppendString("true")
	} else {
		buf.AppendString("false")
	}
}

func (buf *Buffer) AppendDuration(d time.Duration) { buf.AppendString(d.String()) }

// AppendTime writes t with layout, RFC3339Nano when layout is empty.
func (buf *Buffer) AppendTime(t time.Time, layout string) {
	if layout == "" {
		layout = time.RFC3339Nano
	}
	var tmp [64]byte
	buf.AppendBytes(t.AppendFormat(tmp[:0], layout))
}

func (buf *Buffer) AppendBase64(data []byte) {
	if len(data) == 0 {
		return
	}
	encodedLen := base64.StdEncoding.EncodedLen(len(data))
	buf.grow(encodedLen)
	start := len(buf.b)
	buf.b = buf.b[:start+encodedLen]
	base64.StdEncoding.Encode(buf.b[start:], data)
}

// AppendQuoted writes s as a double-quoted, escaped string. Control bytes,
// NUL included, are escaped so the result never contains a terminator.
func (buf *Buffer) AppendQuoted(s string) {
	buf.AppendByte('"')
	buf.appendQuotedContent(s)
	buf.AppendByte('"')
}

func (buf *Buffer) appendQuotedContent(s string) {
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '\\' && c != '"' && c < 0x80 {
			i++
			continue
		}
		if start < i {
			buf.AppendString(s[start:i])
		}
		if c < 0x80 {
			switch c {
			case '\\', '"':
				buf.AppendByte('\\')
				buf.AppendByte(c)
			case '\n':
				buf.AppendString(`\n`)
			case '\r':
				buf.AppendString(`\r`)
			case '\t':
				buf.AppendString(`\t`)
			default:
				buf.AppendString(`\u00`)
				buf.AppendByte(digits[c>>4])
				buf.AppendByte(digits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.AppendString(`�`)
			i++
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		buf.AppendString(s[start:])
	}
}

// AppendText writes s bare when it is a single safe token and quoted
// otherwise (logfmt style).
func (buf *Buffer) AppendText(s string) {
	if s == "" {
		buf.AppendString(`""`)
		return
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || c == '"' || c == '=' || c == '\\' || c >= 0x7F {
			buf.AppendQuoted(s)
			return
		}
	}
	buf.AppendString(s)
}
