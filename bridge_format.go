package ffilog

import (
	"fmt"

	"github.com/trickstertwo/ffilog/internal/encode"
)

// appendMessage renders the ContractLevel payload: message, then fields.
func appendMessage(buf *encode.Buffer, r *Record) {
	buf.AppendString(encode.TruncateNUL(r.Message))
	appendFields(buf, r.Fields)
}

// appendLine renders the ContractLine payload:
//
//	[<time> ]<LEVEL> [<target>: ]<message>[ key=value...]\n
func appendLine(buf *encode.Buffer, r *Record, o *bridgeOptions) {
	if o.timestamps {
		buf.AppendTime(r.At, o.timeFormat)
		buf.AppendByte(' ')
	}
	buf.AppendString(r.Level.String())
	buf.AppendByte(' ')
	if r.Target != "" {
		buf.AppendSingleLine(r.Target)
		buf.AppendString(": ")
	}
	buf.AppendSingleLine(r.Message)
	appendFields(buf, r.Fields)
	buf.AppendByte('\n')
}

func appendFields(buf *encode.Buffer, fields []Field) {
	for i := range fields {
		f := &fields[i]
		buf.AppendByte(' ')
		buf.AppendText(f.K)
		buf.AppendByte('=')
		appendValue(buf, f)
	}
}

func appendValue(buf *encode.Buffer, f *Field) {
	switch f.Kind {
	case KindString:
		buf.AppendText(f.Str)
	case KindInt64:
		buf.AppendInt64(f.Int64)
	case KindUint64:
		buf.AppendUint64(f.Uint64)
	case KindFloat64:
		buf.AppendFloat64(f.Float64)
	case KindBool:
		buf.AppendBool(f.Bool)
	case KindDuration:
		buf.AppendDuration(f.Dur)
	case KindTime:
		buf.AppendTime(f.Time, "")
	case KindError:
		if f.Err == nil {
			buf.AppendString("null")
			return
		}
		buf.AppendQuoted(f.Err.Error())
	case KindBytes:
		buf.AppendBase64(f.Bytes)
	case KindAny:
		if f.Any == nil {
			buf.AppendString("null")
			return
		}
		buf.AppendText(fmt.Sprint(f.Any))
	default:
		buf.AppendString("null")
	}
}
