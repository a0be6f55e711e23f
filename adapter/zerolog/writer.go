package zerologadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/ffilog"
)

// Writer is a zerolog.LevelWriter that decodes each JSON event zerolog
// produces and re-emits it through the process-wide ffilog backend.
//
// zerolog's own "time" and "level" keys are dropped: ffilog stamps the
// record and the level travels out of band. Key order is preserved.
type Writer struct {
	target string
}

var _ zerolog.LevelWriter = (*Writer)(nil)

// NewWriter returns a Writer tagging records with target.
func NewWriter(target string) *Writer {
	return &Writer{target: target}
}

// Write handles events written without level information.
func (w *Writer) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel decodes p and emits it. It always reports len(p) written:
// delivery is best-effort and zerolog must not print its own errors.
func (w *Writer) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	l := ffilog.L()
	msg, fields, lvlName, err := decode(p)
	if err != nil {
		// Not a JSON object: forward the raw text.
		msg, fields = string(bytes.TrimRight(p, "\n")), nil
	}
	if level == zerolog.NoLevel && lvlName != "" {
		if parsed, perr := zerolog.ParseLevel(lvlName); perr == nil {
			level = parsed
		}
	}
	lvl := fromZerologLevel(level)
	if !l.Enabled(lvl) {
		return len(p), nil
	}
	l.Log(lvl, w.target, msg, fields)
	return len(p), nil
}

// enabledHook discards events the backend would reject before zerolog
// serializes them any further.
var enabledHook = zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, _ string) {
	if !ffilog.Enabled(fromZerologLevel(level)) {
		e.Discard()
	}
})

func fromZerologLevel(l zerolog.Level) ffilog.Level {
	switch l {
	case zerolog.TraceLevel:
		return ffilog.LevelTrace
	case zerolog.DebugLevel:
		return ffilog.LevelDebug
	case zerolog.InfoLevel, zerolog.NoLevel:
		return ffilog.LevelInfo
	case zerolog.WarnLevel:
		return ffilog.LevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return ffilog.LevelError
	case zerolog.Disabled:
		return ffilog.LevelOff
	default:
		// Custom levels below Trace.
		if l < zerolog.TraceLevel {
			return ffilog.LevelTrace
		}
		return ffilog.LevelError
	}
}

func decode(p []byte) (msg string, fields []ffilog.Field, level string, err error) {
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return "", nil, "", err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return "", nil, "", errors.New("zerolog event is not a JSON object")
	}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return "", nil, "", err
		}
		key, ok := tok.(string)
		if !ok {
			return "", nil, "", fmt.Errorf("unexpected key token %v", tok)
		}
		var v any
		if err = dec.Decode(&v); err != nil {
			return "", nil, "", err
		}
		switch key {
		case zerolog.MessageFieldName:
			msg, _ = v.(string)
		case zerolog.LevelFieldName:
			level, _ = v.(string)
		case zerolog.TimestampFieldName:
		case zerolog.ErrorFieldName:
			if s, ok := v.(string); ok {
				fields = append(fields, ffilog.Err(key, errors.New(s)))
			} else {
				fields = append(fields, ffilog.FieldOf(key, v))
			}
		default:
			fields = append(fields, toField(key, v))
		}
	}
	return msg, fields, level, nil
}

func toField(key string, v any) ffilog.Field {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return ffilog.Int64(key, i)
		}
		if f, err := n.Float64(); err == nil {
			return ffilog.Float64(key, f)
		}
		return ffilog.Str(key, n.String())
	}
	return ffilog.FieldOf(key, v)
}
