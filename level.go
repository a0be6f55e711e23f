package ffilog

import (
	"fmt"
	"math"
	"strings"
)

// Level mirrors slog numeric semantics and extends with Trace (-8).
// LevelOff sits above every real level, so a min level of LevelOff
// suppresses all records.
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
	LevelOff   Level = math.MaxInt32
)

// WireLevel is the level integer handed to the foreign callback.
// Larger values are more verbose; 0 means "off".
type WireLevel int32

const (
	WireOff   WireLevel = 0
	WireError WireLevel = 1
	WireWarn  WireLevel = 2
	WireInfo  WireLevel = 3
	WireDebug WireLevel = 4
	WireTrace WireLevel = 5
)

// Wire maps l onto the callback's enumeration. Levels in between two named
// levels round towards the less verbose one.
func (l Level) Wire() WireLevel {
	switch {
	case l == LevelOff:
		return WireOff
	case l >= LevelError:
		return WireError
	case l >= LevelWarn:
		return WireWarn
	case l >= LevelInfo:
		return WireInfo
	case l >= LevelDebug:
		return WireDebug
	default:
		return WireTrace
	}
}

// LevelFromWire is the inverse of Level.Wire.
func LevelFromWire(w WireLevel) (Level, error) {
	switch w {
	case WireOff:
		return LevelOff, nil
	case WireError:
		return LevelError, nil
	case WireWarn:
		return LevelWarn, nil
	case WireInfo:
		return LevelInfo, nil
	case WireDebug:
		return LevelDebug, nil
	case WireTrace:
		return LevelTrace, nil
	}
	return LevelOff, fmt.Errorf("%w: wire level %d", ErrInvalidLevel, w)
}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel accepts the names produced by String, case-insensitively,
// plus "warning" and "none".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "off", "none":
		return LevelOff, nil
	}
	return LevelOff, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}
