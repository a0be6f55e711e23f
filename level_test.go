package ffilog

import (
	"errors"
	"testing"
)

func TestLevel_Wire(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   Level
		want WireLevel
	}{
		{LevelTrace, WireTrace},
		{LevelDebug, WireDebug},
		{LevelInfo, WireInfo},
		{LevelWarn, WireWarn},
		{LevelError, WireError},
		{LevelOff, WireOff},
		{LevelInfo + 2, WireInfo},
		{LevelError + 4, WireError},
		{LevelTrace - 10, WireTrace},
	}
	for _, c := range cases {
		if got := c.in.Wire(); got != c.want {
			t.Fatalf("%v.Wire() = %d, want %d", c.in, got, c.want)
		}
		if c.in == LevelTrace-10 || c.in == LevelInfo+2 || c.in == LevelError+4 {
			continue
		}
		back, err := LevelFromWire(c.want)
		if err != nil || back != c.in {
			t.Fatalf("LevelFromWire(%d) = %v, %v", c.want, back, err)
		}
	}

	if _, err := LevelFromWire(9); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	ok := map[string]Level{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		" info ":  LevelInfo,
		"warning": LevelWarn,
		"Warn":    LevelWarn,
		"error":   LevelError,
		"none":    LevelOff,
		"off":     LevelOff,
	}
	for in, want := range ok {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestLevel_String(t *testing.T) {
	t.Parallel()

	if got := LevelWarn.String(); got != "WARN" {
		t.Fatalf("got %q", got)
	}
	if got := Level(2).String(); got != "LEVEL(2)" {
		t.Fatalf("got %q", got)
	}
}
