package ffilog

import (
	"errors"
	"testing"
	"time"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvTarget, "")
	t.Setenv(EnvTimestamps, "")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.MinLevel != LevelInfo || cfg.Target != "" || cfg.Timestamps {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.BridgeOptions()) != 0 {
		t.Fatalf("expected no bridge options")
	}
}

func TestConfigFromEnv_Values(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvTarget, " lib ")
	t.Setenv(EnvTimestamps, time.Kitchen)

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.MinLevel != LevelDebug || cfg.Target != "lib" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.Timestamps || cfg.TimeFormat != time.Kitchen {
		t.Fatalf("unexpected timestamps: %+v", cfg)
	}
	lc := cfg.LoggerConfig()
	if lc.MinLevel != LevelDebug || lc.Target != "lib" || lc.Adapter != nil {
		t.Fatalf("unexpected logger config: %+v", lc)
	}
}

func TestConfigFromEnv_TimestampFlag(t *testing.T) {
	t.Setenv(EnvLevel, "")
	t.Setenv(EnvTimestamps, "true")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !cfg.Timestamps || cfg.TimeFormat != "" {
		t.Fatalf("unexpected timestamps: %+v", cfg)
	}

	s := &sink{}
	b, err := NewLineBridge(s.lineFunc, nil, cfg.BridgeOptions()...)
	if err != nil {
		t.Fatalf("new bridge: %v", err)
	}
	b.Log(Record{At: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Level: LevelInfo, Message: "m"})
	calls := s.snapshot()
	if len(calls) != 1 || calls[0].msg != "2024-01-02T03:04:05Z INFO m\n" {
		t.Fatalf("unexpected calls: %+v", calls)
	}
}

func TestConfigFromEnv_BadLevel(t *testing.T) {
	t.Setenv(EnvLevel, "chatty")
	t.Setenv(EnvTarget, "lib")

	cfg, err := ConfigFromEnv()
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if cfg.MinLevel != LevelInfo || cfg.Target != "lib" {
		t.Fatalf("expected defaults plus target, got %+v", cfg)
	}
}
