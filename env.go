package ffilog

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables read by ConfigFromEnv.
//
//	FFILOG_LEVEL       trace|debug|info|warn|error|off (default info)
//	FFILOG_TARGET      default target tag for records without one
//	FFILOG_TIMESTAMPS  1/true to prefix lines with RFC3339Nano time, or a
//	                   Go time layout to use instead
const (
	EnvLevel      = "FFILOG_LEVEL"
	EnvTarget     = "FFILOG_TARGET"
	EnvTimestamps = "FFILOG_TIMESTAMPS"
)

// EnvConfig is the configuration ConfigFromEnv understands.
type EnvConfig struct {
	MinLevel   Level
	Target     string
	Timestamps bool
	TimeFormat string
}

// ConfigFromEnv reads EnvConfig from the process environment. An invalid
// level is reported and left at the default; the other fields are filled
// in either way.
func ConfigFromEnv() (EnvConfig, error) {
	var err error
	cfg := EnvConfig{MinLevel: LevelInfo}
	if v, ok := os.LookupEnv(EnvLevel); ok && strings.TrimSpace(v) != "" {
		lvl, perr := ParseLevel(v)
		if perr != nil {
			err = fmt.Errorf("%s: %w", EnvLevel, perr)
		} else {
			cfg.MinLevel = lvl
		}
	}
	cfg.Target = strings.TrimSpace(os.Getenv(EnvTarget))
	switch v := strings.TrimSpace(os.Getenv(EnvTimestamps)); strings.ToLower(v) {
	case "", "0", "false", "no":
	case "1", "true", "yes":
		cfg.Timestamps = true
	default:
		cfg.Timestamps = true
		cfg.TimeFormat = v
	}
	return cfg, err
}

// LoggerConfig converts c into a Logger Config (without adapter).
func (c EnvConfig) LoggerConfig() Config {
	return Config{MinLevel: c.MinLevel, Target: c.Target}
}

// BridgeOptions converts c into the matching Bridge options.
func (c EnvConfig) BridgeOptions() []BridgeOption {
	var opts []BridgeOption
	if c.Timestamps {
		opts = append(opts, WithTimestamps(c.TimeFormat))
	}
	return opts
}
