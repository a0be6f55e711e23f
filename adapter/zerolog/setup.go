package zerologadapter

import (
	"github.com/rs/zerolog"
)

// Config is an explicit, code-first configuration for a zerolog logger
// that writes to the ffilog backend.
type Config struct {
	Target string // target tag for every record
	Caller bool   // include zerolog's caller field
}

// NewLogger builds a zerolog.Logger over a Writer. The logger itself lets
// every level through; the backend's filter applies via a hook, so events
// it rejects are discarded before they are written.
func NewLogger(cfg Config) zerolog.Logger {
	zl := zerolog.New(NewWriter(cfg.Target)).Level(zerolog.TraceLevel).Hook(enabledHook)
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}
	return zl
}
