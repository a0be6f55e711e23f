package slogadapter

import (
	"log/slog"
)

// Use installs a Handler built from opts as slog's default logger, so
// slog.Info and the standard log package both reach the ffilog backend,
// and returns it.
func Use(opts *Options) *slog.Logger {
	sl := NewLogger(opts)
	slog.SetDefault(sl)
	return sl
}
