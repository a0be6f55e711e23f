package zapadapter

import (
	"go.uber.org/zap"
)

// NewLogger returns a *zap.Logger whose core routes to the ffilog backend.
func NewLogger(opts ...Option) *zap.Logger {
	return zap.New(NewCore(opts...))
}

// Use replaces zap's global loggers with one built by NewLogger and returns
// it together with the function restoring the previous globals.
func Use(opts ...Option) (*zap.Logger, func()) {
	zl := NewLogger(opts...)
	return zl, zap.ReplaceGlobals(zl)
}
