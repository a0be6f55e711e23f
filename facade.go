package ffilog

// Facade helpers using the process-wide slot.
// Usage: ffilog.Info().Str("k","v").Msg("hello")

func Trace() *Event { return L().Trace() }
func Debug() *Event { return L().Debug() }
func Info() *Event  { return L().Info() }
func Warn() *Event  { return L().Warn() }
func Error() *Event { return L().Error() }

// Enabled reports whether the process-wide backend would accept level.
func Enabled(level Level) bool { return L().Enabled(level) }
