package zapadapter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/ffilog"
	"github.com/trickstertwo/ffilog/ffilogtest"
)

func TestCore_RoutesFieldsAndLevels(t *testing.T) {
	rec := ffilogtest.Install(t, ffilog.LevelDebug)
	zl := NewLogger(WithTarget("lib"))

	zl.Info("state changed",
		zap.String("from", "old"),
		zap.Int("count", 2),
		zap.Bool("ok", true),
		zap.Duration("dur", time.Millisecond),
		zap.Float64("f", 1.5),
		zap.Error(errors.New("boom")),
	)
	zl.Debug("dbg")
	zl.Error("bad")

	calls := rec.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, ffilog.WireInfo, calls[0].Level)
	assert.Equal(t, `state changed from=old count=2 ok=true dur=1ms f=1.5 error="boom"`, calls[0].Text)
	assert.Equal(t, ffilog.WireDebug, calls[1].Level)
	assert.Equal(t, ffilog.WireError, calls[2].Level)

	records := rec.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "lib", records[0].Target)
}

func TestCore_WithBoundFieldsAndNamespace(t *testing.T) {
	rec := ffilogtest.Install(t, ffilog.LevelInfo)
	zl := NewLogger().Named("lib.cache").With(zap.String("svc", "api"), zap.Namespace("req"))

	zl.Info("hit", zap.Int("size", 3), zap.Skip())

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "lib.cache", records[0].Target)

	keys := make([]string, 0, len(records[0].Fields))
	for _, f := range records[0].Fields {
		keys = append(keys, f.K)
	}
	assert.Equal(t, []string{"svc", "req.size"}, keys)
}

func TestCore_Enabled(t *testing.T) {
	c := NewCore()
	assert.False(t, c.Enabled(zapcore.ErrorLevel), "no backend installed")

	ffilogtest.Install(t, ffilog.LevelWarn)
	assert.False(t, c.Enabled(zapcore.InfoLevel))
	assert.True(t, c.Enabled(zapcore.WarnLevel))
	assert.True(t, c.Enabled(zapcore.DPanicLevel))

	strict := NewCore(WithLevel(zapcore.ErrorLevel))
	assert.False(t, strict.Enabled(zapcore.WarnLevel))
	assert.True(t, strict.Enabled(zapcore.ErrorLevel))
}

func TestCore_ObjectFieldsFlattened(t *testing.T) {
	rec := ffilogtest.Install(t, ffilog.LevelInfo)
	zl := NewLogger()

	zl.Info("obj", zap.Any("tags", []string{"a", "b"}), zap.Stringer("lvl", zapcore.WarnLevel))

	records := rec.Records()
	require.Len(t, records, 1)
	tags, ok := ffilogtest.Field(records[0], "tags")
	require.True(t, ok)
	assert.Equal(t, ffilog.KindAny, tags.Kind)
	lvl, ok := ffilogtest.Field(records[0], "lvl")
	require.True(t, ok)
	assert.Equal(t, "warn", lvl.Str)
}

func TestUse_ReplacesGlobals(t *testing.T) {
	rec := ffilogtest.Install(t, ffilog.LevelInfo)
	_, undo := Use()
	defer undo()

	zap.L().Warn("global")
	zap.S().Infow("sugared", "k", "v")
	require.NoError(t, zap.L().Sync())

	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "global", calls[0].Text)
	assert.Equal(t, "sugared k=v", calls[1].Text)
}
