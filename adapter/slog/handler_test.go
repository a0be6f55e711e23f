package slogadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/trickstertwo/ffilog"
	"github.com/trickstertwo/ffilog/ffilogtest"
)

func TestHandler_RoutesToBackend(t *testing.T) {
	rec := ffilogtest.Install(t, ffilog.LevelDebug)
	sl := NewLogger(&Options{Target: "lib::counter"})

	sl.Info("incremented", "value", 1, "ratio", 0.5, "took", time.Millisecond)
	sl.Debug("debug line")

	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, ffilog.WireInfo, calls[0].Level)
	assert.Equal(t, "incremented value=1 ratio=0.5 took=1ms", calls[0].Text)
	assert.Equal(t, ffilog.WireDebug, calls[1].Level)

	records := rec.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "lib::counter", records[0].Target)
	f, ok := ffilogtest.Field(records[0], "value")
	require.True(t, ok)
	assert.Equal(t, ffilog.KindInt64, f.Kind)
}

func TestHandler_EnabledFollowsBackend(t *testing.T) {
	h := New(nil)
	ctx := context.Background()

	assert.False(t, h.Enabled(ctx, slog.LevelError), "no backend installed")

	ffilogtest.Install(t, ffilog.LevelWarn)
	assert.False(t, h.Enabled(ctx, slog.LevelInfo))
	assert.True(t, h.Enabled(ctx, slog.LevelWarn))

	strict := New(&Options{Level: slog.LevelError})
	assert.False(t, strict.Enabled(ctx, slog.LevelWarn))
}

func TestHandler_GroupsAndAttrs(t *testing.T) {
	rec := ffilogtest.Install(t, ffilog.LevelInfo)
	sl := NewLogger(nil).With("svc", "api").WithGroup("req")

	sl.Info("done",
		"path", "/x",
		slog.Group("resp", "status", 200),
		slog.Group("", "inline", true),
		slog.Group("empty"),
		"err", errors.New("boom"),
	)

	records := rec.Records()
	require.Len(t, records, 1)
	keys := make([]string, 0, len(records[0].Fields))
	for _, f := range records[0].Fields {
		keys = append(keys, f.K)
	}
	assert.Equal(t, []string{"svc", "req.path", "req.resp.status", "req.inline", "req.err"}, keys)

	f, _ := ffilogtest.Field(records[0], "req.err")
	assert.Equal(t, ffilog.KindError, f.Kind)
}

func TestHandler_TraceContext(t *testing.T) {
	rec := ffilogtest.Install(t, ffilog.LevelInfo)
	sl := NewLogger(&Options{TraceContext: true})

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10},
		SpanID:     trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	sl.InfoContext(ctx, "traced")
	sl.InfoContext(context.Background(), "untraced")

	records := rec.Records()
	require.Len(t, records, 2)
	tid, ok := ffilogtest.Field(records[0], fieldTraceID)
	require.True(t, ok)
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", tid.Str)
	sid, ok := ffilogtest.Field(records[0], fieldSpanID)
	require.True(t, ok)
	assert.Equal(t, "0102030405060708", sid.Str)

	_, ok = ffilogtest.Field(records[1], fieldTraceID)
	assert.False(t, ok)
}

func TestHandler_AddSource(t *testing.T) {
	rec := ffilogtest.Install(t, ffilog.LevelInfo)
	NewLogger(&Options{AddSource: true}).Info("where")

	records := rec.Records()
	require.Len(t, records, 1)
	f, ok := ffilogtest.Field(records[0], fieldSource)
	require.True(t, ok)
	assert.True(t, strings.Contains(f.Str, "handler_test.go:"), f.Str)
}

func TestUse_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	rec := ffilogtest.Install(t, ffilog.LevelInfo)
	Use(nil)
	slog.Warn("via default")

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ffilog.WireWarn, calls[0].Level)
	assert.Equal(t, "via default", calls[0].Text)
}

func TestHandler_SilentAfterTeardown(t *testing.T) {
	sl := NewLogger(nil)
	r := &ffilogtest.Recorder{}
	b, err := ffilog.NewLevelBridge(r.LevelFunc, r.Context())
	require.NoError(t, err)
	bundle, err := ffilog.Register(0, b, ffilog.LevelInfo)
	require.NoError(t, err)

	sl.Info("before")
	_, ctx := ffilog.Deregister(bundle)
	sl.Error("after")

	assert.Equal(t, r.Context(), ctx)
	assert.Len(t, r.Calls(), 1)
}
