//go:build cgo

package cabi

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/ffilog"
	"github.com/trickstertwo/ffilog/cabi/cabitest"
)

func TestLevelFunc_RejectsNULL(t *testing.T) {
	_, err := LevelFunc(nil)
	require.ErrorIs(t, err, ffilog.ErrInvalidCallback)
	_, err = LineFunc(nil)
	require.ErrorIs(t, err, ffilog.ErrInvalidCallback)
}

func TestRegistry_LevelContractRoundTrip(t *testing.T) {
	rec := cabitest.New()
	defer rec.Free()

	reg := NewRegistry()
	h, err := reg.Register(ffilog.ContractLevel, cabitest.LevelFn(), rec.Context(), ffilog.WireInfo)
	require.NoError(t, err)
	require.NotZero(t, h)
	assert.Equal(t, 1, reg.Len())

	for i := 1; i <= 3; i++ {
		ffilog.Info().Msgf("incremented, new value %d", i)
	}
	ffilog.Debug().Msg("filtered")

	r, err := reg.Lookup(h)
	require.NoError(t, err)
	assert.Equal(t, ffilog.ContractLevel, r.Contract())
	assert.Equal(t, uint64(3), r.Stats().Delivered)

	ctx, err := reg.Deregister(h)
	require.NoError(t, err)
	assert.Equal(t, rec.Context(), ctx)
	assert.Zero(t, reg.Len())

	ffilog.Error().Msg("after teardown")

	require.Equal(t, 3, rec.Count())
	assert.Equal(t, 3, rec.Flushes())
	for i := 0; i < 3; i++ {
		level, msg := rec.Call(i)
		assert.Equal(t, int32(ffilog.WireInfo), level)
		assert.Equal(t, "incremented, new value "+string(rune('1'+i)), msg)
	}
}

func TestRegistry_LineContractFailureAbsorbed(t *testing.T) {
	rec := cabitest.New()
	defer rec.Free()
	rec.SetStatus(-1)

	reg := NewRegistry()
	h, err := reg.Register(ffilog.ContractLine, cabitest.LineFn(), rec.Context(), ffilog.WireTrace)
	require.NoError(t, err)

	ffilog.Warn().Str("k", "v").Msg("disk low")

	r, err := reg.Lookup(h)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), r.Stats().Failed)

	_, err = reg.Deregister(h)
	require.NoError(t, err)

	require.Equal(t, 1, rec.Count())
	_, line := rec.Call(0)
	assert.Equal(t, "WARN disk low k=v\n", line)
}

func TestRegistry_SecondRegistrationFails(t *testing.T) {
	first, second := cabitest.New(), cabitest.New()
	defer first.Free()
	defer second.Free()

	reg := NewRegistry()
	h, err := reg.Register(ffilog.ContractLevel, cabitest.LevelFn(), first.Context(), ffilog.WireInfo)
	require.NoError(t, err)
	defer reg.Deregister(h)

	_, err = reg.Register(ffilog.ContractLevel, cabitest.LevelFn(), second.Context(), ffilog.WireInfo)
	require.ErrorIs(t, err, ffilog.ErrAlreadyInstalled)
	assert.Equal(t, 1, reg.Len())

	ffilog.Info().Msg("to first")
	assert.Equal(t, 1, first.Count())
	assert.Equal(t, 0, second.Count())
}

func TestRegistry_InvalidInputs(t *testing.T) {
	rec := cabitest.New()
	defer rec.Free()
	reg := NewRegistry()

	_, err := reg.Register(ffilog.ContractLevel, nil, rec.Context(), ffilog.WireInfo)
	require.ErrorIs(t, err, ffilog.ErrInvalidCallback)

	_, err = reg.Register(ffilog.ContractLevel, cabitest.LevelFn(), rec.Context(), 42)
	require.ErrorIs(t, err, ffilog.ErrInvalidLevel)

	_, err = reg.Register(ffilog.Contract(9), cabitest.LevelFn(), rec.Context(), ffilog.WireInfo)
	require.ErrorIs(t, err, ffilog.ErrInvalidCallback)

	_, err = reg.Deregister(12345)
	require.ErrorIs(t, err, ErrInvalidHandle)
	_, err = reg.Lookup(0)
	require.ErrorIs(t, err, ErrInvalidHandle)

	assert.False(t, ffilog.Installed())
}

func TestRegistry_DoubleDeregister(t *testing.T) {
	rec := cabitest.New()
	defer rec.Free()
	reg := NewRegistry()

	h, err := reg.Register(ffilog.ContractLevel, cabitest.LevelFn(), rec.Context(), ffilog.WireError)
	require.NoError(t, err)

	ctx, err := reg.Deregister(h)
	require.NoError(t, err)
	assert.Equal(t, rec.Context(), ctx)

	ctx, err = reg.Deregister(h)
	require.ErrorIs(t, err, ErrInvalidHandle)
	assert.Nil(t, ctx)
}

func TestLastError_IsPerThread(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	SetLastError(errors.New("mine"))
	defer SetLastError(nil)
	mine := LastError()
	require.NotNil(t, mine)

	// Another thread setting and clearing its own error leaves ours intact.
	done := make(chan string)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		SetLastError(errors.New("theirs"))
		got := LastErrorString()
		SetLastError(nil)
		done <- got
	}()
	assert.Equal(t, "theirs", <-done)

	assert.Equal(t, mine, LastError())
	assert.Equal(t, "mine", LastErrorString())

	SetLastError(nil)
	assert.Nil(t, LastError())
	assert.Empty(t, LastErrorString())
}
