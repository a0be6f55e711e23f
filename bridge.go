package ffilog

import (
	"fmt"
	"sync/atomic"

	"github.com/trickstertwo/ffilog/internal/encode"
)

// ErrorHandler receives delivery failures. It is optional; without one
// failures are only counted.
type ErrorHandler func(error)

type bridgeOptions struct {
	errorHandler ErrorHandler
	timestamps   bool
	timeFormat   string
	bufferSize   int
}

// BridgeOption configures a Bridge at construction time.
type BridgeOption func(*bridgeOptions)

// WithErrorHandler installs h for delivery failures. h runs on the emitting
// goroutine and must not log through this module.
func WithErrorHandler(h ErrorHandler) BridgeOption {
	return func(o *bridgeOptions) { o.errorHandler = h }
}

// WithTimestamps prefixes ContractLine lines with the record time in
// layout (RFC3339Nano when empty).
func WithTimestamps(layout string) BridgeOption {
	return func(o *bridgeOptions) {
		o.timestamps = true
		o.timeFormat = layout
	}
}

// WithBufferSize sets the initial encode buffer capacity.
func WithBufferSize(n int) BridgeOption {
	return func(o *bridgeOptions) { o.bufferSize = n }
}

// Bridge is the Adapter that relays records to a foreign callback.
//
// The callback and context are immutable after construction, so concurrent
// Log calls need no locking. Delivery is best-effort: a failing callback is
// counted and reported to the ErrorHandler, never retried and never turned
// into a panic.
type Bridge struct {
	contract Contract
	levelFn  LevelFunc
	lineFn   LineFunc
	ctx      Context
	opts     bridgeOptions

	minLevel atomic.Int64
	closed   atomic.Bool
	st       stats
}

// NewLevelBridge builds a ContractLevel bridge. A nil fn is rejected here,
// never discovered at the first delivery.
func NewLevelBridge(fn LevelFunc, ctx Context, opts ...BridgeOption) (*Bridge, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil level callback", ErrInvalidCallback)
	}
	b := newBridge(ContractLevel, ctx, opts)
	b.levelFn = fn
	return b, nil
}

// NewLineBridge builds a ContractLine bridge.
func NewLineBridge(fn LineFunc, ctx Context, opts ...BridgeOption) (*Bridge, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil line callback", ErrInvalidCallback)
	}
	b := newBridge(ContractLine, ctx, opts)
	b.lineFn = fn
	return b, nil
}

func newBridge(c Contract, ctx Context, opts []BridgeOption) *Bridge {
	b := &Bridge{contract: c, ctx: ctx}
	for _, opt := range opts {
		opt(&b.opts)
	}
	if b.opts.bufferSize <= 0 {
		b.opts.bufferSize = encode.DefaultSize
	}
	b.minLevel.Store(int64(LevelTrace))
	return b
}

// Contract reports the wire shape this bridge speaks.
func (b *Bridge) Contract() Contract { return b.contract }

// Context returns the opaque pointer given at construction.
func (b *Bridge) Context() Context { return b.ctx }

// Closed reports whether the bridge has been torn down.
func (b *Bridge) Closed() bool { return b.closed.Load() }

// SetMinLevel is called by Builder and Logger.SetMinLevel.
func (b *Bridge) SetMinLevel(l Level) { b.minLevel.Store(int64(l)) }

// Enabled reports whether a record at level would reach the callback.
func (b *Bridge) Enabled(level Level) bool {
	if b.closed.Load() || level == LevelOff {
		return false
	}
	return level >= Level(b.minLevel.Load())
}

// Flush is a no-op: the callback flushes on every call.
func (b *Bridge) Flush() error { return nil }

// Log formats r and invokes the callback exactly once, synchronously.
func (b *Bridge) Log(r Record) {
	if !b.Enabled(r.Level) {
		b.countDropped()
		return
	}

	buf := encode.Get(b.opts.bufferSize)
	defer encode.Put(buf)

	var err error
	switch b.contract {
	case ContractLevel:
		appendMessage(buf, &r)
		err = b.callLevel(r.Level.Wire(), buf)
	case ContractLine:
		appendLine(buf, &r, &b.opts)
		err = b.callLine(buf)
	}
	if err != nil {
		b.st.failed.Add(1)
		b.report(err)
		return
	}
	b.st.delivered.Add(1)
}

// Stats returns a point-in-time snapshot of the delivery counters.
func (b *Bridge) Stats() StatsSnapshot {
	return b.st.snapshot()
}

// countDropped counts a record emitted after teardown.
func (b *Bridge) countDropped() {
	if b.closed.Load() {
		b.st.dropped.Add(1)
	}
}

func (b *Bridge) close() {
	b.closed.Store(true)
	b.minLevel.Store(int64(LevelOff))
}

func (b *Bridge) callLevel(w WireLevel, buf *encode.Buffer) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: callback panicked: %v", ErrDeliveryFailed, v)
		}
	}()
	b.levelFn(b.ctx, w, buf.CString())
	return nil
}

func (b *Bridge) callLine(buf *encode.Buffer) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: callback panicked: %v", ErrDeliveryFailed, v)
		}
	}()
	if n := b.lineFn(b.ctx, buf.CString()); n < 0 {
		return fmt.Errorf("%w: callback returned %d", ErrDeliveryFailed, n)
	}
	return nil
}

func (b *Bridge) report(err error) {
	h := b.opts.errorHandler
	if h == nil {
		return
	}
	defer func() { _ = recover() }()
	h(err)
}
