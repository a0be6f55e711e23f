//go:build cgo

package cabi

import (
	"errors"
	"fmt"
	"runtime/cgo"
	"sync"
	"unsafe"

	"github.com/trickstertwo/ffilog"
)

// ErrInvalidHandle is returned for a handle that was never issued or has
// already been deregistered.
var ErrInvalidHandle = errors.New("cabi: invalid handle")

// Registration is what a C caller holds between register and deregister.
type Registration struct {
	bundle *ffilog.Bundle[ffilog.Contract]
}

// Contract reports the wire shape of the registration.
func (r *Registration) Contract() ffilog.Contract { return r.bundle.State }

// Stats returns the bridge counters, or zero after teardown.
func (r *Registration) Stats() ffilog.StatsSnapshot {
	if b := r.bundle.Handle.Bridge(); b != nil {
		return b.Stats()
	}
	return ffilog.StatsSnapshot{}
}

// Registry issues cgo handles for registrations. Each handle is released
// exactly once; later lookups fail with ErrInvalidHandle instead of
// crashing in cgo.Handle.Value.
type Registry struct {
	mu   sync.Mutex
	live map[cgo.Handle]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{live: make(map[cgo.Handle]struct{})}
}

// Register builds a bridge for contract c over the C function fn, installs
// it as the process-wide backend admitting levels up to maxWire, and
// returns a handle for it.
//
// FFILOG_TARGET and FFILOG_TIMESTAMPS are honoured; the level comes from
// maxWire alone.
func (reg *Registry) Register(c ffilog.Contract, fn, ctx unsafe.Pointer, maxWire ffilog.WireLevel, opts ...ffilog.BridgeOption) (uintptr, error) {
	level, err := ffilog.LevelFromWire(maxWire)
	if err != nil {
		return 0, err
	}
	// The env level is ignored, so its error is too.
	env, _ := ffilog.ConfigFromEnv()
	b, err := newBridge(c, fn, ffilog.Context(ctx), append(env.BridgeOptions(), opts...))
	if err != nil {
		return 0, err
	}
	cfg := env.LoggerConfig()
	cfg.MinLevel = level
	bundle, err := ffilog.RegisterWith(c, b, cfg)
	if err != nil {
		return 0, err
	}

	h := cgo.NewHandle(&Registration{bundle: bundle})
	reg.mu.Lock()
	reg.live[h] = struct{}{}
	reg.mu.Unlock()
	return uintptr(h), nil
}

// Lookup returns the registration for h without releasing it.
func (reg *Registry) Lookup(h uintptr) (*Registration, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.live[cgo.Handle(h)]; !ok {
		return nil, ErrInvalidHandle
	}
	return cgo.Handle(h).Value().(*Registration), nil
}

// Deregister tears the registration down, releases h and returns the
// context pointer given at registration.
func (reg *Registry) Deregister(h uintptr) (unsafe.Pointer, error) {
	reg.mu.Lock()
	ch := cgo.Handle(h)
	if _, ok := reg.live[ch]; !ok {
		reg.mu.Unlock()
		return nil, ErrInvalidHandle
	}
	delete(reg.live, ch)
	r := ch.Value().(*Registration)
	ch.Delete()
	reg.mu.Unlock()

	_, ctx := ffilog.Deregister(r.bundle)
	return unsafe.Pointer(ctx), nil
}

// Len reports the number of live handles.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.live)
}

func newBridge(c ffilog.Contract, fn unsafe.Pointer, ctx ffilog.Context, opts []ffilog.BridgeOption) (*ffilog.Bridge, error) {
	switch c {
	case ffilog.ContractLevel:
		f, err := LevelFunc(fn)
		if err != nil {
			return nil, err
		}
		return ffilog.NewLevelBridge(f, ctx, opts...)
	case ffilog.ContractLine:
		f, err := LineFunc(fn)
		if err != nil {
			return nil, err
		}
		return ffilog.NewLineBridge(f, ctx, opts...)
	}
	return nil, fmt.Errorf("%w: unknown contract %d", ffilog.ErrInvalidCallback, c)
}
