package ffilog

import "sync/atomic"

// noCopy lets `go vet` flag copies of a Handle.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Handle is the single authority allowed to tear one registration down.
// It holds the only strong reference to the installed Bridge besides the
// process-wide slot itself; Deinit drops both.
type Handle struct {
	_ noCopy

	slot   *Slot
	logger *Logger
	bridge atomic.Pointer[Bridge]
}

// Bridge returns the registered bridge, or nil after Deinit.
func (h *Handle) Bridge() *Bridge {
	return h.bridge.Load()
}

// Deinit disables the process-wide backend (filter raised to LevelOff, slot
// emptied), closes the bridge and returns the context pointer exactly as it
// was given at registration. It cannot fail.
//
// Deinit must run after all logging has logically ceased. Calling it twice
// is a caller error; the second call has no effect and returns nil.
func (h *Handle) Deinit() Context {
	b := h.bridge.Swap(nil)
	if b == nil {
		return nil
	}
	h.slot.Disable(h.logger)
	b.close()
	h.logger = nil
	return b.Context()
}

// Bundle is the owning library's state together with the Handle of its
// logging registration.
type Bundle[S any] struct {
	State  S
	Handle *Handle
}

// Register installs b as the process-wide backend with level as the
// minimum and returns state bundled with the Handle that tears it down.
//
// It fails with ErrAlreadyInstalled while another backend is installed; the
// installed backend is left untouched and b is not installed.
func Register[S any](state S, b *Bridge, level Level) (*Bundle[S], error) {
	return RegisterWith(state, b, Config{MinLevel: level})
}

// RegisterWith is Register with full Logger configuration. cfg.Adapter is
// replaced by b.
func RegisterWith[S any](state S, b *Bridge, cfg Config) (*Bundle[S], error) {
	h, err := register(&process, b, cfg)
	if err != nil {
		return nil, err
	}
	return &Bundle[S]{State: state, Handle: h}, nil
}

// Deregister tears the registration down and returns the state and the
// context pointer. It is the last permitted use of bundle.
func Deregister[S any](bundle *Bundle[S]) (S, Context) {
	ctx := bundle.Handle.Deinit()
	return bundle.State, ctx
}

func register(slot *Slot, b *Bridge, cfg Config) (*Handle, error) {
	l, err := BuilderFrom(cfg).WithBridge(b).Build()
	if err != nil {
		return nil, err
	}
	if err := slot.Install(l); err != nil {
		return nil, err
	}
	h := &Handle{slot: slot, logger: l}
	h.bridge.Store(b)
	return h, nil
}
