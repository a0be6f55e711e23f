package ffilog

import "errors"

var (
	// ErrAlreadyInstalled is returned when a backend already occupies the
	// process-wide slot. The installed backend is left untouched.
	ErrAlreadyInstalled = errors.New("ffilog: a backend is already installed")

	// ErrInvalidCallback is returned when a callback reference is nil or
	// otherwise unusable.
	ErrInvalidCallback = errors.New("ffilog: invalid callback")

	// ErrNoAdapter is returned by Builder.Build without an adapter.
	ErrNoAdapter = errors.New("ffilog: no adapter configured")

	// ErrInvalidLevel is returned for level names or wire values that do not
	// map to a Level.
	ErrInvalidLevel = errors.New("ffilog: invalid level")

	// ErrDeliveryFailed reports a callback that signalled failure. It only
	// reaches an ErrorHandler; Log never returns it.
	ErrDeliveryFailed = errors.New("ffilog: delivery failed")

	// ErrUnsupported is returned when a C function pointer cannot be called
	// from this build (no cgo and no purego support for the platform).
	ErrUnsupported = errors.New("ffilog: foreign calls unsupported on this build")
)
