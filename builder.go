package ffilog

import (
	"fmt"

	"github.com/trickstertwo/xclock"
)

// Config describes a Logger. Register and RegisterWith set Adapter to the
// bridge being installed; everything else is optional.
type Config struct {
	Adapter   Adapter
	MinLevel  Level
	Target    string  // tag for records that do not set their own
	Fields    []Field // bound to every record, ahead of event fields
	Observers []Observer
	Clock     xclock.Clock // nil stamps records with xclock.Now
}

// Builder assembles a Config and turns it into a Logger.
//
//	l, err := ffilog.NewBuilder().
//		WithBridge(b).
//		WithTarget("lib").
//		WithFields(ffilog.Str("component", "cache")).
//		Build()
type Builder struct {
	cfg Config

	// Set by WithBridge so Build can reject a nil or torn-down bridge
	// instead of reporting a missing adapter.
	bridge    *Bridge
	viaBridge bool
}

// NewBuilder starts at LevelInfo with no adapter.
func NewBuilder() *Builder {
	return &Builder{cfg: Config{MinLevel: LevelInfo}}
}

// BuilderFrom starts from cfg. Slices in cfg are copied by Build.
func BuilderFrom(cfg Config) *Builder {
	return &Builder{cfg: cfg}
}

func (b *Builder) WithAdapter(a Adapter) *Builder {
	b.cfg.Adapter = a
	b.bridge, b.viaBridge = nil, false
	return b
}

// WithBridge makes br the adapter.
func (b *Builder) WithBridge(br *Bridge) *Builder {
	b.cfg.Adapter = nil
	if br != nil {
		b.cfg.Adapter = br
	}
	b.bridge, b.viaBridge = br, true
	return b
}

func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l
	return b
}

func (b *Builder) WithTarget(target string) *Builder {
	b.cfg.Target = target
	return b
}

// WithFields binds fs to every record of the built logger.
func (b *Builder) WithFields(fs ...Field) *Builder {
	b.cfg.Fields = append(b.cfg.Fields, fs...)
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

// AddObserver registers o; nil is ignored.
func (b *Builder) AddObserver(o Observer) *Builder {
	if o != nil {
		b.cfg.Observers = append(b.cfg.Observers, o)
	}
	return b
}

// Build validates the configuration, hands the min level to adapters that
// filter on their own, and returns the Logger.
func (b *Builder) Build() (*Logger, error) {
	if b.viaBridge {
		if b.bridge == nil {
			return nil, fmt.Errorf("%w: nil bridge", ErrInvalidCallback)
		}
		if b.bridge.Closed() {
			return nil, fmt.Errorf("%w: bridge already torn down", ErrInvalidCallback)
		}
	}
	if b.cfg.Adapter == nil {
		return nil, ErrNoAdapter
	}
	if ls, ok := b.cfg.Adapter.(adapterLevelSetter); ok {
		ls.SetMinLevel(b.cfg.MinLevel)
	}
	return newLogger(b.cfg), nil
}
