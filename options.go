package ioloop

import "github.com/joeycumines/logiface"

// config holds the resolved settings for a new Engine.
type config struct {
	logger         Logger
	maxDescriptors int
}

// Option configures a new Engine. See New.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) { f(cfg) }

// WithLogger sets the Logger an Engine reports diagnostics to. The default
// is NewNoOpLogger().
func WithLogger(logger Logger) Option {
	return optionFunc(func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// WithLogifaceLogger sets the Engine's Logger to an adapter around l, for
// deployments that already centralize diagnostics through
// github.com/joeycumines/logiface. Equivalent to
// WithLogger(NewLogifaceLogger(l)).
func WithLogifaceLogger(l *logiface.Logger[logiface.Event]) Option {
	return optionFunc(func(cfg *config) {
		if l != nil {
			cfg.logger = NewLogifaceLogger(l)
		}
	})
}

// WithMaxDescriptors hints at the number of distinct descriptors the
// Engine will register concurrently, so the readiness backend can
// preallocate its per-iteration monitor slices instead of growing them one
// append at a time during the first few Wait calls. It is a hint, not a
// limit: registering more descriptors than n still works, it just costs an
// extra reallocation or two. n <= 0 is ignored.
func WithMaxDescriptors(n int) Option {
	return optionFunc(func(cfg *config) {
		if n > 0 {
			cfg.maxDescriptors = n
		}
	})
}

func resolveOptions(opts []Option) *config {
	cfg := &config{logger: NewNoOpLogger()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	return cfg
}
