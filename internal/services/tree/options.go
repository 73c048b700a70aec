package tree

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring a tree session
type Option func(*options)

type options struct {
	seedOnEmpty bool
	logger      *slog.Logger
	now         func() time.Time
}

func defaultOptions() options {
	return options{
		seedOnEmpty: true,
		logger:      slog.Default(),
		now:         time.Now,
	}
}

// WithSeedOnEmpty controls whether a user without a saved tree starts with
// the placeholder family
func WithSeedOnEmpty(seed bool) Option {
	return func(o *options) {
		o.seedOnEmpty = seed
	}
}

// WithLogger sets the logger used for load and persistence failures
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp snapshots
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
