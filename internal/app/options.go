package app

import (
	"log/slog"

	"github.com/thenoetrevino/lineage/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	seedOnEmpty bool
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithSeedOnEmpty controls whether new users start with the placeholder family
func WithSeedOnEmpty(seed bool) Option {
	return func(cfg *appConfig) {
		cfg.seedOnEmpty = seed
	}
}
