package cli

import (
	"context"

	"github.com/thenoetrevino/lineage/internal/app"
	"github.com/thenoetrevino/lineage/internal/cli/styles"
	"github.com/thenoetrevino/lineage/internal/config"
	"github.com/thenoetrevino/lineage/internal/identity"
	"github.com/thenoetrevino/lineage/internal/testutil"
)

// Options are the persistent root flags
type Options struct {
	ConfigPath string // --config
	User       string // --user
}

type optionsKey struct{}

// WithOptions stores the root flags for commands further down the tree
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// OptionsFromContext returns the root flags, zero when unset
func OptionsFromContext(ctx context.Context) Options {
	opts, _ := ctx.Value(optionsKey{}).(Options)
	return opts
}

// GetCLIFromContext returns the CLI for a command. Tests inject a prepared
// app under testutil.TestAppKey; otherwise a new CLI is built from config.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	opts := OptionsFromContext(ctx)

	if testApp, ok := ctx.Value(testutil.TestAppKey).(*app.App); ok && testApp != nil {
		cfg := config.Default()
		return &CLI{
			App:    testApp,
			Config: cfg,
			UID:    resolveUID(ctx, opts),
		}, nil
	}

	c, err := NewCLI(ctx, opts)
	if err != nil {
		return nil, err
	}
	styles.Init(c.Config.ColorScheme)
	return c, nil
}

// resolveUID picks the user: --user, then an identity carried by ctx, then
// the local account
func resolveUID(ctx context.Context, opts Options) string {
	if opts.User != "" {
		return opts.User
	}
	if id, ok := identity.FromContext(ctx); ok && id.UID != "" {
		return id.UID
	}
	return identity.Local().UID
}
