// Package cli holds what every lineage command shares: the application
// instance, output formatting and exit codes
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/lineage/internal/app"
	"github.com/thenoetrevino/lineage/internal/config"
	"github.com/thenoetrevino/lineage/internal/database"
	"github.com/thenoetrevino/lineage/internal/logging"
	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	UID    string // user whose data commands operate on

	closers []io.Closer
}

// NewCLI loads configuration, opens the database in the data directory and
// builds the application
func NewCLI(ctx context.Context, opts Options) (*CLI, error) {
	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	c := &CLI{Config: cfg}

	if logCloser, err := logging.Init(cfg.DataDir, cfg.SlogLevel()); err != nil {
		slog.Warn("file logging unavailable", "error", err)
	} else {
		c.closers = append(c.closers, logCloser)
	}

	db, err := database.InitDB(ctx, cfg.DataDir)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	repo := database.NewRepository(db)

	c.App = app.New(repo,
		app.WithLogger(logging.Logger),
		app.WithSeedOnEmpty(cfg.ShouldSeed()),
	)
	// closed in reverse order: app, repository, log file
	c.closers = append(c.closers, repo, c.App)
	c.UID = resolveUID(ctx, opts)

	return c, nil
}

// LoadConfig reads the config file at path, or the default location when
// path is empty
func LoadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Tree returns the family tree session of the CLI user
func (c *CLI) Tree(ctx context.Context) (treeservice.Service, error) {
	return c.App.Tree(ctx, c.UID)
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
