// Package app wires the repository, event broker and services together
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/thenoetrevino/lineage/internal/database"
	"github.com/thenoetrevino/lineage/internal/events"
	"github.com/thenoetrevino/lineage/internal/models"
	profileservice "github.com/thenoetrevino/lineage/internal/services/profile"
	settingsservice "github.com/thenoetrevino/lineage/internal/services/settings"
	treeservice "github.com/thenoetrevino/lineage/internal/services/tree"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher

	logger      *slog.Logger
	seedOnEmpty bool

	// One tree session per user, opened on first use
	mu    sync.Mutex
	trees map[string]treeservice.Service

	// Service layer (business logic)
	SettingsService settingsservice.Service
	ProfileService  profileservice.Service
}

// New creates a new App with all services initialized.
// Without WithEventPublisher an in-process broker is created.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{
		logger:      slog.Default(),
		seedOnEmpty: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.eventClient == nil {
		cfg.eventClient = events.NewBroker()
	}

	return &App{
		repo:            repo,
		eventClient:     cfg.eventClient,
		logger:          cfg.logger,
		seedOnEmpty:     cfg.seedOnEmpty,
		trees:           make(map[string]treeservice.Service),
		SettingsService: settingsservice.NewService(repo, cfg.eventClient),
		ProfileService:  profileservice.NewService(repo, cfg.eventClient),
	}
}

// Tree returns uid's tree session, loading it from the repository the first
// time the user is seen
func (a *App) Tree(ctx context.Context, uid string) (treeservice.Service, error) {
	uid = strings.TrimSpace(uid)

	a.mu.Lock()
	defer a.mu.Unlock()

	if svc, ok := a.trees[uid]; ok {
		return svc, nil
	}

	svc, err := treeservice.Open(ctx, a.repo, uid, a.eventClient,
		treeservice.WithSeedOnEmpty(a.seedOnEmpty),
		treeservice.WithLogger(a.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open family tree: %w", err)
	}
	a.trees[uid] = svc
	return svc, nil
}

// DeleteUserData removes everything stored for uid and drops its open tree
// session so the next access starts fresh
func (a *App) DeleteUserData(ctx context.Context, uid string) error {
	uid = strings.TrimSpace(uid)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.SettingsService.DeleteAll(ctx, uid); err != nil {
		return err
	}
	delete(a.trees, uid)
	a.logger.Info("deleted user data", "uid", uid)
	return nil
}

// Users lists, sorted, the users that have a saved family tree
func (a *App) Users(ctx context.Context) ([]string, error) {
	keys, err := a.repo.Keys(ctx, models.FamilyTreeKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]string, 0, len(keys))
	for _, key := range keys {
		users = append(users, strings.TrimPrefix(key, models.FamilyTreeKeyPrefix))
	}
	return users, nil
}

// Events returns the publisher services report changes to
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Close ends event subscriptions. The repository is owned by the caller.
func (a *App) Close() error {
	return a.eventClient.Close()
}
