// Package settings stores per-user application preferences
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/lineage/internal/events"
	"github.com/thenoetrevino/lineage/internal/models"
	"github.com/thenoetrevino/lineage/internal/validation"
)

// ExportVersion is written into every data export
const ExportVersion = "1.0"

// Service defines all settings operations
type Service interface {
	Get(ctx context.Context, uid string) (models.Settings, error)
	Save(ctx context.Context, uid string, s models.Settings) (models.Settings, error)
	Set(ctx context.Context, uid, key, value string) (models.Settings, error)
	Export(ctx context.Context, uid string) ([]byte, error)

	// DeleteAll removes every document stored for uid: settings, family
	// tree and profile
	DeleteAll(ctx context.Context, uid string) error
}

type repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Export is the document produced by the data export
type Export struct {
	Settings   models.Settings `json:"settings"`
	ExportDate time.Time       `json:"exportDate"`
	Version    string          `json:"version"`
}

// service implements Service interface
type service struct {
	repo        repository
	eventClient events.EventPublisher
	now         func() time.Time
}

// NewService creates a new settings service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
		now:         time.Now,
	}
}

// Get returns the stored settings merged over the defaults. Unreadable
// documents are logged and replaced by the defaults.
func (s *service) Get(ctx context.Context, uid string) (models.Settings, error) {
	if uid == "" {
		return models.Settings{}, ErrMissingUser
	}

	settings := models.DefaultSettings()
	data, ok, err := s.repo.Get(ctx, models.SettingsKey(uid))
	if err != nil {
		return settings, fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return settings, nil
	}

	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		slog.Warn("discarding unreadable settings", "uid", uid, "error", err)
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// Save validates and stores the settings, stamping LastUpdated
func (s *service) Save(ctx context.Context, uid string, settings models.Settings) (models.Settings, error) {
	if uid == "" {
		return settings, ErrMissingUser
	}

	settings.PreferredAirline = strings.TrimSpace(settings.PreferredAirline)
	settings.Language = strings.TrimSpace(settings.Language)
	if err := validation.Struct(settings); err != nil {
		return settings, err
	}

	settings.LastUpdated = s.now().UTC()
	data, err := json.Marshal(settings)
	if err != nil {
		return settings, fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.repo.Set(ctx, models.SettingsKey(uid), string(data)); err != nil {
		return settings, fmt.Errorf("failed to save settings: %w", err)
	}

	events.Publish(s.eventClient, events.Event{
		Type:   events.EventSettingsChanged,
		UserID: uid,
	})
	return settings, nil
}

// Set changes one setting, addressed by its JSON name, and saves the result
func (s *service) Set(ctx context.Context, uid, key, value string) (models.Settings, error) {
	current, err := s.Get(ctx, uid)
	if err != nil {
		return current, err
	}

	updated, err := Apply(current, key, value)
	if err != nil {
		return current, err
	}
	return s.Save(ctx, uid, updated)
}

// Export returns the user's settings as an indented JSON export document
func (s *service) Export(ctx context.Context, uid string) ([]byte, error) {
	settings, err := s.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(Export{
		Settings:   settings,
		ExportDate: s.now().UTC(),
		Version:    ExportVersion,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

func (s *service) DeleteAll(ctx context.Context, uid string) error {
	if uid == "" {
		return ErrMissingUser
	}

	keys := []string{
		models.SettingsKey(uid),
		models.FamilyTreeKey(uid),
		models.ProfileKey(uid),
	}
	if err := s.repo.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete user data: %w", err)
	}

	events.Publish(s.eventClient, events.Event{
		Type:   events.EventSettingsChanged,
		UserID: uid,
	})
	return nil
}

// Apply returns a copy of settings with the field named key (its JSON name)
// set from value. Boolean fields accept strconv.ParseBool input.
func Apply(settings models.Settings, key, value string) (models.Settings, error) {
	key = strings.TrimSpace(key)
	if key == "" || key == "lastUpdated" {
		return settings, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return settings, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return settings, err
	}

	current, ok := fields[key]
	if !ok {
		return settings, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}

	switch current.(type) {
	case bool:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return settings, fmt.Errorf("%w: %s expects true or false", ErrInvalidSettings, key)
		}
		fields[key] = b
	default:
		fields[key] = strings.TrimSpace(value)
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return settings, err
	}
	var updated models.Settings
	if err := json.Unmarshal(raw, &updated); err != nil {
		return settings, err
	}
	return updated, nil
}
