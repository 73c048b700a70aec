// Package profile stores the account details shown on the profile page
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/lineage/internal/events"
	"github.com/thenoetrevino/lineage/internal/models"
	"github.com/thenoetrevino/lineage/internal/validation"
)

// Service defines all profile operations
type Service interface {
	Get(ctx context.Context, uid string) (models.Profile, error)
	Update(ctx context.Context, uid string, req UpdateProfileRequest) (models.Profile, error)
}

type repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// UpdateProfileRequest encapsulates a partial profile update.
// Fields with pointers are optional - nil means don't update
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

// IsEmpty reports whether the request changes nothing
func (r UpdateProfileRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Username == nil && r.Email == nil && r.Phone == nil
}

// service implements Service interface
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new profile service
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// Get returns the stored profile, or an empty one for a new user
func (s *service) Get(ctx context.Context, uid string) (models.Profile, error) {
	if uid == "" {
		return models.Profile{}, ErrMissingUser
	}

	data, ok, err := s.repo.Get(ctx, models.ProfileKey(uid))
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if !ok {
		return models.Profile{}, nil
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		slog.Warn("discarding unreadable profile", "uid", uid, "error", err)
		return models.Profile{}, nil
	}
	return p, nil
}

// Update applies the non-nil fields of req and saves the validated result
func (s *service) Update(ctx context.Context, uid string, req UpdateProfileRequest) (models.Profile, error) {
	p, err := s.Get(ctx, uid)
	if err != nil {
		return p, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&p.FirstName, req.FirstName)
	apply(&p.LastName, req.LastName)
	apply(&p.Username, req.Username)
	apply(&p.Email, req.Email)
	apply(&p.Phone, req.Phone)

	if err := validation.Struct(p); err != nil {
		return p, err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return p, fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := s.repo.Set(ctx, models.ProfileKey(uid), string(data)); err != nil {
		return p, fmt.Errorf("failed to save profile: %w", err)
	}

	events.Publish(s.eventClient, events.Event{
		Type:   events.EventProfileChanged,
		UserID: uid,
	})
	return p, nil
}
