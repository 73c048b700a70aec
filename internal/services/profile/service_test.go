package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/lineage/internal/database"
	"github.com/thenoetrevino/lineage/internal/events"
	"github.com/thenoetrevino/lineage/internal/models"
)

func setupService(t *testing.T, eventClient events.EventPublisher) (Service, *database.Repository) {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	repo := database.NewRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	return NewService(repo, eventClient), repo
}

func ptr(s string) *string { return &s }

func TestGet_NewUser(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, nil)

	p, err := svc.Get(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, models.Profile{}, p)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestUpdate_Partial(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, "ada", UpdateProfileRequest{
		FirstName: ptr(" Ada "),
		LastName:  ptr("Lovelace"),
		Email:     ptr("ada@example.com"),
	})
	require.NoError(t, err)

	p, err := svc.Update(ctx, "ada", UpdateProfileRequest{Username: ptr("countess1815")})
	require.NoError(t, err)
	assert.Equal(t, models.Profile{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "countess1815",
		Email:     "ada@example.com",
	}, p)

	stored, err := svc.Get(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestUpdate_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  UpdateProfileRequest
	}{
		{"email", UpdateProfileRequest{Email: ptr("not-an-email")}},
		{"username too short", UpdateProfileRequest{Username: ptr("ab")}},
		{"username symbols", UpdateProfileRequest{Username: ptr("ada!")}},
		{"phone", UpdateProfileRequest{Phone: ptr("555-1234")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Update(ctx, "ada", tt.req)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}

	// clearing an optional field is allowed
	p, err := svc.Update(ctx, "byron", UpdateProfileRequest{Phone: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, p.Phone)
}

func TestUpdate_CorruptDocumentIsReplaced(t *testing.T) {
	t.Parallel()
	svc, repo := setupService(t, nil)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, models.ProfileKey("ada"), "[]"))

	p, err := svc.Update(ctx, "ada", UpdateProfileRequest{Phone: ptr("+15551234567")})
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", p.Phone)
}

func TestUpdate_PublishesEvent(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := events.NewBroker()
	defer func() { _ = broker.Close() }()
	ch, err := broker.Subscribe(ctx, "ada")
	require.NoError(t, err)

	svc, _ := setupService(t, broker)
	_, err = svc.Update(ctx, "ada", UpdateProfileRequest{FirstName: ptr("Ada")})
	require.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, events.EventProfileChanged, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}
