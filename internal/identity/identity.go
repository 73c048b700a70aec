// Package identity supplies the opaque user identifier that namespaces every
// stored document. Authentication itself happens elsewhere.
package identity

import (
	"context"
	"os"
	"os/user"
	"strings"
)

// EnvUID overrides the local user identifier
const EnvUID = "LINEAGE_UID"

// Identity is the caller a session belongs to
type Identity struct {
	UID           string
	Authenticated bool
}

// Local returns the identity of the person running the CLI.
// It tries multiple methods with fallbacks:
// 1. LINEAGE_UID environment variable - explicit override
// 2. user.Current() - username from the OS
// 3. USER environment variable - fallback for restricted environments
// 4. "unknown" - final fallback to ensure a non-empty value
func Local() Identity {
	if uid := strings.TrimSpace(os.Getenv(EnvUID)); uid != "" {
		return Identity{UID: uid, Authenticated: true}
	}

	if currentUser, err := user.Current(); err == nil && currentUser.Username != "" {
		return Identity{UID: currentUser.Username, Authenticated: true}
	}

	if username := os.Getenv("USER"); username != "" {
		return Identity{UID: username, Authenticated: true}
	}

	return Identity{UID: "unknown"}
}

type ctxKey struct{}

// WithIdentity returns a context carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored in ctx, if any
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
