package database

import "context"

// KVRepository stores string documents under string keys
type KVRepository interface {
	// Get returns the value stored under key; ok is false when the key is absent
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set creates or replaces the value stored under key
	Set(ctx context.Context, key, value string) error

	// Delete removes the given keys atomically; absent keys are ignored
	Delete(ctx context.Context, keys ...string) error

	// Keys lists the stored keys beginning with prefix, sorted
	Keys(ctx context.Context, prefix string) ([]string, error)
}
