package database

// DataStore defines the unified interface for all data operations.
// Consumers can depend on the smaller interfaces (e.g., KVRepository) for
// better testability and clearer dependencies.
type DataStore interface {
	KVRepository
	Close() error
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
