package domain

import "context"

// Database defines lifecycle operations for the underlying store.
// Each implementation owns its own migration files and strategy,
// keeping the whole persistence backend swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
