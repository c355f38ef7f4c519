package domain

import (
	"context"
	"time"
)

// User represents a registered owner of property listings. Registration
// itself happens in a separate flow; this service only looks users up and
// maintains their owned-property list.
type User struct {
	ID            string
	Name          string
	Email         string
	Avatar        string
	AllProperties []string // property IDs in creation order
	CreatedAt     time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
