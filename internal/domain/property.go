package domain

import (
	"context"
	"time"
)

// Property is a single real-estate listing owned by exactly one user.
type Property struct {
	ID           string
	Title        string
	Description  string
	PropertyType string
	Location     string
	Price        float64
	Photo        string // hosted image URL
	CreatorID    string
	Creator      *User // resolved on detail reads, nil otherwise
	CreatedAt    time.Time
}

// SortOrder is the direction of a list sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PropertyQuery describes a filtered, optionally sorted and windowed
// listing read. Zero-value filters match everything. SortField is empty
// for store-default (insertion) order. When Paged is false the whole
// result set is returned.
type PropertyQuery struct {
	Type      string // exact match on PropertyType
	TitleLike string // case-insensitive substring match on Title
	SortField string
	SortOrder SortOrder
	Offset    int
	Limit     int
	Paged     bool
}

// PropertyPatch is a partial update; nil fields are left untouched.
type PropertyPatch struct {
	Title        *string
	Description  *string
	PropertyType *string
	Location     *string
	Price        *float64
	Photo        *string
}

// PropertyRepository defines persistence operations for properties.
//
// Create and Delete each span two documents (the property row and the
// owner's AllProperties sequence) and must apply both writes atomically:
// either both commit or neither is observable.
type PropertyRepository interface {
	Find(ctx context.Context, q PropertyQuery) ([]Property, error)
	// Count returns the number of properties matching the filter alone,
	// ignoring any sort or pagination window in q.
	Count(ctx context.Context, q PropertyQuery) (int, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	// GetByIDWithCreator resolves the owning user onto Property.Creator.
	GetByIDWithCreator(ctx context.Context, id string) (*Property, error)
	// Create persists the property and appends its ID to the creator's
	// AllProperties in one transaction. Returns ErrNotFound when the
	// creator does not exist; in that case nothing is persisted.
	Create(ctx context.Context, property *Property) error
	// Patch applies the non-nil fields to an existing property.
	// Returns ErrNotFound when no property has the given ID.
	Patch(ctx context.Context, id string, patch PropertyPatch) error
	// Delete removes the property and pulls its ID from the owner's
	// AllProperties in one transaction. Returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
