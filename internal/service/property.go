package service

import (
	"context"
	"fmt"

	"github.com/yariga/property-api/internal/domain"
	"github.com/yariga/property-api/internal/upload"
)

// PropertyService orchestrates property CRUD while keeping the
// user-owns-property link consistent across both collections.
type PropertyService struct {
	properties domain.PropertyRepository
	users      domain.UserRepository
	uploads    upload.Gateway
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(properties domain.PropertyRepository, users domain.UserRepository, uploads upload.Gateway) *PropertyService {
	return &PropertyService{properties: properties, users: users, uploads: uploads}
}

// CreatePropertyInput holds the fields of a new listing plus the owner's
// email, which identifies an existing user.
type CreatePropertyInput struct {
	Title        string
	Description  string
	PropertyType string
	Location     string
	Price        float64
	Photo        string
	Email        string
}

// UpdatePropertyInput is a partial update; nil fields are left untouched.
type UpdatePropertyInput struct {
	Title        *string
	Description  *string
	PropertyType *string
	Location     *string
	Price        *float64
	Photo        *string
}

// List returns the filtered, sorted, windowed page of properties together
// with the total count of the filter alone.
func (s *PropertyService) List(ctx context.Context, params ListParams) ([]domain.Property, int, error) {
	q, err := BuildPropertyQuery(params)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.properties.Count(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	// An empty window still reports the true total.
	if q.Paged && q.Limit <= 0 {
		return []domain.Property{}, total, nil
	}

	items, err := s.properties.Find(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("find properties: %w", err)
	}
	return items, total, nil
}

// Get returns one property with its owning user resolved.
// Returns domain.ErrNotFound when the id is unknown.
func (s *PropertyService) Get(ctx context.Context, id string) (*domain.Property, error) {
	return s.properties.GetByIDWithCreator(ctx, id)
}

// Create looks the owner up by email and persists the new property
// together with the owner's updated property list as one atomic unit.
// Returns domain.ErrNotFound when no user has the given email; nothing
// is persisted in that case.
func (s *PropertyService) Create(ctx context.Context, input CreatePropertyInput) (*domain.Property, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("%w: owner email is required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	property := &domain.Property{
		Title:        input.Title,
		Description:  input.Description,
		PropertyType: input.PropertyType,
		Location:     input.Location,
		Price:        input.Price,
		Photo:        input.Photo,
		CreatorID:    user.ID,
	}

	if err := s.properties.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

// Update applies a partial update to an existing property. A supplied
// photo payload is pushed through the upload gateway first; when the
// gateway answers without a URL the raw value is kept, while a gateway
// error fails the whole update. Returns domain.ErrNotFound when the id
// is unknown.
func (s *PropertyService) Update(ctx context.Context, id string, input UpdatePropertyInput) error {
	if input.Photo != nil && *input.Photo != "" {
		hosted, err := s.uploads.Upload(ctx, *input.Photo)
		if err != nil {
			return fmt.Errorf("upload photo: %w", err)
		}
		if hosted != "" {
			input.Photo = &hosted
		}
	}

	return s.properties.Patch(ctx, id, domain.PropertyPatch{
		Title:        input.Title,
		Description:  input.Description,
		PropertyType: input.PropertyType,
		Location:     input.Location,
		Price:        input.Price,
		Photo:        input.Photo,
	})
}

// Delete removes a property and its entry in the owner's property list
// as one atomic unit. Returns domain.ErrNotFound when the id is unknown.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	return s.properties.Delete(ctx, id)
}
