package handler

import (
	"time"

	"github.com/yariga/property-api/internal/domain"
)

// UserDTO is the JSON representation of a property owner.
type UserDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Avatar        string   `json:"avatar"`
	AllProperties []string `json:"allProperties"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Avatar:        u.Avatar,
		AllProperties: u.AllProperties,
	}
}

// PropertyDTO is the JSON representation of a listing. Creator is the
// owning user's id on list reads and the full owner record on detail
// reads.
type PropertyDTO struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PropertyType string  `json:"propertyType"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	Photo        string  `json:"photo"`
	Creator      any     `json:"creator"`
	CreatedAt    string  `json:"createdAt"`
}

func toPropertyDTO(p *domain.Property) PropertyDTO {
	dto := PropertyDTO{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		Location:     p.Location,
		Price:        p.Price,
		Photo:        p.Photo,
		Creator:      p.CreatorID,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.Creator != nil {
		dto.Creator = toUserDTO(p.Creator)
	}
	return dto
}

func toPropertyDTOs(properties []domain.Property) []PropertyDTO {
	dtos := make([]PropertyDTO, len(properties))
	for i := range properties {
		dtos[i] = toPropertyDTO(&properties[i])
	}
	return dtos
}
