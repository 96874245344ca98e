package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/cvwatch/sunlight/internal/profile"
)

type profileResponse struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Type        profile.Type `json:"type"`
	City        string       `json:"city,omitempty"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"image_url,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

func toResponse(p *profile.Profile) profileResponse {
	return profileResponse{
		ID:          p.ID,
		Name:        p.Name,
		Type:        p.Type,
		City:        p.City,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toResponseList(profiles []profile.Profile) []profileResponse {
	resp := make([]profileResponse, len(profiles))
	for i := range profiles {
		resp[i] = toResponse(&profiles[i])
	}

	return resp
}
