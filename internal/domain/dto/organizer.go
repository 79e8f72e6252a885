package dto

import (
	"time"

	"github.com/Badsnus/cu-events/internal/domain/entity"
)

type OrganizerInput struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Description  string `json:"description" validate:"max=1000"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"max=20"`
	LogoURL      string `json:"logo_url" validate:"omitempty,url"`
}

func (in OrganizerInput) Apply(o *entity.OrganizerProfile) {
	o.Name = in.Name
	o.Description = in.Description
	o.ContactEmail = in.ContactEmail
	o.ContactPhone = in.ContactPhone
	o.LogoURL = in.LogoURL
}

type Organizer struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	LogoURL      *string   `json:"logo_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewOrganizerFromEntity(o entity.OrganizerProfile) Organizer {
	return Organizer{
		ID:           o.ID,
		UserID:       o.UserID,
		Name:         o.Name,
		Description:  nullable(o.Description),
		ContactEmail: nullable(o.ContactEmail),
		ContactPhone: nullable(o.ContactPhone),
		LogoURL:      nullable(o.LogoURL),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

func NewOrganizersFromEntities(organizers []entity.OrganizerProfile) []Organizer {
	result := make([]Organizer, 0, len(organizers))
	for _, o := range organizers {
		result = append(result, NewOrganizerFromEntity(o))
	}
	return result
}

// FollowResult is the confirmed follow state after a toggle.
type FollowResult struct {
	Following bool
	Message   string
}
