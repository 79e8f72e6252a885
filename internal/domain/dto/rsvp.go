package dto

import (
	"time"

	"github.com/Badsnus/cu-events/internal/domain/entity"
)

// RsvpState is the state of a (user, event) pair. The empty state means no rsvp exists.
type RsvpState string

const (
	RsvpNone       RsvpState = "none"
	RsvpInterested RsvpState = RsvpState(entity.RsvpInterested)
	RsvpGoing      RsvpState = RsvpState(entity.RsvpGoing)
)

type RsvpCount struct {
	InterestedCount int64 `json:"interested_count"`
	GoingCount      int64 `json:"going_count"`
}

type RsvpInput struct {
	Status string `json:"status" validate:"required,oneof=interested going"`
}

type RsvpResult struct {
	State   RsvpState
	Message string
}

type Rsvp struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Profile   *Profile  `json:"profile,omitempty"`
}

func NewRsvpFromEntity(r entity.Rsvp) Rsvp {
	rsvp := Rsvp{
		ID:        r.ID,
		UserID:    r.UserID,
		EventID:   r.EventID,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Profile.ID != "" {
		profile := NewProfileFromEntity(r.Profile)
		rsvp.Profile = &profile
	}
	return rsvp
}

func NewRsvpsFromEntities(rsvps []entity.Rsvp) []Rsvp {
	result := make([]Rsvp, 0, len(rsvps))
	for _, r := range rsvps {
		result = append(result, NewRsvpFromEntity(r))
	}
	return result
}
