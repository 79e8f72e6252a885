package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RsvpStatus string

const (
	RsvpInterested RsvpStatus = "interested"
	RsvpGoing      RsvpStatus = "going"
)

func (s RsvpStatus) Valid() bool {
	return s == RsvpInterested || s == RsvpGoing
}

// Rsvp is the relation between one user and one event.
// At most one row exists per (user_id, event_id).
type Rsvp struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string     `gorm:"not null;type:uuid;uniqueIndex:idx_rsvps_user_event"`
	EventID   string     `gorm:"not null;type:uuid;uniqueIndex:idx_rsvps_user_event;index"`
	Status    RsvpStatus `gorm:"not null"`

	Profile Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Event   Event   `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

func (r *Rsvp) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
