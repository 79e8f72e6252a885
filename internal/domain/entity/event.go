package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventType string

const (
	EventTypeAcademic EventType = "academic"
	EventTypeSocial   EventType = "social"
	EventTypeSports   EventType = "sports"
	EventTypeCultural EventType = "cultural"
	EventTypeWorkshop EventType = "workshop"
	EventTypeCareer   EventType = "career"
	EventTypeOther    EventType = "other"
)

var EventTypes = []EventType{
	EventTypeAcademic,
	EventTypeSocial,
	EventTypeSports,
	EventTypeCultural,
	EventTypeWorkshop,
	EventTypeCareer,
	EventTypeOther,
}

func (t EventType) Valid() bool {
	for _, et := range EventTypes {
		if t == et {
			return true
		}
	}
	return false
}

type Event struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	OrganizerID string           `gorm:"not null;type:uuid;index"`
	Organizer   OrganizerProfile `gorm:"constraint:OnDelete:CASCADE"`
	Title       string           `gorm:"not null"`
	Description string           `gorm:"not null"`
	Venue       string           `gorm:"not null"`
	EventDate   time.Time        `gorm:"not null;index"`
	EventType   EventType        `gorm:"not null;index"`
	PosterURL   string
	IsCancelled bool `gorm:"not null;default:false"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// IsPast reports whether the event date is strictly before now.
// Past events are hidden from the default listing.
func (e *Event) IsPast(now time.Time) bool {
	return e.EventDate.Before(now)
}

// Link generates a public link to the event page.
//
// The link is in the format <baseURL>/event/<eventID>
func (e *Event) Link(baseURL string) string {
	return fmt.Sprintf("%s/event/%s", baseURL, e.ID)
}
