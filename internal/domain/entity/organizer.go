package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizerProfile is the public face of an organizer account, owned 1:1 by a Profile.
type OrganizerProfile struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       string `gorm:"not null;type:uuid;uniqueIndex"`
	Name         string `gorm:"not null"`
	Description  string
	ContactEmail string
	ContactPhone string
	LogoURL      string
}

func (o *OrganizerProfile) BeforeCreate(_ *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
