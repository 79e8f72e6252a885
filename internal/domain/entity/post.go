package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventPost is an update message attached to an event. Posts are never edited.
type EventPost struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time
	EventID   string `gorm:"not null;type:uuid;index"`
	Content   string `gorm:"not null"`

	Event Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

func (p *EventPost) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
