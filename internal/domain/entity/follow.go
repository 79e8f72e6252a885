package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a student following an organizer. At most one row exists per (follower_id, organizer_id).
type Follow struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time
	FollowerID  string `gorm:"not null;type:uuid;uniqueIndex:idx_follows_pair;index"`
	OrganizerID string `gorm:"not null;type:uuid;uniqueIndex:idx_follows_pair"`

	Organizer OrganizerProfile `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE"`
}

func (f *Follow) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
