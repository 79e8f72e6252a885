package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationEventUpdated   NotificationType = "event_updated"
	NotificationEventCancelled NotificationType = "event_cancelled"
	NotificationEventDeleted   NotificationType = "event_deleted"
	NotificationEventPost      NotificationType = "event_post"
)

// Notification is created only by the rsvp fan-out; clients may only flip IsRead.
type Notification struct {
	ID          string           `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time        `gorm:"index"`
	UserID      string           `gorm:"not null;type:uuid;index"`
	EventID     *string          `gorm:"type:uuid;index"`
	Type        NotificationType `gorm:"not null"`
	Title       string           `gorm:"not null"`
	Message     string           `gorm:"not null"`
	IsRead      bool             `gorm:"not null;default:false"`
	DeliveredAt *time.Time
	Channels    StringArray

	User  Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Event *Event  `gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
