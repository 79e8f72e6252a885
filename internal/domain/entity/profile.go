package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	Student   Role = "student"
	Organizer Role = "organizer"
)

func (r Role) Valid() bool {
	return r == Student || r == Organizer
}

// Profile is an account of the application. A profile holds exactly one role.
type Profile struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Email              string `gorm:"not null;uniqueIndex"`
	PasswordHash       string `gorm:"not null" json:"-"`
	FullName           string
	Role               Role `gorm:"not null;default:student"`
	AvatarURL          string
	TelegramChatID     int64
	EmailNotifications bool `gorm:"not null;default:false"`
}

func (p *Profile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
