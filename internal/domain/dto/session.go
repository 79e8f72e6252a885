package dto

import (
	"time"

	"github.com/Badsnus/cu-events/internal/domain/entity"
)

// Session is the per-request view of who is calling. A nil *Session or a Session
// without User is anonymous.
type Session struct {
	User             *entity.Profile
	OrganizerProfile *entity.OrganizerProfile
	Token            string
	TokenID          string
	ExpiresAt        time.Time
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.User != nil
}

func (s *Session) UserID() string {
	if !s.IsAuthenticated() {
		return ""
	}
	return s.User.ID
}

func (s *Session) IsStudent() bool {
	return s.IsAuthenticated() && s.User.Role == entity.Student
}

func (s *Session) IsOrganizer() bool {
	return s.IsAuthenticated() && s.User.Role == entity.Organizer
}

func (s *Session) OrganizerID() string {
	if !s.IsAuthenticated() || s.OrganizerProfile == nil {
		return ""
	}
	return s.OrganizerProfile.ID
}

type SignUpInput struct {
	Email    string `json:"email" validate:"required,email,campus_email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"max=200"`
	Role     string `json:"role" validate:"required,oneof=student organizer"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileUpdate struct {
	FullName           *string `json:"full_name" validate:"omitempty,max=200"`
	AvatarURL          *string `json:"avatar_url" validate:"omitempty,url"`
	TelegramChatID     *int64  `json:"telegram_chat_id"`
	EmailNotifications *bool   `json:"email_notifications"`
}

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProfileFromEntity(p entity.Profile) Profile {
	return Profile{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  nullable(p.FullName),
		Role:      string(p.Role),
		AvatarURL: nullable(p.AvatarURL),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
