package dto

import (
	"time"

	"github.com/Badsnus/cu-events/internal/domain/entity"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   *string   `json:"event_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	Event     *Event    `json:"event,omitempty"`
}

func NewNotificationFromEntity(n entity.Notification) Notification {
	notification := Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		EventID:   n.EventID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.Event != nil && n.Event.ID != "" {
		event := NewEventFromEntity(*n.Event)
		notification.Event = &event
	}
	return notification
}

func NewNotificationsFromEntities(notifications []entity.Notification) []Notification {
	result := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, NewNotificationFromEntity(n))
	}
	return result
}

type PostInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type EventPost struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewPostsFromEntities(posts []entity.EventPost) []EventPost {
	result := make([]EventPost, 0, len(posts))
	for _, p := range posts {
		result = append(result, EventPost{
			ID:        p.ID,
			EventID:   p.EventID,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
		})
	}
	return result
}
