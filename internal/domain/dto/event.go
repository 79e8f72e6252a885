package dto

import (
	"time"

	"github.com/Badsnus/cu-events/internal/domain/entity"
)

// EventQuery holds the filters pushed down to the store.
type EventQuery struct {
	EventType    entity.EventType
	OrganizerID  string
	ShowArchived bool
}

// EventFilter holds the filters applied in memory over an already fetched listing.
type EventFilter struct {
	Search       string
	OnlyFollowed bool
	OnlyRsvpd    bool
}

type EventInput struct {
	Title       string    `json:"title" validate:"required,min=3,max=200"`
	Description string    `json:"description" validate:"required,min=10,max=5000"`
	Venue       string    `json:"venue" validate:"required,min=3,max=200"`
	EventDate   time.Time `json:"event_date" validate:"required"`
	EventType   string    `json:"event_type" validate:"required,event_type"`
	PosterURL   string    `json:"poster_url" validate:"omitempty,url"`
}

func (in EventInput) Apply(event *entity.Event) {
	event.Title = in.Title
	event.Description = in.Description
	event.Venue = in.Venue
	event.EventDate = in.EventDate.UTC()
	event.EventType = entity.EventType(in.EventType)
	event.PosterURL = in.PosterURL
}

type Event struct {
	ID          string     `json:"id"`
	OrganizerID string     `json:"organizer_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	EventDate   time.Time  `json:"event_date"`
	EventType   string     `json:"event_type"`
	PosterURL   *string    `json:"poster_url"`
	IsCancelled bool       `json:"is_cancelled"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Organizer   *Organizer `json:"organizer,omitempty"`
}

func NewEventFromEntity(event entity.Event) Event {
	e := Event{
		ID:          event.ID,
		OrganizerID: event.OrganizerID,
		Title:       event.Title,
		Description: event.Description,
		Venue:       event.Venue,
		EventDate:   event.EventDate,
		EventType:   string(event.EventType),
		PosterURL:   nullable(event.PosterURL),
		IsCancelled: event.IsCancelled,
		CreatedAt:   event.CreatedAt,
		UpdatedAt:   event.UpdatedAt,
	}
	if event.Organizer.ID != "" {
		organizer := NewOrganizerFromEntity(event.Organizer)
		e.Organizer = &organizer
	}
	return e
}

func NewEventsFromEntities(events []entity.Event) []Event {
	result := make([]Event, 0, len(events))
	for _, event := range events {
		result = append(result, NewEventFromEntity(event))
	}
	return result
}

// LifecycleResult is returned by update, cancel, delete and post operations.
// Notified is false when the rsvp fan-out failed after the primary write succeeded.
type LifecycleResult struct {
	Notified bool
	Message  string
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
