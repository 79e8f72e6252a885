package postgres

import (
	"context"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventStorage struct {
	db *gorm.DB
}

func NewEventStorage(db *gorm.DB) *EventStorage {
	return &EventStorage{
		db: db,
	}
}

// Create is a function that creates a new event in the database.
func (s *EventStorage) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
	if err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, event.ID)
}

// Get is a function that gets an event with its organizer from the database by id.
func (s *EventStorage) Get(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	err := s.db.WithContext(ctx).Preload("Organizer").Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// List returns events matching the pushed-down filters, soonest first.
// Events dated before now are left out unless the query asks for archived ones.
func (s *EventStorage) List(ctx context.Context, query dto.EventQuery, now time.Time) ([]entity.Event, error) {
	tx := s.db.WithContext(ctx).Preload("Organizer")
	if query.EventType != "" {
		tx = tx.Where("event_type = ?", query.EventType)
	}
	if query.OrganizerID != "" {
		tx = tx.Where("organizer_id = ?", query.OrganizerID)
	}
	if !query.ShowArchived {
		tx = tx.Where("event_date >= ?", now.UTC())
	}

	var events []entity.Event
	err := tx.Order("event_date ASC").Find(&events).Error
	return events, translate(err)
}

// ListByOrganizer returns all events of an organizer, latest first.
func (s *EventStorage) ListByOrganizer(ctx context.Context, organizerID string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Preload("Organizer").
		Where("organizer_id = ?", organizerID).
		Order("event_date DESC").
		Find(&events).Error
	return events, translate(err)
}

// UpdateOwned overwrites the editable fields of an event owned by organizerID.
func (s *EventStorage) UpdateOwned(ctx context.Context, organizerID string, event *entity.Event) (*entity.Event, error) {
	res := s.db.WithContext(ctx).Model(&entity.Event{}).
		Where("id = ? AND organizer_id = ?", event.ID, organizerID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"venue":       event.Venue,
			"event_date":  event.EventDate.UTC(),
			"event_type":  event.EventType,
			"poster_url":  event.PosterURL,
		})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ownershipError(s.db.WithContext(ctx), event.ID)
	}
	return s.Get(ctx, event.ID)
}

func (s *EventStorage) CancelOwned(ctx context.Context, organizerID, id string) (*entity.Event, error) {
	res := s.db.WithContext(ctx).Model(&entity.Event{}).
		Where("id = ? AND organizer_id = ?", id, organizerID).
		Update("is_cancelled", true)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ownershipError(s.db.WithContext(ctx), id)
	}
	return s.Get(ctx, id)
}

// DeleteOwned removes an event together with its rsvps and posts.
// Notifications about the event are kept and detached from it.
func (s *EventStorage) DeleteOwned(ctx context.Context, organizerID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&entity.Event{}).Where("id = ? AND organizer_id = ?", id, organizerID).Count(&owned).Error; err != nil {
			return err
		}
		if owned == 0 {
			return ownershipError(tx, id)
		}

		if err := tx.Where("event_id = ?", id).Delete(&entity.Rsvp{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&entity.EventPost{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&entity.Notification{}).Where("event_id = ?", id).Update("event_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND organizer_id = ?", id, organizerID).Delete(&entity.Event{}).Error
	})
}

// ownershipError tells a missing event apart from one owned by someone else.
func ownershipError(db *gorm.DB, id string) error {
	var count int64
	if err := db.Model(&entity.Event{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errorz.ErrNotFound
	}
	return errorz.ErrForbidden
}
