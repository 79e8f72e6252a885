package postgres

import (
	"context"

	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RsvpStorage struct {
	db *gorm.DB
}

func NewRsvpStorage(db *gorm.DB) *RsvpStorage {
	return &RsvpStorage{
		db: db,
	}
}

func (s *RsvpStorage) Get(ctx context.Context, eventID, userID string) (*entity.Rsvp, error) {
	var rsvp entity.Rsvp
	err := s.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rsvp, nil
}

// Upsert writes the rsvp, replacing the status of an existing (user, event) row in place.
func (s *RsvpStorage) Upsert(ctx context.Context, rsvp *entity.Rsvp) (*entity.Rsvp, error) {
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(rsvp).Error
	if err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, rsvp.EventID, rsvp.UserID)
}

func (s *RsvpStorage) Delete(ctx context.Context, eventID, userID string) error {
	err := s.db.WithContext(ctx).Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&entity.Rsvp{}).Error
	return translate(err)
}

// ListByEvent returns the rsvps of an event with their profiles, newest first.
func (s *RsvpStorage) ListByEvent(ctx context.Context, eventID string) ([]entity.Rsvp, error) {
	var rsvps []entity.Rsvp
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&rsvps).Error
	return rsvps, translate(err)
}

func (s *RsvpStorage) EventIDsByUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&entity.Rsvp{}).Where("user_id = ?", userID).Pluck("event_id", &ids).Error
	return ids, translate(err)
}

// EventsByUser returns the events a user holds an rsvp for, soonest first.
func (s *RsvpStorage) EventsByUser(ctx context.Context, userID string) ([]entity.Event, error) {
	var events []entity.Event
	err := s.db.WithContext(ctx).
		Preload("Organizer").
		Joins("JOIN rsvps ON rsvps.event_id = events.id").
		Where("rsvps.user_id = ?", userID).
		Order("events.event_date ASC").
		Find(&events).Error
	return events, translate(err)
}

// Count returns the per-status rsvp totals of an event. An event without rsvps counts as zero.
func (s *RsvpStorage) Count(ctx context.Context, eventID string) (dto.RsvpCount, error) {
	var count dto.RsvpCount
	err := s.db.WithContext(ctx).Model(&entity.Rsvp{}).
		Select(
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS interested_count, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS going_count",
			entity.RsvpInterested, entity.RsvpGoing,
		).
		Where("event_id = ?", eventID).
		Scan(&count).Error
	return count, translate(err)
}
