package postgres

import (
	"context"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const fanOutBatchSize = 500

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

// FanOut creates one notification for every distinct user holding an rsvp for the event
// and returns how many were created. Either all rows are written or none.
func (s *NotificationStorage) FanOut(ctx context.Context, eventID string, notificationType entity.NotificationType, title, message string) (int, error) {
	var created int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userIDs []string
		if err := tx.Model(&entity.Rsvp{}).Where("event_id = ?", eventID).Distinct().Pluck("user_id", &userIDs).Error; err != nil {
			return err
		}
		if len(userIDs) == 0 {
			return nil
		}

		notifications := make([]entity.Notification, 0, len(userIDs))
		for _, userID := range userIDs {
			id := eventID
			notifications = append(notifications, entity.Notification{
				UserID:  userID,
				EventID: &id,
				Type:    notificationType,
				Title:   title,
				Message: message,
			})
		}
		if err := tx.Omit(clause.Associations).CreateInBatches(&notifications, fanOutBatchSize).Error; err != nil {
			return err
		}
		created = len(notifications)
		return nil
	})
	if err != nil {
		return 0, translate(err)
	}
	return created, nil
}

// ListByUser returns the latest notifications of a user, newest first.
func (s *NotificationStorage) ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	tx := s.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&notifications).Error
	return notifications, translate(err)
}

func (s *NotificationStorage) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, translate(err)
}

// MarkRead flags a single notification of the user as read.
func (s *NotificationStorage) MarkRead(ctx context.Context, userID, id string) error {
	res := s.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return errorz.ErrNotFound
	}
	return nil
}

func (s *NotificationStorage) MarkAllRead(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	return translate(err)
}

// ListUndelivered returns notifications not yet pushed to any channel, oldest first.
func (s *NotificationStorage) ListUndelivered(ctx context.Context, limit int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Where("delivered_at IS NULL").
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, translate(err)
}

func (s *NotificationStorage) MarkDelivered(ctx context.Context, id string, channels []string, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&entity.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delivered_at": at.UTC(),
			"channels":     entity.StringArray(channels),
		}).Error
	return translate(err)
}
