package postgres

import (
	"context"

	"github.com/Badsnus/cu-events/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowStorage struct {
	db *gorm.DB
}

func NewFollowStorage(db *gorm.DB) *FollowStorage {
	return &FollowStorage{
		db: db,
	}
}

func (s *FollowStorage) Exists(ctx context.Context, followerID, organizerID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Follow{}).
		Where("follower_id = ? AND organizer_id = ?", followerID, organizerID).
		Count(&count).Error
	return count > 0, translate(err)
}

// Ensure creates the follow unless it already exists.
func (s *FollowStorage) Ensure(ctx context.Context, followerID, organizerID string) error {
	follow := &entity.Follow{
		FollowerID:  followerID,
		OrganizerID: organizerID,
	}
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow).Error
	return translate(err)
}

func (s *FollowStorage) Remove(ctx context.Context, followerID, organizerID string) error {
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND organizer_id = ?", followerID, organizerID).
		Delete(&entity.Follow{}).Error
	return translate(err)
}

func (s *FollowStorage) CountByOrganizer(ctx context.Context, organizerID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.Follow{}).Where("organizer_id = ?", organizerID).Count(&count).Error
	return count, translate(err)
}

func (s *FollowStorage) OrganizerIDsByFollower(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&entity.Follow{}).Where("follower_id = ?", followerID).Pluck("organizer_id", &ids).Error
	return ids, translate(err)
}
