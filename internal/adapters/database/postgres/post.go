package postgres

import (
	"context"

	"github.com/Badsnus/cu-events/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostStorage struct {
	db *gorm.DB
}

func NewPostStorage(db *gorm.DB) *PostStorage {
	return &PostStorage{
		db: db,
	}
}

func (s *PostStorage) Create(ctx context.Context, post *entity.EventPost) (*entity.EventPost, error) {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
	return post, translate(err)
}

func (s *PostStorage) ListByEvent(ctx context.Context, eventID string) ([]entity.EventPost, error) {
	var posts []entity.EventPost
	err := s.db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at DESC").Find(&posts).Error
	return posts, translate(err)
}
