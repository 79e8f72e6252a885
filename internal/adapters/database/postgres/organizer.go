package postgres

import (
	"context"
	"fmt"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"gorm.io/gorm"
)

type OrganizerStorage struct {
	db *gorm.DB
}

func NewOrganizerStorage(db *gorm.DB) *OrganizerStorage {
	return &OrganizerStorage{
		db: db,
	}
}

func (s *OrganizerStorage) Create(ctx context.Context, organizer *entity.OrganizerProfile) (*entity.OrganizerProfile, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var userExists int64
		if err := tx.Model(&entity.Profile{}).Where("id = ?", organizer.UserID).Count(&userExists).Error; err != nil {
			return err
		}
		if userExists == 0 {
			return fmt.Errorf("profile with id %s: %w", organizer.UserID, errorz.ErrNotFound)
		}

		var organizerExists int64
		if err := tx.Model(&entity.OrganizerProfile{}).Where("user_id = ?", organizer.UserID).Count(&organizerExists).Error; err != nil {
			return err
		}
		if organizerExists != 0 {
			return fmt.Errorf("organizer profile for user %s already exists: %w", organizer.UserID, errorz.ErrConflict)
		}

		return tx.Create(organizer).Error
	})

	return organizer, translate(err)
}

func (s *OrganizerStorage) Get(ctx context.Context, id string) (*entity.OrganizerProfile, error) {
	var organizer entity.OrganizerProfile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&organizer).Error
	if err != nil {
		return nil, translate(err)
	}
	return &organizer, nil
}

func (s *OrganizerStorage) GetByUserID(ctx context.Context, userID string) (*entity.OrganizerProfile, error) {
	var organizer entity.OrganizerProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&organizer).Error
	if err != nil {
		return nil, translate(err)
	}
	return &organizer, nil
}

// List returns every organizer profile ordered by name.
func (s *OrganizerStorage) List(ctx context.Context) ([]entity.OrganizerProfile, error) {
	var organizers []entity.OrganizerProfile
	err := s.db.WithContext(ctx).Order("name ASC").Find(&organizers).Error
	return organizers, translate(err)
}

// UpdateOwned updates the organizer profile only when it belongs to userID.
func (s *OrganizerStorage) UpdateOwned(ctx context.Context, userID string, organizer *entity.OrganizerProfile) (*entity.OrganizerProfile, error) {
	res := s.db.WithContext(ctx).Model(&entity.OrganizerProfile{}).
		Where("id = ? AND user_id = ?", organizer.ID, userID).
		Updates(map[string]interface{}{
			"name":          organizer.Name,
			"description":   organizer.Description,
			"contact_email": organizer.ContactEmail,
			"contact_phone": organizer.ContactPhone,
			"logo_url":      organizer.LogoURL,
		})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.Get(ctx, organizer.ID); err != nil {
			return nil, err
		}
		return nil, errorz.ErrForbidden
	}
	return s.Get(ctx, organizer.ID)
}
