package postgres

import (
	"context"
	"strings"

	"github.com/Badsnus/cu-events/internal/domain/entity"
	"gorm.io/gorm"
)

type ProfileStorage struct {
	db *gorm.DB
}

func NewProfileStorage(db *gorm.DB) *ProfileStorage {
	return &ProfileStorage{
		db: db,
	}
}

// Create is a function that creates a new profile in the database.
func (s *ProfileStorage) Create(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	profile.Email = strings.ToLower(profile.Email)
	err := s.db.WithContext(ctx).Create(profile).Error
	return profile, translate(err)
}

// Get is a function that gets a profile from the database by id.
func (s *ProfileStorage) Get(ctx context.Context, id string) (*entity.Profile, error) {
	var profile entity.Profile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *ProfileStorage) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var profile entity.Profile
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// Update is a function that updates a profile in the database.
func (s *ProfileStorage) Update(ctx context.Context, profile *entity.Profile) (*entity.Profile, error) {
	err := s.db.WithContext(ctx).Save(profile).Error
	return profile, translate(err)
}
