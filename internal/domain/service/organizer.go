package service

import (
	"context"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/pkg/logger/types"
)

type OrganizerStorage interface {
	Create(ctx context.Context, organizer *entity.OrganizerProfile) (*entity.OrganizerProfile, error)
	Get(ctx context.Context, id string) (*entity.OrganizerProfile, error)
	GetByUserID(ctx context.Context, userID string) (*entity.OrganizerProfile, error)
	List(ctx context.Context) ([]entity.OrganizerProfile, error)
	UpdateOwned(ctx context.Context, userID string, organizer *entity.OrganizerProfile) (*entity.OrganizerProfile, error)
}

type OrganizerService struct {
	logger *types.Logger

	storage OrganizerStorage
	cache   *QueryCache
}

func NewOrganizerService(logger *types.Logger, storage OrganizerStorage, cache *QueryCache) *OrganizerService {
	return &OrganizerService{
		logger:  logger,
		storage: storage,
		cache:   cache,
	}
}

func (s *OrganizerService) List(ctx context.Context) ([]entity.OrganizerProfile, error) {
	return Fetch(ctx, s.cache, keyOrganizers, func(ctx context.Context) ([]entity.OrganizerProfile, error) {
		return s.storage.List(ctx)
	})
}

func (s *OrganizerService) Get(ctx context.Context, id string) (*entity.OrganizerProfile, error) {
	return Fetch(ctx, s.cache, cacheKey(keyOrganizer, id), func(ctx context.Context) (*entity.OrganizerProfile, error) {
		return s.storage.Get(ctx, id)
	})
}

// Mine returns the caller's organizer profile or ErrNoOrganizerProfile.
func (s *OrganizerService) Mine(ctx context.Context, session *dto.Session) (*entity.OrganizerProfile, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}
	if !session.IsOrganizer() {
		return nil, errorz.ErrForbidden
	}
	if session.OrganizerProfile == nil {
		return nil, errorz.ErrNoOrganizerProfile
	}
	return session.OrganizerProfile, nil
}

// Create sets up the organizer profile of an organizer account. Each account has at most one.
func (s *OrganizerService) Create(ctx context.Context, session *dto.Session, in dto.OrganizerInput) (*entity.OrganizerProfile, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}
	if !session.IsOrganizer() {
		return nil, errorz.ErrForbidden
	}
	if session.OrganizerProfile != nil {
		return nil, errorz.ErrConflict
	}

	organizer := &entity.OrganizerProfile{UserID: session.UserID()}
	in.Apply(organizer)

	organizer, err := s.storage.Create(ctx, organizer)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("organizer profile created (organizer_id=%s, user_id=%s)", organizer.ID, organizer.UserID)

	s.cache.Invalidate(ctx, keyOrganizers)
	return organizer, nil
}

func (s *OrganizerService) Update(ctx context.Context, session *dto.Session, id string, in dto.OrganizerInput) (*entity.OrganizerProfile, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}

	organizer := &entity.OrganizerProfile{ID: id}
	in.Apply(organizer)

	organizer, err := s.storage.UpdateOwned(ctx, session.UserID(), organizer)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx,
		keyOrganizers,
		cacheKey(keyOrganizer, id),
		keyEvents,
		keyEvent+":",
		cacheKey(keyOrganizerEvents, id),
	)
	return organizer, nil
}
