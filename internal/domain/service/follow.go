package service

import (
	"context"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
)

type FollowStorage interface {
	Exists(ctx context.Context, followerID, organizerID string) (bool, error)
	Ensure(ctx context.Context, followerID, organizerID string) error
	Remove(ctx context.Context, followerID, organizerID string) error
	CountByOrganizer(ctx context.Context, organizerID string) (int64, error)
	OrganizerIDsByFollower(ctx context.Context, followerID string) ([]string, error)
}

type followOrganizerStorage interface {
	Get(ctx context.Context, id string) (*entity.OrganizerProfile, error)
}

type FollowService struct {
	storage    FollowStorage
	organizers followOrganizerStorage
	cache      *QueryCache
}

func NewFollowService(storage FollowStorage, organizers followOrganizerStorage, cache *QueryCache) *FollowService {
	return &FollowService{
		storage:    storage,
		organizers: organizers,
		cache:      cache,
	}
}

func (s *FollowService) IsFollowing(ctx context.Context, session *dto.Session, organizerID string) (bool, error) {
	if !session.IsAuthenticated() {
		return false, nil
	}
	return Fetch(ctx, s.cache, cacheKey(keyFollowStatus, organizerID, session.UserID()), func(ctx context.Context) (bool, error) {
		return s.storage.Exists(ctx, session.UserID(), organizerID)
	})
}

func (s *FollowService) FollowerCount(ctx context.Context, organizerID string) (int64, error) {
	return Fetch(ctx, s.cache, cacheKey(keyFollowerCount, organizerID), func(ctx context.Context) (int64, error) {
		return s.storage.CountByOrganizer(ctx, organizerID)
	})
}

func (s *FollowService) FollowedOrganizerIDs(ctx context.Context, userID string) ([]string, error) {
	return Fetch(ctx, s.cache, cacheKey(keyFollowedOrganizerIDs, userID), func(ctx context.Context) ([]string, error) {
		return s.storage.OrganizerIDsByFollower(ctx, userID)
	})
}

// Toggle does the opposite of isFollowing, the state the caller last saw.
// The returned state is read back from the store, so a stale isFollowing
// can repeat an action but never duplicate a follow.
func (s *FollowService) Toggle(ctx context.Context, session *dto.Session, organizerID string, isFollowing bool) (dto.FollowResult, error) {
	if isFollowing {
		return s.Unfollow(ctx, session, organizerID)
	}
	return s.Follow(ctx, session, organizerID)
}

func (s *FollowService) Follow(ctx context.Context, session *dto.Session, organizerID string) (dto.FollowResult, error) {
	if err := s.guard(ctx, session, organizerID); err != nil {
		return dto.FollowResult{}, err
	}
	if err := s.storage.Ensure(ctx, session.UserID(), organizerID); err != nil {
		return dto.FollowResult{}, err
	}
	return s.confirm(ctx, session, organizerID)
}

func (s *FollowService) Unfollow(ctx context.Context, session *dto.Session, organizerID string) (dto.FollowResult, error) {
	if err := s.guard(ctx, session, organizerID); err != nil {
		return dto.FollowResult{}, err
	}
	if err := s.storage.Remove(ctx, session.UserID(), organizerID); err != nil {
		return dto.FollowResult{}, err
	}
	return s.confirm(ctx, session, organizerID)
}

func (s *FollowService) guard(ctx context.Context, session *dto.Session, organizerID string) error {
	if !session.IsAuthenticated() {
		return errorz.ErrUnauthenticated
	}
	if !session.IsStudent() {
		return errorz.ErrForbidden
	}
	_, err := s.organizers.Get(ctx, organizerID)
	return err
}

func (s *FollowService) confirm(ctx context.Context, session *dto.Session, organizerID string) (dto.FollowResult, error) {
	s.cache.Invalidate(ctx,
		cacheKey(keyFollowStatus, organizerID),
		cacheKey(keyFollowerCount, organizerID),
		cacheKey(keyFollowedOrganizerIDs, session.UserID()),
	)

	following, err := s.storage.Exists(ctx, session.UserID(), organizerID)
	if err != nil {
		return dto.FollowResult{}, err
	}
	message := "Unfollowed organizer"
	if following {
		message = "Now following organizer!"
	}
	return dto.FollowResult{Following: following, Message: message}, nil
}
