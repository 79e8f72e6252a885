package service

import (
	"context"
	"errors"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
)

type RsvpStorage interface {
	Get(ctx context.Context, eventID, userID string) (*entity.Rsvp, error)
	Upsert(ctx context.Context, rsvp *entity.Rsvp) (*entity.Rsvp, error)
	Delete(ctx context.Context, eventID, userID string) error
	ListByEvent(ctx context.Context, eventID string) ([]entity.Rsvp, error)
	EventIDsByUser(ctx context.Context, userID string) ([]string, error)
	EventsByUser(ctx context.Context, userID string) ([]entity.Event, error)
	Count(ctx context.Context, eventID string) (dto.RsvpCount, error)
}

type rsvpEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

type RsvpService struct {
	storage RsvpStorage
	events  rsvpEventStorage
	cache   *QueryCache
}

func NewRsvpService(storage RsvpStorage, events rsvpEventStorage, cache *QueryCache) *RsvpService {
	return &RsvpService{
		storage: storage,
		events:  events,
		cache:   cache,
	}
}

// Status returns the caller's rsvp state for the event. Anonymous callers have none.
func (s *RsvpService) Status(ctx context.Context, session *dto.Session, eventID string) (dto.RsvpState, error) {
	if !session.IsAuthenticated() {
		return dto.RsvpNone, nil
	}
	return Fetch(ctx, s.cache, cacheKey(keyUserRsvp, eventID, session.UserID()), func(ctx context.Context) (dto.RsvpState, error) {
		return s.current(ctx, eventID, session.UserID())
	})
}

// Toggle moves the caller's rsvp towards status: none or the other status becomes status,
// the same status is withdrawn.
func (s *RsvpService) Toggle(ctx context.Context, session *dto.Session, eventID string, status entity.RsvpStatus) (dto.RsvpResult, error) {
	if !session.IsAuthenticated() {
		return dto.RsvpResult{}, errorz.ErrUnauthenticated
	}

	current, err := s.current(ctx, eventID, session.UserID())
	if err != nil {
		return dto.RsvpResult{}, err
	}
	if current == dto.RsvpState(status) {
		return s.Remove(ctx, session, eventID)
	}
	return s.Set(ctx, session, eventID, status)
}

// Set puts the caller's rsvp into status regardless of the current state.
func (s *RsvpService) Set(ctx context.Context, session *dto.Session, eventID string, status entity.RsvpStatus) (dto.RsvpResult, error) {
	if !session.IsAuthenticated() {
		return dto.RsvpResult{}, errorz.ErrUnauthenticated
	}
	if !status.Valid() {
		return dto.RsvpResult{}, errorz.NewValidationError(map[string]string{"status": "Must be one of: interested going"})
	}

	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return dto.RsvpResult{}, err
	}
	if event.IsCancelled {
		return dto.RsvpResult{}, errorz.ErrEventCancelled
	}

	rsvp, err := s.storage.Upsert(ctx, &entity.Rsvp{
		UserID:  session.UserID(),
		EventID: eventID,
		Status:  status,
	})
	if err != nil {
		return dto.RsvpResult{}, err
	}
	s.invalidate(ctx, eventID, session.UserID())

	state := dto.RsvpState(rsvp.Status)
	return dto.RsvpResult{State: state, Message: rsvpMessage(state)}, nil
}

// Remove withdraws the caller's rsvp. Withdrawing is allowed on cancelled events.
func (s *RsvpService) Remove(ctx context.Context, session *dto.Session, eventID string) (dto.RsvpResult, error) {
	if !session.IsAuthenticated() {
		return dto.RsvpResult{}, errorz.ErrUnauthenticated
	}
	if err := s.storage.Delete(ctx, eventID, session.UserID()); err != nil {
		return dto.RsvpResult{}, err
	}
	s.invalidate(ctx, eventID, session.UserID())

	return dto.RsvpResult{State: dto.RsvpNone, Message: rsvpMessage(dto.RsvpNone)}, nil
}

func (s *RsvpService) Count(ctx context.Context, eventID string) (dto.RsvpCount, error) {
	return Fetch(ctx, s.cache, cacheKey(keyEventRsvpCount, eventID), func(ctx context.Context) (dto.RsvpCount, error) {
		return s.storage.Count(ctx, eventID)
	})
}

// ListByEvent returns the attendees of an event to its owning organizer.
func (s *RsvpService) ListByEvent(ctx context.Context, session *dto.Session, eventID string) ([]entity.Rsvp, error) {
	if _, err := s.ownedEvent(ctx, session, eventID); err != nil {
		return nil, err
	}
	return Fetch(ctx, s.cache, cacheKey(keyEventRsvps, eventID), func(ctx context.Context) ([]entity.Rsvp, error) {
		return s.storage.ListByEvent(ctx, eventID)
	})
}

func (s *RsvpService) EventIDsByUser(ctx context.Context, userID string) ([]string, error) {
	return Fetch(ctx, s.cache, cacheKey(keyUserRsvpEventIDs, userID), func(ctx context.Context) ([]string, error) {
		return s.storage.EventIDsByUser(ctx, userID)
	})
}

func (s *RsvpService) EventsByUser(ctx context.Context, session *dto.Session) ([]entity.Event, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}
	return s.storage.EventsByUser(ctx, session.UserID())
}

func (s *RsvpService) current(ctx context.Context, eventID, userID string) (dto.RsvpState, error) {
	rsvp, err := s.storage.Get(ctx, eventID, userID)
	if errors.Is(err, errorz.ErrNotFound) {
		return dto.RsvpNone, nil
	}
	if err != nil {
		return "", err
	}
	return dto.RsvpState(rsvp.Status), nil
}

func (s *RsvpService) ownedEvent(ctx context.Context, session *dto.Session, eventID string) (*entity.Event, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if session.OrganizerID() == "" || event.OrganizerID != session.OrganizerID() {
		return nil, errorz.ErrForbidden
	}
	return event, nil
}

func (s *RsvpService) invalidate(ctx context.Context, eventID, userID string) {
	s.cache.Invalidate(ctx,
		cacheKey(keyUserRsvp, eventID),
		cacheKey(keyEventRsvpCount, eventID),
		cacheKey(keyEventRsvps, eventID),
		cacheKey(keyUserRsvpEventIDs, userID),
	)
}

func rsvpMessage(state dto.RsvpState) string {
	switch state {
	case dto.RsvpGoing:
		return "You're now going to this event!"
	case dto.RsvpInterested:
		return "You're now interested in this event!"
	default:
		return "RSVP removed"
	}
}
