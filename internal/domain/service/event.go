package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/pkg/logger/types"
)

const postPreviewLength = 100

type EventStorage interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Get(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context, query dto.EventQuery, now time.Time) ([]entity.Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]entity.Event, error)
	UpdateOwned(ctx context.Context, organizerID string, event *entity.Event) (*entity.Event, error)
	CancelOwned(ctx context.Context, organizerID, id string) (*entity.Event, error)
	DeleteOwned(ctx context.Context, organizerID, id string) error
}

type PostStorage interface {
	Create(ctx context.Context, post *entity.EventPost) (*entity.EventPost, error)
	ListByEvent(ctx context.Context, eventID string) ([]entity.EventPost, error)
}

type eventNotifier interface {
	FanOut(ctx context.Context, eventID string, notificationType entity.NotificationType, title, message string) dto.LifecycleResult
}

type EventService struct {
	logger *types.Logger

	storage  EventStorage
	posts    PostStorage
	notifier eventNotifier
	cache    *QueryCache

	now func() time.Time
}

func NewEventService(
	logger *types.Logger,
	storage EventStorage,
	posts PostStorage,
	notifier eventNotifier,
	cache *QueryCache,
	now func() time.Time,
) *EventService {
	if now == nil {
		now = time.Now
	}
	return &EventService{
		logger:   logger,
		storage:  storage,
		posts:    posts,
		notifier: notifier,
		cache:    cache,
		now:      now,
	}
}

// List runs the primary event query. Only the pushed-down filters take part in the cache key.
func (s *EventService) List(ctx context.Context, query dto.EventQuery) ([]entity.Event, error) {
	key := cacheKey(keyEvents, string(query.EventType), query.OrganizerID, strconv.FormatBool(query.ShowArchived))
	events, err := Fetch(ctx, s.cache, key, func(ctx context.Context) ([]entity.Event, error) {
		return s.storage.List(ctx, query, s.now())
	})
	if err != nil || query.ShowArchived {
		return events, err
	}

	// a cached listing may hold events that have started since it was filled
	now := s.now()
	upcoming := events[:0]
	for _, event := range events {
		if !event.IsPast(now) {
			upcoming = append(upcoming, event)
		}
	}
	return upcoming, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return Fetch(ctx, s.cache, cacheKey(keyEvent, id), func(ctx context.Context) (*entity.Event, error) {
		return s.storage.Get(ctx, id)
	})
}

func (s *EventService) ListByOrganizer(ctx context.Context, organizerID string) ([]entity.Event, error) {
	return Fetch(ctx, s.cache, cacheKey(keyOrganizerEvents, organizerID), func(ctx context.Context) ([]entity.Event, error) {
		return s.storage.ListByOrganizer(ctx, organizerID)
	})
}

// ListMine returns the events of the caller's organizer profile.
func (s *EventService) ListMine(ctx context.Context, session *dto.Session) ([]entity.Event, error) {
	organizerID, err := requireOrganizer(session)
	if err != nil {
		return nil, err
	}
	return s.ListByOrganizer(ctx, organizerID)
}

func (s *EventService) Create(ctx context.Context, session *dto.Session, in dto.EventInput) (*entity.Event, error) {
	organizerID, err := requireOrganizer(session)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{OrganizerID: organizerID}
	in.Apply(event)

	event, err = s.storage.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("event created (event_id=%s, organizer_id=%s)", event.ID, organizerID)

	s.cache.Invalidate(ctx, keyEvents, cacheKey(keyOrganizerEvents, organizerID))
	return event, nil
}

// Update overwrites the event and notifies its rsvp holders once.
func (s *EventService) Update(ctx context.Context, session *dto.Session, id string, in dto.EventInput) (*entity.Event, dto.LifecycleResult, error) {
	organizerID, err := requireOrganizer(session)
	if err != nil {
		return nil, dto.LifecycleResult{}, err
	}

	event := &entity.Event{ID: id}
	in.Apply(event)

	event, err = s.storage.UpdateOwned(ctx, organizerID, event)
	if err != nil {
		return nil, dto.LifecycleResult{}, err
	}
	s.invalidateEvent(ctx, event)

	result := s.notifier.FanOut(ctx, event.ID, entity.NotificationEventUpdated,
		"Event Updated",
		fmt.Sprintf(`The event "%s" has been updated.`, event.Title),
	)
	result.Message = "Event updated successfully!"
	return event, result, nil
}

func (s *EventService) Cancel(ctx context.Context, session *dto.Session, id string) (*entity.Event, dto.LifecycleResult, error) {
	organizerID, err := requireOrganizer(session)
	if err != nil {
		return nil, dto.LifecycleResult{}, err
	}

	event, err := s.storage.CancelOwned(ctx, organizerID, id)
	if err != nil {
		return nil, dto.LifecycleResult{}, err
	}
	s.invalidateEvent(ctx, event)

	result := s.notifier.FanOut(ctx, event.ID, entity.NotificationEventCancelled,
		"Event Cancelled",
		fmt.Sprintf(`The event "%s" has been cancelled.`, event.Title),
	)
	result.Message = "Event cancelled. Attendees have been notified."
	return event, result, nil
}

// Delete notifies the rsvp holders first, since their rsvps go away with the event.
func (s *EventService) Delete(ctx context.Context, session *dto.Session, id string) (dto.LifecycleResult, error) {
	organizerID, err := requireOrganizer(session)
	if err != nil {
		return dto.LifecycleResult{}, err
	}

	event, err := s.storage.Get(ctx, id)
	if err != nil {
		return dto.LifecycleResult{}, err
	}
	if event.OrganizerID != organizerID {
		return dto.LifecycleResult{}, errorz.ErrForbidden
	}

	result := s.notifier.FanOut(ctx, event.ID, entity.NotificationEventDeleted,
		"Event Deleted",
		fmt.Sprintf(`The event "%s" has been deleted.`, event.Title),
	)

	if err = s.storage.DeleteOwned(ctx, organizerID, id); err != nil {
		return dto.LifecycleResult{}, err
	}
	s.logger.Infof("event deleted (event_id=%s, organizer_id=%s)", id, organizerID)

	s.invalidateEvent(ctx, event)
	s.cache.Invalidate(ctx,
		cacheKey(keyEventPosts, id),
		cacheKey(keyUserRsvp, id),
		cacheKey(keyEventRsvpCount, id),
		cacheKey(keyEventRsvps, id),
		keyUserRsvpEventIDs,
	)

	result.Message = "Event deleted successfully"
	return result, nil
}

func (s *EventService) Posts(ctx context.Context, eventID string) ([]entity.EventPost, error) {
	return Fetch(ctx, s.cache, cacheKey(keyEventPosts, eventID), func(ctx context.Context) ([]entity.EventPost, error) {
		return s.posts.ListByEvent(ctx, eventID)
	})
}

// CreatePost attaches an update to an owned event and notifies its rsvp holders.
func (s *EventService) CreatePost(ctx context.Context, session *dto.Session, eventID string, in dto.PostInput) (*entity.EventPost, dto.LifecycleResult, error) {
	organizerID, err := requireOrganizer(session)
	if err != nil {
		return nil, dto.LifecycleResult{}, err
	}

	event, err := s.storage.Get(ctx, eventID)
	if err != nil {
		return nil, dto.LifecycleResult{}, err
	}
	if event.OrganizerID != organizerID {
		return nil, dto.LifecycleResult{}, errorz.ErrForbidden
	}

	post, err := s.posts.Create(ctx, &entity.EventPost{EventID: eventID, Content: in.Content})
	if err != nil {
		return nil, dto.LifecycleResult{}, err
	}
	s.cache.Invalidate(ctx, cacheKey(keyEventPosts, eventID))

	result := s.notifier.FanOut(ctx, eventID, entity.NotificationEventPost,
		"New Event Update",
		fmt.Sprintf(`New update posted for "%s": %s`, event.Title, preview(in.Content, postPreviewLength)),
	)
	result.Message = "Update posted!"
	return post, result, nil
}

func (s *EventService) invalidateEvent(ctx context.Context, event *entity.Event) {
	s.cache.Invalidate(ctx,
		keyEvents,
		cacheKey(keyEvent, event.ID),
		cacheKey(keyOrganizerEvents, event.OrganizerID),
	)
}

// requireOrganizer returns the caller's organizer profile id.
func requireOrganizer(session *dto.Session) (string, error) {
	if !session.IsAuthenticated() {
		return "", errorz.ErrUnauthenticated
	}
	if !session.IsOrganizer() {
		return "", errorz.ErrForbidden
	}
	if session.OrganizerID() == "" {
		return "", errorz.ErrNoOrganizerProfile
	}
	return session.OrganizerID(), nil
}

// preview cuts s to n runes, marking the cut with an ellipsis.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
