package service

import (
	"context"
	"strings"

	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
)

// idSet is a membership set. A nil idSet means the set is unknown and filters on it are skipped.
type idSet map[string]struct{}

func newIDSet(ids []string) idSet {
	set := make(idSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s idSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// FilterEvents applies the in-memory filters over an already fetched listing, keeping its order.
func FilterEvents(events []entity.Event, filter dto.EventFilter, followed, rsvpd idSet) []entity.Event {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]entity.Event, 0, len(events))
	for _, event := range events {
		if search != "" && !strings.Contains(strings.ToLower(event.Title), search) {
			continue
		}
		if filter.OnlyFollowed && followed != nil && !followed.has(event.OrganizerID) {
			continue
		}
		if filter.OnlyRsvpd && rsvpd != nil && !rsvpd.has(event.ID) {
			continue
		}
		result = append(result, event)
	}
	return result
}

type discoveryEvents interface {
	List(ctx context.Context, query dto.EventQuery) ([]entity.Event, error)
}

type discoveryFollows interface {
	FollowedOrganizerIDs(ctx context.Context, userID string) ([]string, error)
}

type discoveryRsvps interface {
	EventIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// DiscoveryService composes the event listing: one pushed-down query plus in-memory filters
// over the caller's followed organizers and rsvp'd events.
type DiscoveryService struct {
	events  discoveryEvents
	follows discoveryFollows
	rsvps   discoveryRsvps
}

func NewDiscoveryService(events discoveryEvents, follows discoveryFollows, rsvps discoveryRsvps) *DiscoveryService {
	return &DiscoveryService{
		events:  events,
		follows: follows,
		rsvps:   rsvps,
	}
}

func (s *DiscoveryService) Discover(ctx context.Context, session *dto.Session, query dto.EventQuery, filter dto.EventFilter) ([]entity.Event, error) {
	events, err := s.events.List(ctx, query)
	if err != nil {
		return nil, err
	}

	var followed, rsvpd idSet
	if session.IsAuthenticated() {
		if filter.OnlyFollowed {
			ids, err := s.follows.FollowedOrganizerIDs(ctx, session.UserID())
			if err != nil {
				return nil, err
			}
			followed = newIDSet(ids)
		}
		if filter.OnlyRsvpd {
			ids, err := s.rsvps.EventIDsByUser(ctx, session.UserID())
			if err != nil {
				return nil, err
			}
			rsvpd = newIDSet(ids)
		}
	}

	return FilterEvents(events, filter, followed, rsvpd), nil
}
