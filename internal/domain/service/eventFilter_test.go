package service

import (
	"context"
	"testing"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(events []entity.Event) []string {
	result := make([]string, 0, len(events))
	for _, e := range events {
		result = append(result, e.Title)
	}
	return result
}

func TestFilterEvents(t *testing.T) {
	events := []entity.Event{
		{ID: "e1", OrganizerID: "o1", Title: "Jazz Night"},
		{ID: "e2", OrganizerID: "o2", Title: "Chess Open"},
		{ID: "e3", OrganizerID: "o1", Title: "Late JAZZ jam"},
		{ID: "e4", OrganizerID: "o3", Title: "Career Fair"},
	}

	tests := []struct {
		name     string
		filter   dto.EventFilter
		followed idSet
		rsvpd    idSet
		want     []string
	}{
		{
			name: "no filters keeps order",
			want: []string{"Jazz Night", "Chess Open", "Late JAZZ jam", "Career Fair"},
		},
		{
			name:   "search is case insensitive substring of title",
			filter: dto.EventFilter{Search: "  jazz "},
			want:   []string{"Jazz Night", "Late JAZZ jam"},
		},
		{
			name:     "only followed",
			filter:   dto.EventFilter{OnlyFollowed: true},
			followed: newIDSet([]string{"o1"}),
			want:     []string{"Jazz Night", "Late JAZZ jam"},
		},
		{
			name:   "only rsvpd",
			filter: dto.EventFilter{OnlyRsvpd: true},
			rsvpd:  newIDSet([]string{"e2", "e4"}),
			want:   []string{"Chess Open", "Career Fair"},
		},
		{
			name:     "filters are conjunctive",
			filter:   dto.EventFilter{Search: "jazz", OnlyFollowed: true, OnlyRsvpd: true},
			followed: newIDSet([]string{"o1", "o2"}),
			rsvpd:    newIDSet([]string{"e3", "e2"}),
			want:     []string{"Late JAZZ jam"},
		},
		{
			name:     "empty known set filters everything",
			filter:   dto.EventFilter{OnlyFollowed: true},
			followed: newIDSet(nil),
			want:     []string{},
		},
		{
			name:   "unknown sets skip the filter",
			filter: dto.EventFilter{OnlyFollowed: true, OnlyRsvpd: true},
			want:   []string{"Jazz Night", "Chess Open", "Late JAZZ jam", "Career Fair"},
		},
		{
			name:   "no title matches",
			filter: dto.EventFilter{Search: "robotics"},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEvents(events, tt.filter, tt.followed, tt.rsvpd)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestDiscoveryService_Discover(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	followedOrg := env.organizerSession(t, "Jazz Society")
	otherOrg := env.organizerSession(t, "Chess Club")
	jazz := env.createEvent(t, followedOrg, "Jazz Night", 24*time.Hour)
	env.createEvent(t, otherOrg, "Chess Open", 48*time.Hour)
	env.createEvent(t, otherOrg, "Old Chess", -48*time.Hour)

	student := env.student(t)
	_, err := env.follow.Follow(ctx, student, followedOrg.OrganizerID())
	require.NoError(t, err)

	events, err := env.discovery.Discover(ctx, student, dto.EventQuery{}, dto.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz Night", "Chess Open"}, titles(events))

	events, err = env.discovery.Discover(ctx, student, dto.EventQuery{}, dto.EventFilter{OnlyFollowed: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz Night"}, titles(events))

	// nothing rsvp'd yet
	events, err = env.discovery.Discover(ctx, student, dto.EventQuery{}, dto.EventFilter{OnlyRsvpd: true})
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = env.rsvp.Set(ctx, student, jazz.ID, entity.RsvpGoing)
	require.NoError(t, err)

	events, err = env.discovery.Discover(ctx, student, dto.EventQuery{}, dto.EventFilter{OnlyRsvpd: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jazz Night"}, titles(events))

	events, err = env.discovery.Discover(ctx, student, dto.EventQuery{ShowArchived: true}, dto.EventFilter{Search: "chess"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Old Chess", "Chess Open"}, titles(events))

	events, err = env.discovery.Discover(ctx, student, dto.EventQuery{OrganizerID: otherOrg.OrganizerID()}, dto.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess Open"}, titles(events))

	// anonymous callers have no sets, so the relational filters are skipped
	events, err = env.discovery.Discover(ctx, nil, dto.EventQuery{}, dto.EventFilter{OnlyFollowed: true, OnlyRsvpd: true})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
