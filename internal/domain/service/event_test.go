package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/internal/mocks"
	"github.com/Badsnus/cu-events/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventService_CreateShowsUpInCachedList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Film Club")
	env.createEvent(t, org, "Screening", 48*time.Hour)

	events, err := env.event.List(ctx, dto.EventQuery{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	created, err := env.event.Create(ctx, org, eventInput("Premiere", env.clock.Now().Add(24*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, org.OrganizerID(), created.OrganizerID)
	assert.Equal(t, "Film Club", created.Organizer.Name)

	events, err = env.event.List(ctx, dto.EventQuery{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Premiere", events[0].Title)

	mine, err := env.event.ListMine(ctx, org)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestEventService_ListHidesEventsThatStartedSinceCached(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Film Club")
	env.createEvent(t, org, "Soon", 10*time.Second)
	env.createEvent(t, org, "Later", 48*time.Hour)

	events, err := env.event.List(ctx, dto.EventQuery{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	env.clock.Advance(30 * time.Second)

	events, err = env.event.List(ctx, dto.EventQuery{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Later", events[0].Title)

	archived, err := env.event.List(ctx, dto.EventQuery{ShowArchived: true})
	require.NoError(t, err)
	assert.Len(t, archived, 2)
}

func TestEventService_OrganizerGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	in := eventInput("Premiere", env.clock.Now().Add(24*time.Hour))

	_, err := env.event.Create(ctx, nil, in)
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)

	_, err = env.event.Create(ctx, env.student(t), in)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	orphan := env.organizerSession(t, "Film Club")
	orphan.OrganizerProfile = nil
	_, err = env.event.Create(ctx, orphan, in)
	assert.ErrorIs(t, err, errorz.ErrNoOrganizerProfile)
}

func TestEventService_UpdateNotifiesRsvpHolders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Film Club")
	event := env.createEvent(t, org, "Screening", 48*time.Hour)
	going, interested, bystander := env.student(t), env.student(t), env.student(t)

	_, err := env.rsvp.Set(ctx, going, event.ID, entity.RsvpGoing)
	require.NoError(t, err)
	_, err = env.rsvp.Set(ctx, interested, event.ID, entity.RsvpInterested)
	require.NoError(t, err)

	cached, err := env.event.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Screening", cached.Title)

	updated, result, err := env.event.Update(ctx, org, event.ID, eventInput("Screening (moved)", event.EventDate.Add(time.Hour)))
	require.NoError(t, err)
	assert.True(t, result.Notified)
	assert.Equal(t, "Event updated successfully!", result.Message)
	assert.Equal(t, "Screening (moved)", updated.Title)

	fresh, err := env.event.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Screening (moved)", fresh.Title)

	for _, session := range []*dto.Session{going, interested} {
		notifications := env.notificationsOf(t, session.UserID())
		require.Len(t, notifications, 1)
		assert.Equal(t, entity.NotificationEventUpdated, notifications[0].Type)
		assert.Equal(t, "Event Updated", notifications[0].Title)
		assert.Equal(t, `The event "Screening (moved)" has been updated.`, notifications[0].Message)
		assert.False(t, notifications[0].IsRead)
	}
	assert.Empty(t, env.notificationsOf(t, bystander.UserID()))
}

func TestEventService_OwnershipForLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.organizerSession(t, "Film Club")
	intruder := env.organizerSession(t, "Chess Club")
	event := env.createEvent(t, owner, "Screening", 48*time.Hour)

	_, _, err := env.event.Update(ctx, intruder, event.ID, eventInput("Hijacked", event.EventDate))
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, _, err = env.event.Cancel(ctx, intruder, event.ID)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, err = env.event.Delete(ctx, intruder, event.ID)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, _, err = env.event.CreatePost(ctx, intruder, event.ID, dto.PostInput{Content: "hi"})
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, _, err = env.event.Cancel(ctx, owner, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	stored, err := env.events.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Screening", stored.Title)
	assert.False(t, stored.IsCancelled)
}

func TestEventService_Cancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Film Club")
	event := env.createEvent(t, org, "Screening", 48*time.Hour)
	student := env.student(t)
	_, err := env.rsvp.Set(ctx, student, event.ID, entity.RsvpGoing)
	require.NoError(t, err)

	cancelled, result, err := env.event.Cancel(ctx, org, event.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.IsCancelled)
	assert.True(t, result.Notified)
	assert.Equal(t, "Event cancelled. Attendees have been notified.", result.Message)

	notifications := env.notificationsOf(t, student.UserID())
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.NotificationEventCancelled, notifications[0].Type)
	assert.Equal(t, `The event "Screening" has been cancelled.`, notifications[0].Message)

	// cancelled events stay listed
	events, err := env.event.List(ctx, dto.EventQuery{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].IsCancelled)
}

func TestEventService_DeleteNotifiesFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Film Club")
	event := env.createEvent(t, org, "Screening", 48*time.Hour)
	student := env.student(t)
	_, err := env.rsvp.Set(ctx, student, event.ID, entity.RsvpInterested)
	require.NoError(t, err)

	result, err := env.event.Delete(ctx, org, event.ID)
	require.NoError(t, err)
	assert.True(t, result.Notified)
	assert.Equal(t, "Event deleted successfully", result.Message)

	_, err = env.event.Get(ctx, event.ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	notifications := env.notificationsOf(t, student.UserID())
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.NotificationEventDeleted, notifications[0].Type)
	assert.Equal(t, `The event "Screening" has been deleted.`, notifications[0].Message)
	assert.Nil(t, notifications[0].EventID)

	state, err := env.rsvp.Status(ctx, student, event.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.RsvpNone, state)
}

func TestEventService_CreatePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Film Club")
	event := env.createEvent(t, org, "Screening", 48*time.Hour)
	student := env.student(t)
	_, err := env.rsvp.Set(ctx, student, event.ID, entity.RsvpGoing)
	require.NoError(t, err)

	posts, err := env.event.Posts(ctx, event.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)

	content := strings.Repeat("é", 150)
	post, result, err := env.event.CreatePost(ctx, org, event.ID, dto.PostInput{Content: content})
	require.NoError(t, err)
	assert.Equal(t, content, post.Content)
	assert.True(t, result.Notified)
	assert.Equal(t, "Update posted!", result.Message)

	posts, err = env.event.Posts(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	notifications := env.notificationsOf(t, student.UserID())
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.NotificationEventPost, notifications[0].Type)
	assert.Equal(t, "New Event Update", notifications[0].Title)
	assert.Equal(t, `New update posted for "Screening": `+strings.Repeat("é", 100)+"...", notifications[0].Message)
}

func TestEventService_FanOutFailureKeepsWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	storage := mocks.NewMockNotificationStorage(ctrl)
	storage.EXPECT().
		FanOut(gomock.Any(), gomock.Any(), entity.NotificationEventUpdated, "Event Updated", gomock.Any()).
		Return(0, errors.New("connection reset")).
		Times(1)

	notify := NewNotifyService(logger.Nop(), storage, nil, nil, NotifyConfig{}, env.clock.NowFunc())
	events := NewEventService(logger.Nop(), env.events, env.posts, notify, env.cache, env.clock.NowFunc())

	org := env.organizerSession(t, "Film Club")
	event := env.createEvent(t, org, "Screening", 48*time.Hour)

	updated, result, err := events.Update(ctx, org, event.ID, eventInput("Renamed", event.EventDate))
	require.NoError(t, err)
	assert.False(t, result.Notified)
	assert.Equal(t, "Event updated successfully!", result.Message)
	assert.Equal(t, "Renamed", updated.Title)

	stored, err := env.events.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short", 100))
	assert.Equal(t, strings.Repeat("a", 100), preview(strings.Repeat("a", 100), 100))
	assert.Equal(t, strings.Repeat("a", 100)+"...", preview(strings.Repeat("a", 101), 100))
}
