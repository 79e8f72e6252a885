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
	"github.com/Badsnus/cu-events/internal/testfixtures"
	"github.com/Badsnus/cu-events/pkg/logger"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zapcore"
)

func TestNotifyService_DeliverPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockNotificationStorage(ctrl)
	email := mocks.NewMockEmailSender(ctrl)
	telegram := mocks.NewMockTelegramSender(ctrl)
	clock := testfixtures.NewClock(time.Time{})

	eventID := "evt-1"
	event := &entity.Event{ID: eventID, Title: "Screening", EventDate: clock.Now().Add(24 * time.Hour)}
	notifications := []entity.Notification{
		{
			ID:      "n-email",
			EventID: &eventID,
			Title:   "Event Updated",
			Message: `The event "Screening" has been updated.`,
			User:    entity.Profile{ID: "u1", Email: "a@campus.edu", EmailNotifications: true},
			Event:   event,
		},
		{
			ID:      "n-telegram",
			EventID: &eventID,
			Title:   "Event Cancelled",
			Message: `The event "Screening" has been cancelled.`,
			User:    entity.Profile{ID: "u2", Email: "b@campus.edu", TelegramChatID: 42},
			Event:   event,
		},
		{
			ID:      "n-nowhere",
			Title:   "Event Deleted",
			Message: `The event "Screening" has been deleted.`,
			User:    entity.Profile{ID: "u3", Email: "c@campus.edu"},
		},
	}

	storage.EXPECT().ListUndelivered(gomock.Any(), 50).Return(notifications, nil)

	email.EXPECT().
		Send("a@campus.edu", "Event Updated", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_, _, text, html string) error {
			assert.Contains(t, text, "https://events.test/event/evt-1")
			assert.Contains(t, html, `<a href="https://events.test/event/evt-1">`)
			return nil
		})
	telegram.EXPECT().
		SendMessage(int64(42), gomock.Any()).
		Return(errors.New("bot was blocked by the user"))

	gomock.InOrder(
		storage.EXPECT().MarkDelivered(gomock.Any(), "n-email", []string{"email"}, clock.Now()).Return(nil),
		storage.EXPECT().MarkDelivered(gomock.Any(), "n-telegram", []string{}, clock.Now()).Return(nil),
		storage.EXPECT().MarkDelivered(gomock.Any(), "n-nowhere", []string{}, clock.Now()).Return(nil),
	)

	notify := NewNotifyService(logger.Nop(), storage, email, telegram, NotifyConfig{
		BaseURL:       "https://events.test",
		DeliveryBatch: 50,
	}, clock.NowFunc())
	notify.deliverPending(context.Background())
}

func TestNotifyService_DisabledChannels(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockNotificationStorage(ctrl)

	storage.EXPECT().ListUndelivered(gomock.Any(), 10).Return([]entity.Notification{
		{ID: "n1", User: entity.Profile{ID: "u1", Email: "a@campus.edu", EmailNotifications: true, TelegramChatID: 7}},
	}, nil)
	storage.EXPECT().MarkDelivered(gomock.Any(), "n1", []string{}, gomock.Any()).Return(nil)

	notify := NewNotifyService(logger.Nop(), storage, nil, nil, NotifyConfig{DeliveryBatch: 10}, nil)
	notify.deliverPending(context.Background())
}

func TestNotifyService_UserScoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Film Club")
	event := env.createEvent(t, org, "Screening", 48*time.Hour)
	alice, bob := env.student(t), env.student(t)
	for _, s := range []*dto.Session{alice, bob} {
		_, err := env.rsvp.Set(ctx, s, event.ID, entity.RsvpGoing)
		require.NoError(t, err)
	}

	_, _, err := env.event.Cancel(ctx, org, event.ID)
	require.NoError(t, err)
	_, _, err = env.event.CreatePost(ctx, org, event.ID, dto.PostInput{Content: "Refunds at the desk"})
	require.NoError(t, err)

	list, err := env.notify.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, n := range list {
		assert.Equal(t, alice.UserID(), n.UserID)
	}

	unread, err := env.notify.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	// bob cannot touch alice's notification
	err = env.notify.MarkRead(ctx, bob, list[0].ID)
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	require.NoError(t, env.notify.MarkRead(ctx, alice, list[0].ID))
	unread, err = env.notify.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, env.notify.MarkAllRead(ctx, alice))
	unread, err = env.notify.UnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)

	unread, err = env.notify.UnreadCount(ctx, bob)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread)

	_, err = env.notify.List(ctx, nil)
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)
}

func TestNotifyService_LogHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	telegram := mocks.NewMockTelegramSender(ctrl)

	notify := NewNotifyService(logger.Nop(), nil, nil, telegram, NotifyConfig{}, nil)
	hook, err := notify.LogHook(-100, zapcore.WarnLevel)
	require.NoError(t, err)

	telegram.EXPECT().
		SendMessage(int64(-100), gomock.Any()).
		DoAndReturn(func(_ int64, text string) error {
			assert.True(t, strings.HasPrefix(text, "[ERROR]"))
			assert.Contains(t, text, "database is down")
			return nil
		}).
		Times(1)

	hook(types.Log{Level: zapcore.InfoLevel, Message: "ignored"})
	hook(types.Log{Level: zapcore.ErrorLevel, Message: "database is down", LoggerName: "main.http"})

	_, err = NewNotifyService(logger.Nop(), nil, nil, nil, NotifyConfig{}, nil).LogHook(1, zapcore.WarnLevel)
	assert.Error(t, err)
}
