package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/internal/domain/utils/location"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/Badsnus/cu-events/pkg/metrics"
	"go.uber.org/zap/zapcore"
)

const (
	channelEmail    = "email"
	channelTelegram = "telegram"
)

type NotificationStorage interface {
	FanOut(ctx context.Context, eventID string, notificationType entity.NotificationType, title, message string) (int, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	ListUndelivered(ctx context.Context, limit int) ([]entity.Notification, error)
	MarkDelivered(ctx context.Context, id string, channels []string, at time.Time) error
}

type EmailSender interface {
	Send(to, subject, text, html string) error
}

type TelegramSender interface {
	SendMessage(chatID int64, text string) error
}

type NotifyConfig struct {
	BaseURL       string
	ListLimit     int
	DeliveryBatch int
}

type NotifyService struct {
	logger *types.Logger

	storage  NotificationStorage
	email    EmailSender
	telegram TelegramSender

	cfg NotifyConfig
	now func() time.Time
}

// NewNotifyService creates the service. email and telegram may be nil when the channel is disabled.
func NewNotifyService(
	logger *types.Logger,
	storage NotificationStorage,
	email EmailSender,
	telegram TelegramSender,
	cfg NotifyConfig,
	now func() time.Time,
) *NotifyService {
	if now == nil {
		now = time.Now
	}
	return &NotifyService{
		logger:   logger,
		storage:  storage,
		email:    email,
		telegram: telegram,
		cfg:      cfg,
		now:      now,
	}
}

// FanOut notifies every rsvp holder of the event. A failure is logged and reported
// in the result; the caller's write stays committed and nothing is retried.
func (s *NotifyService) FanOut(ctx context.Context, eventID string, notificationType entity.NotificationType, title, message string) dto.LifecycleResult {
	created, err := s.storage.FanOut(ctx, eventID, notificationType, title, message)
	if err != nil {
		metrics.FanOutFailures.Inc()
		s.logger.Errorf("failed to notify rsvp holders (event_id=%s, type=%s): %v", eventID, notificationType, err)
		return dto.LifecycleResult{Notified: false}
	}

	metrics.NotificationsCreated.WithLabelValues(string(notificationType)).Add(float64(created))
	s.logger.Infof("notified %d rsvp holders (event_id=%s, type=%s)", created, eventID, notificationType)
	return dto.LifecycleResult{Notified: true}
}

func (s *NotifyService) List(ctx context.Context, session *dto.Session) ([]entity.Notification, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}
	return s.storage.ListByUser(ctx, session.UserID(), s.cfg.ListLimit)
}

func (s *NotifyService) UnreadCount(ctx context.Context, session *dto.Session) (int64, error) {
	if !session.IsAuthenticated() {
		return 0, errorz.ErrUnauthenticated
	}
	return s.storage.CountUnread(ctx, session.UserID())
}

func (s *NotifyService) MarkRead(ctx context.Context, session *dto.Session, id string) error {
	if !session.IsAuthenticated() {
		return errorz.ErrUnauthenticated
	}
	return s.storage.MarkRead(ctx, session.UserID(), id)
}

func (s *NotifyService) MarkAllRead(ctx context.Context, session *dto.Session) error {
	if !session.IsAuthenticated() {
		return errorz.ErrUnauthenticated
	}
	return s.storage.MarkAllRead(ctx, session.UserID())
}

// LogHook returns a log hook forwarding entries at or above level to a Telegram chat.
func (s *NotifyService) LogHook(chatID int64, level zapcore.Level) (types.LogHook, error) {
	if s.telegram == nil {
		return nil, fmt.Errorf("telegram is not configured")
	}
	return func(log types.Log) {
		if log.Level < level {
			return
		}
		text := fmt.Sprintf("[%s] %s %s\n%s\n%s",
			log.Level.CapitalString(),
			log.Timestamp.In(location.Location()).Format("2006-01-02 15:04:05"),
			log.LoggerName,
			log.Caller,
			log.Message,
		)
		if err := s.telegram.SendMessage(chatID, text); err != nil && !strings.Contains(log.Message, "failed to send log to channel") {
			s.logger.Errorf("failed to send log to channel %d: %v", chatID, err)
		}
	}, nil
}

// StartDeliveryScheduler pushes stored notifications to email and Telegram until ctx is done.
func (s *NotifyService) StartDeliveryScheduler(ctx context.Context, interval time.Duration) {
	s.logger.Info("Starting delivery scheduler")
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Delivery scheduler stopped")
				return
			case <-ticker.C:
				s.deliverPending(ctx)
			}
		}
	}()
}

// deliverPending sends one batch of undelivered notifications. Every picked
// notification is marked delivered, whichever channels succeeded.
func (s *NotifyService) deliverPending(ctx context.Context) {
	notifications, err := s.storage.ListUndelivered(ctx, s.cfg.DeliveryBatch)
	if err != nil {
		s.logger.Errorf("failed to get undelivered notifications: %v", err)
		return
	}

	for _, notification := range notifications {
		channels := s.deliver(notification)
		if err = s.storage.MarkDelivered(ctx, notification.ID, channels, s.now()); err != nil {
			s.logger.Errorf("failed to mark notification %s delivered: %v", notification.ID, err)
		}
	}
}

func (s *NotifyService) deliver(notification entity.Notification) []string {
	channels := make([]string, 0, 2)
	user := notification.User

	if s.email != nil && user.EmailNotifications && user.Email != "" {
		text, html, err := s.renderEmail(notification)
		if err == nil {
			err = s.email.Send(user.Email, notification.Title, text, html)
		}
		if err != nil {
			metrics.Deliveries.WithLabelValues(channelEmail, "error").Inc()
			s.logger.Errorf("failed to email notification (notification_id=%s, user_id=%s): %v", notification.ID, user.ID, err)
		} else {
			metrics.Deliveries.WithLabelValues(channelEmail, "ok").Inc()
			channels = append(channels, channelEmail)
		}
	}

	if s.telegram != nil && user.TelegramChatID != 0 {
		text := notification.Title + "\n\n" + notification.Message
		if link := s.eventLink(notification); link != "" {
			text += "\n" + link
		}
		if err := s.telegram.SendMessage(user.TelegramChatID, text); err != nil {
			metrics.Deliveries.WithLabelValues(channelTelegram, "error").Inc()
			s.logger.Errorf("failed to send notification to telegram (notification_id=%s, user_id=%s): %v", notification.ID, user.ID, err)
		} else {
			metrics.Deliveries.WithLabelValues(channelTelegram, "ok").Inc()
			channels = append(channels, channelTelegram)
		}
	}
	return channels
}

var emailTemplate = template.Must(template.New("notification").Parse(
	`<h2>{{.Title}}</h2>
<p>{{.Message}}</p>
{{if .Link}}<p><a href="{{.Link}}">Open event</a></p>{{end}}
{{if .When}}<p style="color:#71717a">{{.When}}</p>{{end}}`))

func (s *NotifyService) renderEmail(notification entity.Notification) (string, string, error) {
	data := struct {
		Title, Message, Link, When string
	}{
		Title:   notification.Title,
		Message: notification.Message,
		Link:    s.eventLink(notification),
	}
	if notification.Event != nil {
		data.When = notification.Event.EventDate.In(location.Location()).Format("Monday, January 2, 2006 at 15:04")
	}

	var html bytes.Buffer
	if err := emailTemplate.Execute(&html, data); err != nil {
		return "", "", err
	}

	text := notification.Message
	if data.Link != "" {
		text += "\n\n" + data.Link
	}
	return text, html.String(), nil
}

func (s *NotifyService) eventLink(notification entity.Notification) string {
	if notification.Event == nil || s.cfg.BaseURL == "" {
		return ""
	}
	return notification.Event.Link(s.cfg.BaseURL)
}
