package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Badsnus/cu-events/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-events/internal/adapters/database/redis/cache"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/internal/testfixtures"
	"github.com/Badsnus/cu-events/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	db    *gorm.DB
	clock *testfixtures.Clock
	cache *QueryCache
	store *cache.Memory

	profiles      *postgres.ProfileStorage
	organizers    *postgres.OrganizerStorage
	events        *postgres.EventStorage
	rsvps         *postgres.RsvpStorage
	follows       *postgres.FollowStorage
	posts         *postgres.PostStorage
	notifications *postgres.NotificationStorage

	notify    *NotifyService
	event     *EventService
	rsvp      *RsvpService
	follow    *FollowService
	organizer *OrganizerService
	discovery *DiscoveryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testfixtures.OpenDB(t, postgres.Migrations...)
	clock := testfixtures.NewClock(time.Time{})
	store := cache.NewMemory(clock.NowFunc())
	queryCache := NewQueryCache(logger.Nop(), store, nil, nil, time.Minute, 0)

	env := &testEnv{
		db:            db,
		clock:         clock,
		cache:         queryCache,
		store:         store,
		profiles:      postgres.NewProfileStorage(db),
		organizers:    postgres.NewOrganizerStorage(db),
		events:        postgres.NewEventStorage(db),
		rsvps:         postgres.NewRsvpStorage(db),
		follows:       postgres.NewFollowStorage(db),
		posts:         postgres.NewPostStorage(db),
		notifications: postgres.NewNotificationStorage(db),
	}

	env.notify = NewNotifyService(logger.Nop(), env.notifications, nil, nil, NotifyConfig{BaseURL: "https://events.test"}, clock.NowFunc())
	env.event = NewEventService(logger.Nop(), env.events, env.posts, env.notify, queryCache, clock.NowFunc())
	env.rsvp = NewRsvpService(env.rsvps, env.events, queryCache)
	env.follow = NewFollowService(env.follows, env.organizers, queryCache)
	env.organizer = NewOrganizerService(logger.Nop(), env.organizers, queryCache)
	env.discovery = NewDiscoveryService(env.event, env.follow, env.rsvp)
	return env
}

func (e *testEnv) student(t *testing.T) *dto.Session {
	t.Helper()
	return &dto.Session{User: testfixtures.CreateProfile(t, e.db, entity.Student)}
}

func (e *testEnv) organizerSession(t *testing.T, name string) *dto.Session {
	t.Helper()
	owner, organizer := testfixtures.CreateOrganizer(t, e.db, name)
	return &dto.Session{User: owner, OrganizerProfile: organizer}
}

func (e *testEnv) createEvent(t *testing.T, session *dto.Session, title string, in time.Duration) *entity.Event {
	t.Helper()
	return testfixtures.CreateEvent(t, e.db, session.OrganizerID(), title, e.clock.Now().Add(in))
}

func (e *testEnv) notificationsOf(t *testing.T, userID string) []entity.Notification {
	t.Helper()
	var notifications []entity.Notification
	if err := e.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&notifications).Error; err != nil {
		t.Fatalf("failed to load notifications: %v", err)
	}
	return notifications
}

func eventInput(title string, date time.Time) dto.EventInput {
	return dto.EventInput{
		Title:       title,
		Description: "A description long enough",
		Venue:       "Main Hall",
		EventDate:   date,
		EventType:   string(entity.EventTypeWorkshop),
	}
}

// fakeRevocations keeps revoked token ids in memory.
type fakeRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: make(map[string]time.Duration)}
}

func (f *fakeRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = ttl
	return nil
}

func (f *fakeRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.revoked[tokenID]
	return ok, nil
}
