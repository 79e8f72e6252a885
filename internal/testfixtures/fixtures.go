package testfixtures

import (
	"fmt"
	"testing"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func CreateProfile(tb testing.TB, db *gorm.DB, role entity.Role) *entity.Profile {
	tb.Helper()

	profile := &entity.Profile{
		Email:        fmt.Sprintf("%s@campus.edu", uuid.NewString()[:8]),
		PasswordHash: "x",
		FullName:     "Test " + string(role),
		Role:         role,
	}
	if err := db.Create(profile).Error; err != nil {
		tb.Fatalf("failed to create profile: %v", err)
	}
	return profile
}

func CreateOrganizer(tb testing.TB, db *gorm.DB, name string) (*entity.Profile, *entity.OrganizerProfile) {
	tb.Helper()

	owner := CreateProfile(tb, db, entity.Organizer)
	organizer := &entity.OrganizerProfile{
		UserID: owner.ID,
		Name:   name,
	}
	if err := db.Create(organizer).Error; err != nil {
		tb.Fatalf("failed to create organizer: %v", err)
	}
	return owner, organizer
}

func CreateEvent(tb testing.TB, db *gorm.DB, organizerID, title string, date time.Time) *entity.Event {
	tb.Helper()

	event := &entity.Event{
		OrganizerID: organizerID,
		Title:       title,
		Description: "Description of " + title,
		Venue:       "Main Hall",
		EventDate:   date.UTC(),
		EventType:   entity.EventTypeSocial,
	}
	if err := db.Omit(clause.Associations).Create(event).Error; err != nil {
		tb.Fatalf("failed to create event: %v", err)
	}
	return event
}

func CreateRsvp(tb testing.TB, db *gorm.DB, userID, eventID string, status entity.RsvpStatus) *entity.Rsvp {
	tb.Helper()

	rsvp := &entity.Rsvp{
		UserID:  userID,
		EventID: eventID,
		Status:  status,
	}
	if err := db.Omit(clause.Associations).Create(rsvp).Error; err != nil {
		tb.Fatalf("failed to create rsvp: %v", err)
	}
	return rsvp
}
