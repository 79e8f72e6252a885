package postgres

import "github.com/Badsnus/cu-events/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.Profile{},
	&entity.OrganizerProfile{},
	&entity.Event{},
	&entity.Rsvp{},
	&entity.Follow{},
	&entity.EventPost{},
	&entity.Notification{},
}
