package calendar

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/entity"
	ics "github.com/arran4/golang-ical"
)

const (
	productID       = "-//CU Events//EN"
	defaultDuration = time.Hour
)

// ExportEventsToICS serializes events into a single iCalendar document.
//
// Events carry only a start date, so every entry lasts one hour. Cancelled events are
// kept in the feed with STATUS:CANCELLED so that calendar clients remove them.
// baseURL, when set, is used to attach the public event page as URL.
func ExportEventsToICS(events []entity.Event, baseURL string, now time.Time) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetName("CU Events")

	for _, event := range events {
		e := cal.AddEvent(event.ID + "@cu-events")

		e.SetDtStampTime(now)
		e.SetCreatedTime(event.CreatedAt)
		e.SetModifiedAt(event.UpdatedAt)
		e.SetStartAt(event.EventDate)
		e.SetEndAt(event.EventDate.Add(defaultDuration))

		e.SetSummary(event.Title)
		e.SetDescription(event.Description)
		e.SetLocation(event.Venue)
		if event.Organizer.ContactEmail != "" {
			e.SetOrganizer("mailto:"+event.Organizer.ContactEmail, ics.WithCN(event.Organizer.Name))
		}
		if baseURL != "" {
			e.SetURL(event.Link(baseURL))
		}

		if event.IsCancelled {
			e.SetStatus(ics.ObjectStatusCancelled)
		} else {
			e.SetStatus(ics.ObjectStatusConfirmed)
		}
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPublic)
		e.SetSequence(0)

		// reminder one hour before start
		alarm := e.AddAlarm()
		alarm.SetAction(ics.ActionDisplay)
		alarm.SetTrigger("-PT1H")
		alarm.SetDescription(fmt.Sprintf("Reminder: %s", event.Title))
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}
	return buf.Bytes(), nil
}
