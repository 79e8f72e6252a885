package service

import (
	"bytes"
	"context"
	"strconv"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/internal/domain/utils/calendar"
	"github.com/Badsnus/cu-events/internal/domain/utils/location"
	"github.com/Badsnus/cu-events/pkg/generator"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/xuri/excelize/v2"
)

const attendeesSheet = "Attendees"

type exportRsvpStorage interface {
	ListByEvent(ctx context.Context, eventID string) ([]entity.Rsvp, error)
	EventsByUser(ctx context.Context, userID string) ([]entity.Event, error)
}

type exportEventStorage interface {
	Get(ctx context.Context, id string) (*entity.Event, error)
}

// ExportService renders calendar feeds, attendee sheets and event QR codes.
type ExportService struct {
	logger *types.Logger

	events  exportEventStorage
	rsvps   exportRsvpStorage
	qr      generator.QRConfig
	baseURL string

	now func() time.Time
}

func NewExportService(
	logger *types.Logger,
	events exportEventStorage,
	rsvps exportRsvpStorage,
	qr generator.QRConfig,
	baseURL string,
	now func() time.Time,
) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{
		logger:  logger,
		events:  events,
		rsvps:   rsvps,
		qr:      qr,
		baseURL: baseURL,
		now:     now,
	}
}

// Calendar returns an iCalendar feed of every event the caller holds an rsvp for.
func (s *ExportService) Calendar(ctx context.Context, session *dto.Session) ([]byte, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}

	events, err := s.rsvps.EventsByUser(ctx, session.UserID())
	if err != nil {
		return nil, err
	}
	return calendar.ExportEventsToICS(events, s.baseURL, s.now())
}

// Attendees returns an xlsx sheet of the event's rsvps. Only the owning organizer may export it.
func (s *ExportService) Attendees(ctx context.Context, session *dto.Session, eventID string) (*entity.Event, []byte, error) {
	organizerID, err := requireOrganizer(session)
	if err != nil {
		return nil, nil, err
	}

	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, nil, errorz.ErrForbidden
	}

	rsvps, err := s.rsvps.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	buf, err := attendeesToXLSX(rsvps)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Infof("attendees exported (event_id=%s, rows=%d)", eventID, len(rsvps))
	return event, buf.Bytes(), nil
}

// QR returns a PNG QR code pointing to the public event page.
func (s *ExportService) QR(ctx context.Context, eventID string) ([]byte, error) {
	event, err := s.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(event.Link(s.baseURL))
}

func attendeesToXLSX(rsvps []entity.Rsvp) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendeesSheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Name", "Email", "Status", "RSVP date"}
	if err := f.SetSheetRow(attendeesSheet, "A1", &header); err != nil {
		return nil, err
	}

	loc := location.Location()
	for i, rsvp := range rsvps {
		row := []interface{}{
			rsvp.Profile.FullName,
			rsvp.Profile.Email,
			string(rsvp.Status),
			rsvp.CreatedAt.In(loc).Format("02.01.2006 15:04"),
		}
		if err := f.SetSheetRow(attendeesSheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(attendeesSheet, "A", "B", 32)
	_ = f.SetColWidth(attendeesSheet, "C", "D", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
