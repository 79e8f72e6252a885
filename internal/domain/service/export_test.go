package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/pkg/generator"
	"github.com/Badsnus/cu-events/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExport(env *testEnv) *ExportService {
	return NewExportService(logger.Nop(), env.events, env.rsvps, generator.DefaultQR, "https://events.test", env.clock.NowFunc())
}

func TestExportService_Calendar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	export := newExport(env)

	org := env.organizerSession(t, "Film Club")
	going := env.createEvent(t, org, "Screening", 48*time.Hour)
	skipped := env.createEvent(t, org, "Not for me", 72*time.Hour)
	student := env.student(t)

	_, err := env.rsvp.Set(ctx, student, going.ID, entity.RsvpGoing)
	require.NoError(t, err)

	ics, err := export.Calendar(ctx, student)
	require.NoError(t, err)

	body := string(ics)
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Screening")
	assert.Contains(t, body, "UID:"+going.ID+"@cu-events")
	assert.Contains(t, body, "https://events.test/event/"+going.ID)
	assert.NotContains(t, body, skipped.ID)

	_, err = export.Calendar(ctx, nil)
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)
}

func TestExportService_Attendees(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	export := newExport(env)

	org := env.organizerSession(t, "Film Club")
	event := env.createEvent(t, org, "Screening", 48*time.Hour)
	student := env.student(t)
	_, err := env.rsvp.Set(ctx, student, event.ID, entity.RsvpInterested)
	require.NoError(t, err)

	_, _, err = export.Attendees(ctx, env.organizerSession(t, "Chess Club"), event.ID)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, _, err = export.Attendees(ctx, student, event.ID)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	exported, data, err := export.Attendees(ctx, org, event.ID)
	require.NoError(t, err)
	assert.Equal(t, event.ID, exported.ID)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(attendeesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Name", "Email", "Status", "RSVP date"}, rows[0])
	assert.Equal(t, student.User.Email, rows[1][1])
	assert.Equal(t, "interested", rows[1][2])
}

func TestExportService_QR(t *testing.T) {
	env := newTestEnv(t)
	export := newExport(env)

	org := env.organizerSession(t, "Film Club")
	event := env.createEvent(t, org, "Screening", 48*time.Hour)

	data, err := export.QR(context.Background(), event.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	_, err = export.QR(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
