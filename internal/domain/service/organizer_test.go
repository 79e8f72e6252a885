package service

import (
	"context"
	"testing"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/internal/testfixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizerService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := testfixtures.CreateProfile(t, env.db, entity.Organizer)
	session := &dto.Session{User: owner}

	_, err := env.organizer.Mine(ctx, session)
	assert.ErrorIs(t, err, errorz.ErrNoOrganizerProfile)

	organizers, err := env.organizer.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, organizers)

	created, err := env.organizer.Create(ctx, session, dto.OrganizerInput{
		Name:         "Astronomy Club",
		ContactEmail: "stars@campus.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, created.UserID)

	organizers, err = env.organizer.List(ctx)
	require.NoError(t, err)
	require.Len(t, organizers, 1)
	assert.Equal(t, "Astronomy Club", organizers[0].Name)

	session.OrganizerProfile = created
	_, err = env.organizer.Create(ctx, session, dto.OrganizerInput{Name: "Second"})
	assert.ErrorIs(t, err, errorz.ErrConflict)

	// the store refuses a second profile even when the session is stale
	session.OrganizerProfile = nil
	_, err = env.organizer.Create(ctx, session, dto.OrganizerInput{Name: "Second"})
	assert.ErrorIs(t, err, errorz.ErrConflict)

	_, err = env.organizer.Create(ctx, env.student(t), dto.OrganizerInput{Name: "Students"})
	assert.ErrorIs(t, err, errorz.ErrForbidden)
}

func TestOrganizerService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.organizerSession(t, "Astronomy Club")
	intruder := env.organizerSession(t, "Chess Club")

	cached, err := env.organizer.Get(ctx, owner.OrganizerID())
	require.NoError(t, err)
	assert.Equal(t, "Astronomy Club", cached.Name)

	updated, err := env.organizer.Update(ctx, owner, owner.OrganizerID(), dto.OrganizerInput{
		Name:        "Astronomy Society",
		Description: "We look up",
	})
	require.NoError(t, err)
	assert.Equal(t, "Astronomy Society", updated.Name)
	assert.Equal(t, "We look up", updated.Description)

	fresh, err := env.organizer.Get(ctx, owner.OrganizerID())
	require.NoError(t, err)
	assert.Equal(t, "Astronomy Society", fresh.Name)

	_, err = env.organizer.Update(ctx, intruder, owner.OrganizerID(), dto.OrganizerInput{Name: "Taken over"})
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, err = env.organizer.Update(ctx, owner, "00000000-0000-0000-0000-000000000000", dto.OrganizerInput{Name: "Ghost"})
	assert.ErrorIs(t, err, errorz.ErrNotFound)

	_, err = env.organizer.Get(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
