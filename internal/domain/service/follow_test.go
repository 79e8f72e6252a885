package service

import (
	"context"
	"testing"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Toggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Drama Society")
	student := env.student(t)
	organizerID := org.OrganizerID()

	following, err := env.follow.IsFollowing(ctx, student, organizerID)
	require.NoError(t, err)
	assert.False(t, following)

	result, err := env.follow.Toggle(ctx, student, organizerID, following)
	require.NoError(t, err)
	assert.True(t, result.Following)
	assert.Equal(t, "Now following organizer!", result.Message)

	following, err = env.follow.IsFollowing(ctx, student, organizerID)
	require.NoError(t, err)
	assert.True(t, following)

	count, err := env.follow.FollowerCount(ctx, organizerID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	result, err = env.follow.Toggle(ctx, student, organizerID, following)
	require.NoError(t, err)
	assert.False(t, result.Following)
	assert.Equal(t, "Unfollowed organizer", result.Message)

	count, err = env.follow.FollowerCount(ctx, organizerID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestFollowService_StaleToggleNeverDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Drama Society")
	student := env.student(t)

	// two tabs both saw "not following"
	for i := 0; i < 2; i++ {
		result, err := env.follow.Toggle(ctx, student, org.OrganizerID(), false)
		require.NoError(t, err)
		assert.True(t, result.Following)
	}

	var rows int64
	require.NoError(t, env.db.Model(&entity.Follow{}).Where("organizer_id = ?", org.OrganizerID()).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)

	// and both saw "following"
	for i := 0; i < 2; i++ {
		result, err := env.follow.Toggle(ctx, student, org.OrganizerID(), true)
		require.NoError(t, err)
		assert.False(t, result.Following)
	}
}

func TestFollowService_FollowedOrganizerIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.organizerSession(t, "Drama Society")
	second := env.organizerSession(t, "Chess Club")
	student := env.student(t)

	_, err := env.follow.Follow(ctx, student, first.OrganizerID())
	require.NoError(t, err)

	ids, err := env.follow.FollowedOrganizerIDs(ctx, student.UserID())
	require.NoError(t, err)
	assert.Equal(t, []string{first.OrganizerID()}, ids)

	_, err = env.follow.Follow(ctx, student, second.OrganizerID())
	require.NoError(t, err)

	ids, err = env.follow.FollowedOrganizerIDs(ctx, student.UserID())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.OrganizerID(), second.OrganizerID()}, ids)
}

func TestFollowService_Guards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	org := env.organizerSession(t, "Drama Society")

	following, err := env.follow.IsFollowing(ctx, nil, org.OrganizerID())
	require.NoError(t, err)
	assert.False(t, following)

	_, err = env.follow.Toggle(ctx, nil, org.OrganizerID(), false)
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)

	_, err = env.follow.Toggle(ctx, env.organizerSession(t, "Chess"), org.OrganizerID(), false)
	assert.ErrorIs(t, err, errorz.ErrForbidden)

	_, err = env.follow.Toggle(ctx, env.student(t), "00000000-0000-0000-0000-000000000000", false)
	assert.ErrorIs(t, err, errorz.ErrNotFound)
}
