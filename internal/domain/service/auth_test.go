package service

import (
	"context"
	"testing"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(env *testEnv, revocations *fakeRevocations) *AuthService {
	return NewAuthService(logger.Nop(), env.profiles, env.organizers, revocations, "test-secret", "cu-events", time.Hour, env.clock.NowFunc())
}

func TestAuthService_SignUpSignIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuth(env, newFakeRevocations())

	session, err := auth.SignUp(ctx, dto.SignUpInput{
		Email:    "Ann@Campus.edu",
		Password: "correct horse",
		FullName: "Ann",
		Role:     string(entity.Student),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "ann@campus.edu", session.User.Email)
	assert.True(t, session.IsStudent())
	assert.WithinDuration(t, env.clock.Now().Add(time.Hour), session.ExpiresAt, time.Second)

	_, err = auth.SignUp(ctx, dto.SignUpInput{Email: "ann@campus.edu", Password: "another one", Role: "student"})
	assert.ErrorIs(t, err, errorz.ErrConflict)

	signedIn, err := auth.SignIn(ctx, dto.SignInInput{Email: "ann@campus.edu", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, session.UserID(), signedIn.UserID())

	_, err = auth.SignIn(ctx, dto.SignInInput{Email: "ann@campus.edu", Password: "wrong horse"})
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)

	_, err = auth.SignIn(ctx, dto.SignInInput{Email: "nobody@campus.edu", Password: "correct horse"})
	assert.ErrorIs(t, err, errorz.ErrInvalidCredentials)
}

func TestAuthService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	revocations := newFakeRevocations()
	auth := newAuth(env, revocations)

	session, err := auth.SignUp(ctx, dto.SignUpInput{Email: "org@campus.edu", Password: "password1", Role: string(entity.Organizer)})
	require.NoError(t, err)
	assert.Nil(t, session.OrganizerProfile)

	resolved, err := auth.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.UserID(), resolved.UserID())
	assert.Equal(t, session.TokenID, resolved.TokenID)
	assert.Empty(t, resolved.OrganizerID())

	organizer, err := env.organizer.Create(ctx, resolved, dto.OrganizerInput{Name: "Debate Club"})
	require.NoError(t, err)

	refreshed, err := auth.Refresh(ctx, resolved)
	require.NoError(t, err)
	assert.Equal(t, organizer.ID, refreshed.OrganizerID())
	assert.Equal(t, session.Token, refreshed.Token)

	_, err = auth.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)

	other := NewAuthService(logger.Nop(), env.profiles, env.organizers, revocations, "other-secret", "cu-events", time.Hour, env.clock.NowFunc())
	_, err = other.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)
}

func TestAuthService_SignOutAndExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	revocations := newFakeRevocations()
	auth := newAuth(env, revocations)

	first, err := auth.SignUp(ctx, dto.SignUpInput{Email: "bo@campus.edu", Password: "password1", Role: "student"})
	require.NoError(t, err)

	env.clock.Advance(15 * time.Minute)
	require.NoError(t, auth.SignOut(ctx, first))
	assert.Equal(t, 45*time.Minute, revocations.revoked[first.TokenID])

	_, err = auth.Resolve(ctx, first.Token)
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)

	second, err := auth.SignIn(ctx, dto.SignInInput{Email: "bo@campus.edu", Password: "password1"})
	require.NoError(t, err)
	_, err = auth.Resolve(ctx, second.Token)
	require.NoError(t, err)

	env.clock.Advance(2 * time.Hour)
	_, err = auth.Resolve(ctx, second.Token)
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)

	assert.ErrorIs(t, auth.SignOut(ctx, nil), errorz.ErrUnauthenticated)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := newAuth(env, newFakeRevocations())

	session := env.student(t)
	name := "Cleo"
	chatID := int64(1234)
	optIn := true

	profile, err := auth.UpdateProfile(ctx, session, dto.ProfileUpdate{
		FullName:           &name,
		TelegramChatID:     &chatID,
		EmailNotifications: &optIn,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cleo", profile.FullName)
	assert.Equal(t, chatID, profile.TelegramChatID)
	assert.True(t, profile.EmailNotifications)
	assert.Equal(t, session.User.Email, profile.Email)

	_, err = auth.UpdateProfile(ctx, nil, dto.ProfileUpdate{FullName: &name})
	assert.ErrorIs(t, err, errorz.ErrUnauthenticated)
}
