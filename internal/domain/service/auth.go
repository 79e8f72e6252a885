package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ProfileStorage interface {
	Create(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)
	Get(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)
}

type authOrganizerStorage interface {
	GetByUserID(ctx context.Context, userID string) (*entity.OrganizerProfile, error)
}

type revocationStorage interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	logger *types.Logger

	profiles    ProfileStorage
	organizers  authOrganizerStorage
	revocations revocationStorage

	secret   []byte
	issuer   string
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(
	logger *types.Logger,
	profiles ProfileStorage,
	organizers authOrganizerStorage,
	revocations revocationStorage,
	secret string,
	issuer string,
	tokenTTL time.Duration,
	now func() time.Time,
) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		logger:      logger,
		profiles:    profiles,
		organizers:  organizers,
		revocations: revocations,
		secret:      []byte(secret),
		issuer:      issuer,
		tokenTTL:    tokenTTL,
		now:         now,
	}
}

func (s *AuthService) SignUp(ctx context.Context, in dto.SignUpInput) (*dto.Session, error) {
	if _, err := s.profiles.GetByEmail(ctx, in.Email); err == nil {
		return nil, fmt.Errorf("email %s is already registered: %w", in.Email, errorz.ErrConflict)
	} else if !errors.Is(err, errorz.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Create(ctx, &entity.Profile{
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         entity.Role(in.Role),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infof("profile created (user_id=%s, role=%s)", profile.ID, profile.Role)

	return s.issue(ctx, profile)
}

func (s *AuthService) SignIn(ctx context.Context, in dto.SignInInput) (*dto.Session, error) {
	profile, err := s.profiles.GetByEmail(ctx, in.Email)
	if errors.Is(err, errorz.ErrNotFound) {
		return nil, errorz.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errorz.ErrInvalidCredentials
	}
	return s.issue(ctx, profile)
}

// SignOut revokes the session token for the rest of its lifetime.
func (s *AuthService) SignOut(ctx context.Context, session *dto.Session) error {
	if !session.IsAuthenticated() {
		return errorz.ErrUnauthenticated
	}
	return s.revocations.Revoke(ctx, session.TokenID, session.ExpiresAt.Sub(s.now()))
}

// Resolve turns a bearer token into a session. Invalid, expired and revoked tokens are rejected.
func (s *AuthService) Resolve(ctx context.Context, token string) (*dto.Session, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errorz.ErrUnauthenticated, err)
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: session revoked", errorz.ErrUnauthenticated)
	}

	profile, err := s.profiles.Get(ctx, claims.Subject)
	if errors.Is(err, errorz.ErrNotFound) {
		return nil, fmt.Errorf("%w: profile no longer exists", errorz.ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}

	session, err := s.session(ctx, profile)
	if err != nil {
		return nil, err
	}
	session.Token = token
	session.TokenID = claims.ID
	session.ExpiresAt = claims.ExpiresAt.Time
	return session, nil
}

// Refresh reloads the profile and organizer profile of an existing session.
func (s *AuthService) Refresh(ctx context.Context, session *dto.Session) (*dto.Session, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}
	profile, err := s.profiles.Get(ctx, session.UserID())
	if err != nil {
		return nil, err
	}
	refreshed, err := s.session(ctx, profile)
	if err != nil {
		return nil, err
	}
	refreshed.Token = session.Token
	refreshed.TokenID = session.TokenID
	refreshed.ExpiresAt = session.ExpiresAt
	return refreshed, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, session *dto.Session, update dto.ProfileUpdate) (*entity.Profile, error) {
	if !session.IsAuthenticated() {
		return nil, errorz.ErrUnauthenticated
	}
	profile, err := s.profiles.Get(ctx, session.UserID())
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		profile.FullName = *update.FullName
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = *update.AvatarURL
	}
	if update.TelegramChatID != nil {
		profile.TelegramChatID = *update.TelegramChatID
	}
	if update.EmailNotifications != nil {
		profile.EmailNotifications = *update.EmailNotifications
	}
	return s.profiles.Update(ctx, profile)
}

func (s *AuthService) issue(ctx context.Context, profile *entity.Profile) (*dto.Session, error) {
	now := s.now()
	claims := sessionClaims{
		Role: string(profile.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   profile.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	session, err := s.session(ctx, profile)
	if err != nil {
		return nil, err
	}
	session.Token = token
	session.TokenID = claims.ID
	session.ExpiresAt = claims.ExpiresAt.Time
	return session, nil
}

func (s *AuthService) session(ctx context.Context, profile *entity.Profile) (*dto.Session, error) {
	session := &dto.Session{User: profile}
	if profile.Role != entity.Organizer {
		return session, nil
	}

	organizer, err := s.organizers.GetByUserID(ctx, profile.ID)
	if errors.Is(err, errorz.ErrNotFound) {
		return session, nil
	}
	if err != nil {
		return nil, err
	}
	session.OrganizerProfile = organizer
	return session, nil
}
