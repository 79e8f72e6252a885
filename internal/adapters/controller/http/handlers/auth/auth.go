package auth

import (
	"net/http"
	"time"

	"github.com/Badsnus/cu-events/cmd/app"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/response"
	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/service"
	"github.com/Badsnus/cu-events/internal/domain/utils/validator"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	logger    *types.Logger
	validator *validator.Validator

	authService   *service.AuthService
	exportService *service.ExportService
}

func New(a *app.App) *Handler {
	return &Handler{
		logger:        a.Logger.Named("http.auth"),
		validator:     a.Validator,
		authService:   a.Services.Auth,
		exportService: a.Services.Export,
	}
}

type sessionResponse struct {
	Token            string         `json:"token"`
	ExpiresAt        time.Time      `json:"expires_at"`
	User             dto.Profile    `json:"user"`
	OrganizerProfile *dto.Organizer `json:"organizer_profile"`
}

type meResponse struct {
	User               dto.Profile    `json:"user"`
	OrganizerProfile   *dto.Organizer `json:"organizer_profile"`
	TelegramChatID     *int64         `json:"telegram_chat_id"`
	EmailNotifications bool           `json:"email_notifications"`
}

func newSessionResponse(session *dto.Session) sessionResponse {
	resp := sessionResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC(),
		User:      dto.NewProfileFromEntity(*session.User),
	}
	if session.OrganizerProfile != nil {
		organizer := dto.NewOrganizerFromEntity(*session.OrganizerProfile)
		resp.OrganizerProfile = &organizer
	}
	return resp
}

func (h *Handler) Setup(r chi.Router) {
	r.Post("/auth/sign-up", h.signUp)
	r.Post("/auth/sign-in", h.signIn)
	r.Post("/auth/sign-out", h.signOut)

	r.Get("/me", h.me)
	r.Patch("/me", h.updateMe)
	r.Get("/me/calendar.ics", h.calendar)
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var in dto.SignUpInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	session, err := h.authService.SignUp(r.Context(), in)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	h.logger.Infof("user signed up (user_id=%s, role=%s)", session.UserID(), session.User.Role)
	response.JSON(w, http.StatusCreated, newSessionResponse(session))
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var in dto.SignInInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	session, err := h.authService.SignIn(r.Context(), in)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newSessionResponse(session))
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.SignOut(r.Context(), middlewares.SessionFrom(r.Context())); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.OK("Signed out"))
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	session := middlewares.SessionFrom(r.Context())
	if !session.IsAuthenticated() {
		response.Error(w, r, h.logger, errorz.ErrUnauthenticated)
		return
	}
	response.JSON(w, http.StatusOK, newMeResponse(session))
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var in dto.ProfileUpdate
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	session := middlewares.SessionFrom(r.Context())
	profile, err := h.authService.UpdateProfile(r.Context(), session, in)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	updated := *session
	updated.User = profile
	response.JSON(w, http.StatusOK, newMeResponse(&updated))
}

func (h *Handler) calendar(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportService.Calendar(r.Context(), middlewares.SessionFrom(r.Context()))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.File(w, "text/calendar; charset=utf-8", "cu-events.ics", data)
}

func newMeResponse(session *dto.Session) meResponse {
	resp := meResponse{
		User:               dto.NewProfileFromEntity(*session.User),
		EmailNotifications: session.User.EmailNotifications,
	}
	if session.User.TelegramChatID != 0 {
		chatID := session.User.TelegramChatID
		resp.TelegramChatID = &chatID
	}
	if session.OrganizerProfile != nil {
		organizer := dto.NewOrganizerFromEntity(*session.OrganizerProfile)
		resp.OrganizerProfile = &organizer
	}
	return resp
}
