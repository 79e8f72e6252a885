package notification

import (
	"net/http"

	"github.com/Badsnus/cu-events/cmd/app"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/response"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/service"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	logger        *types.Logger
	notifyService *service.NotifyService
}

func New(a *app.App) *Handler {
	return &Handler{
		logger:        a.Logger.Named("http.notifications"),
		notifyService: a.Services.Notify,
	}
}

func (h *Handler) Setup(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/unread-count", h.unreadCount)
		r.Post("/read-all", h.readAll)
		r.Post("/{id}/read", h.read)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifyService.List(r.Context(), middlewares.SessionFrom(r.Context()))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewNotificationsFromEntities(notifications))
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifyService.UnreadCount(r.Context(), middlewares.SessionFrom(r.Context()))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) read(w http.ResponseWriter, r *http.Request) {
	if err := h.notifyService.MarkRead(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.OK(""))
}

func (h *Handler) readAll(w http.ResponseWriter, r *http.Request) {
	if err := h.notifyService.MarkAllRead(r.Context(), middlewares.SessionFrom(r.Context())); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.OK(""))
}
