package organizer

import (
	"net/http"

	"github.com/Badsnus/cu-events/cmd/app"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/response"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/service"
	"github.com/Badsnus/cu-events/internal/domain/utils/validator"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	logger    *types.Logger
	validator *validator.Validator

	organizerService *service.OrganizerService
	eventService     *service.EventService
	followService    *service.FollowService
}

func New(a *app.App) *Handler {
	return &Handler{
		logger:           a.Logger.Named("http.organizers"),
		validator:        a.Validator,
		organizerService: a.Services.Organizers,
		eventService:     a.Services.Events,
		followService:    a.Services.Follows,
	}
}

type followState struct {
	IsFollowing bool   `json:"is_following"`
	Message     string `json:"message,omitempty"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (h *Handler) Setup(r chi.Router) {
	r.Route("/organizers", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/me", h.mine)
		r.Get("/me/events", h.myEvents)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Put("/", h.update)
			r.Get("/events", h.events)
			r.Get("/followers/count", h.followerCount)

			r.Get("/follow", h.followStatus)
			r.Post("/follow", h.toggleFollow)
			r.Put("/follow", h.follow)
			r.Delete("/follow", h.unfollow)
		})
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	organizers, err := h.organizerService.List(r.Context())
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewOrganizersFromEntities(organizers))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in dto.OrganizerInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	organizer, err := h.organizerService.Create(r.Context(), middlewares.SessionFrom(r.Context()), in)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, dto.NewOrganizerFromEntity(*organizer))
}

func (h *Handler) mine(w http.ResponseWriter, r *http.Request) {
	organizer, err := h.organizerService.Mine(r.Context(), middlewares.SessionFrom(r.Context()))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewOrganizerFromEntity(*organizer))
}

func (h *Handler) myEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListMine(r.Context(), middlewares.SessionFrom(r.Context()))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewEventsFromEntities(events))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	organizer, err := h.organizerService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewOrganizerFromEntity(*organizer))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in dto.OrganizerInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	organizer, err := h.organizerService.Update(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewOrganizerFromEntity(*organizer))
}

func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListByOrganizer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewEventsFromEntities(events))
}

func (h *Handler) followerCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.followService.FollowerCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, countResponse{Count: count})
}

func (h *Handler) followStatus(w http.ResponseWriter, r *http.Request) {
	following, err := h.followService.IsFollowing(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, followState{IsFollowing: following})
}

// toggleFollow takes the state the client last rendered and flips it.
func (h *Handler) toggleFollow(w http.ResponseWriter, r *http.Request) {
	var in followState
	if err := response.Decode(r, &in, nil); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	result, err := h.followService.Toggle(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"), in.IsFollowing)
	h.writeFollow(w, r, result, err)
}

func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	result, err := h.followService.Follow(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	h.writeFollow(w, r, result, err)
}

func (h *Handler) unfollow(w http.ResponseWriter, r *http.Request) {
	result, err := h.followService.Unfollow(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	h.writeFollow(w, r, result, err)
}

func (h *Handler) writeFollow(w http.ResponseWriter, r *http.Request, result dto.FollowResult, err error) {
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, followState{IsFollowing: result.Following, Message: result.Message})
}
