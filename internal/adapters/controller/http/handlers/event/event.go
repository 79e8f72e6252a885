package event

import (
	"net/http"
	"strconv"

	"github.com/Badsnus/cu-events/cmd/app"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/response"
	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/Badsnus/cu-events/internal/domain/service"
	"github.com/Badsnus/cu-events/internal/domain/utils/validator"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	logger    *types.Logger
	validator *validator.Validator

	eventService     *service.EventService
	discoveryService *service.DiscoveryService
	rsvpService      *service.RsvpService
	exportService    *service.ExportService
}

func New(a *app.App) *Handler {
	return &Handler{
		logger:           a.Logger.Named("http.events"),
		validator:        a.Validator,
		eventService:     a.Services.Events,
		discoveryService: a.Services.Discovery,
		rsvpService:      a.Services.Rsvps,
		exportService:    a.Services.Export,
	}
}

type lifecycleResponse struct {
	Event    *dto.Event `json:"event,omitempty"`
	Notified bool       `json:"notified"`
	Message  string     `json:"message"`
}

type postResponse struct {
	Post     dto.EventPost `json:"post"`
	Notified bool          `json:"notified"`
	Message  string        `json:"message"`
}

type rsvpResponse struct {
	Status  dto.RsvpState `json:"status"`
	Message string        `json:"message,omitempty"`
}

func (h *Handler) Setup(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Put("/", h.update)
			r.Delete("/", h.delete)
			r.Post("/cancel", h.cancel)

			r.Get("/posts", h.posts)
			r.Post("/posts", h.createPost)

			r.Get("/rsvp-count", h.rsvpCount)
			r.Get("/rsvp", h.rsvpStatus)
			r.Post("/rsvp", h.toggleRsvp)
			r.Put("/rsvp", h.setRsvp)
			r.Delete("/rsvp", h.removeRsvp)
			r.Get("/rsvps", h.rsvps)
			r.Get("/rsvps.xlsx", h.rsvpsExport)

			r.Get("/qr.png", h.qr)
		})
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query, filter, err := parseListQuery(r)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	events, err := h.discoveryService.Discover(r.Context(), middlewares.SessionFrom(r.Context()), query, filter)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewEventsFromEntities(events))
}

func parseListQuery(r *http.Request) (dto.EventQuery, dto.EventFilter, error) {
	values := r.URL.Query()
	fields := make(map[string]string)

	query := dto.EventQuery{
		EventType:   entity.EventType(values.Get("event_type")),
		OrganizerID: values.Get("organizer_id"),
	}
	if query.EventType != "" && !query.EventType.Valid() {
		fields["event_type"] = "Unknown event type"
	}

	filter := dto.EventFilter{Search: values.Get("search")}

	flags := map[string]*bool{
		"show_archived": &query.ShowArchived,
		"only_followed": &filter.OnlyFollowed,
		"only_rsvpd":    &filter.OnlyRsvpd,
	}
	for name, dst := range flags {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fields[name] = "Must be true or false"
			continue
		}
		*dst = v
	}

	if len(fields) > 0 {
		return query, filter, errorz.NewValidationError(fields)
	}
	return query, filter, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in dto.EventInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	event, err := h.eventService.Create(r.Context(), middlewares.SessionFrom(r.Context()), in)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, dto.NewEventFromEntity(*event))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewEventFromEntity(*event))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in dto.EventInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	event, result, err := h.eventService.Update(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newLifecycleResponse(event, result))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	event, result, err := h.eventService.Cancel(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newLifecycleResponse(event, result))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.eventService.Delete(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, newLifecycleResponse(nil, result))
}

func (h *Handler) posts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.eventService.Posts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewPostsFromEntities(posts))
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var in dto.PostInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	post, result, err := h.eventService.CreatePost(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"), in)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, postResponse{
		Post:     dto.NewPostsFromEntities([]entity.EventPost{*post})[0],
		Notified: result.Notified,
		Message:  result.Message,
	})
}

func newLifecycleResponse(event *entity.Event, result dto.LifecycleResult) lifecycleResponse {
	resp := lifecycleResponse{Notified: result.Notified, Message: result.Message}
	if event != nil {
		e := dto.NewEventFromEntity(*event)
		resp.Event = &e
	}
	return resp
}
