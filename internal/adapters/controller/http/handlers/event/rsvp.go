package event

import (
	"net/http"
	"strings"

	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/response"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) rsvpCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.rsvpService.Count(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, count)
}

func (h *Handler) rsvpStatus(w http.ResponseWriter, r *http.Request) {
	state, err := h.rsvpService.Status(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, rsvpResponse{Status: state})
}

// toggleRsvp applies the status the user tapped: tapping the current status withdraws it.
func (h *Handler) toggleRsvp(w http.ResponseWriter, r *http.Request) {
	var in dto.RsvpInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	result, err := h.rsvpService.Toggle(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"), entity.RsvpStatus(in.Status))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, rsvpResponse{Status: result.State, Message: result.Message})
}

func (h *Handler) setRsvp(w http.ResponseWriter, r *http.Request) {
	var in dto.RsvpInput
	if err := response.Decode(r, &in, h.validator.Struct); err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	result, err := h.rsvpService.Set(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"), entity.RsvpStatus(in.Status))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, rsvpResponse{Status: result.State, Message: result.Message})
}

func (h *Handler) removeRsvp(w http.ResponseWriter, r *http.Request) {
	result, err := h.rsvpService.Remove(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, rsvpResponse{Status: result.State, Message: result.Message})
}

func (h *Handler) rsvps(w http.ResponseWriter, r *http.Request) {
	rsvps, err := h.rsvpService.ListByEvent(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, dto.NewRsvpsFromEntities(rsvps))
}

func (h *Handler) rsvpsExport(w http.ResponseWriter, r *http.Request) {
	event, data, err := h.exportService.Attendees(r.Context(), middlewares.SessionFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.File(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", attendeesFilename(event), data)
}

func (h *Handler) qr(w http.ResponseWriter, r *http.Request) {
	data, err := h.exportService.QR(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.File(w, "image/png", "", data)
}

func attendeesFilename(event *entity.Event) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, event.Title)
	if name == "" {
		name = event.ID
	}
	return name + "_attendees.xlsx"
}
