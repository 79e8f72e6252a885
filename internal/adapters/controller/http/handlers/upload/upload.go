package upload

import (
	"errors"
	"io"
	"net/http"

	"github.com/Badsnus/cu-events/cmd/app"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/response"
	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/service"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/go-chi/chi/v5"
)

// multipart framing on top of the poster itself
const formOverhead = 64 << 10

type Handler struct {
	logger        *types.Logger
	posterService *service.PosterService
}

func New(a *app.App) *Handler {
	return &Handler{
		logger:        a.Logger.Named("http.uploads"),
		posterService: a.Services.Posters,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *Handler) Setup(r chi.Router) {
	r.Post("/uploads/posters", h.poster)
}

func (h *Handler) poster(w http.ResponseWriter, r *http.Request) {
	session := middlewares.SessionFrom(r.Context())
	if !session.IsAuthenticated() {
		response.Error(w, r, h.logger, errorz.ErrUnauthenticated)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxPosterSize+formOverhead)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, r, h.logger, errorz.ErrFileTooLarge)
			return
		}
		response.Error(w, r, h.logger, errorz.NewValidationError(map[string]string{"file": "Please choose an image to upload"}))
		return
	}
	defer file.Close()

	// one byte past the limit is enough to reject it
	data, err := io.ReadAll(io.LimitReader(file, service.MaxPosterSize+1))
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}

	url, err := h.posterService.Upload(r.Context(), session, data)
	if err != nil {
		response.Error(w, r, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, uploadResponse{URL: url})
}
