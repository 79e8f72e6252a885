package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodySize = 1 << 20

type BaseResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	BaseResponse
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// OK wraps a successful payload.
func OK(message string) BaseResponse {
	return BaseResponse{Ok: true, Message: message}
}

// JSON sends payload with the given status code.
func JSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// File sends a downloadable attachment.
func File(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Error maps err to a status code and a user-facing message. Unknown errors are logged and hidden.
func Error(w http.ResponseWriter, r *http.Request, logger *types.Logger, err error) {
	var validationErr *errorz.ValidationError
	if errors.As(err, &validationErr) {
		JSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "Please fix the highlighted fields",
			Fields: validationErr.Fields,
		})
		return
	}

	code, message := status(err)
	if code == http.StatusInternalServerError {
		logger.Errorf("%s %s failed (request_id=%s): %v", r.Method, r.URL.Path, middleware.GetReqID(r.Context()), err)
	}
	JSON(w, code, ErrorResponse{Error: message})
}

func status(err error) (int, string) {
	switch {
	case errors.Is(err, errorz.ErrUnauthenticated):
		return http.StatusUnauthorized, "Please sign in to continue"
	case errors.Is(err, errorz.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, errorz.ErrNoOrganizerProfile):
		return http.StatusForbidden, "No organizer profile found"
	case errors.Is(err, errorz.ErrForbidden):
		return http.StatusForbidden, "You are not allowed to do this"
	case errors.Is(err, errorz.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, errorz.ErrEventCancelled):
		return http.StatusConflict, "This event has been cancelled"
	case errors.Is(err, errorz.ErrConflict):
		return http.StatusConflict, "Already exists"
	case errors.Is(err, errorz.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, errorz.ErrFileTooLarge.Error()
	case errors.Is(err, errorz.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, errorz.ErrUnsupportedMedia.Error()
	case errors.Is(err, errorz.ErrValidation):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

// Decode reads a JSON body into v and validates it.
func Decode(r *http.Request, v interface{}, validate func(interface{}) error) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := decoder.Decode(v); err != nil {
		return errorz.NewValidationError(map[string]string{"body": "Invalid request payload"})
	}
	if validate == nil {
		return nil
	}
	return validate(v)
}
