package middlewares

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Badsnus/cu-events/cmd/app"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/response"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/Badsnus/cu-events/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type sessionKey struct{}

type requestUserKey struct{}

// requestUser is filled by Session so that middlewares running before it can see the caller.
type requestUser struct {
	id string
}

type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*dto.Session, error)
}

type Handler struct {
	logger  *types.Logger
	session sessionResolver
}

func New(a *app.App) *Handler {
	return &Handler{
		logger:  a.Logger.Named("http"),
		session: a.Services.Auth,
	}
}

// SessionFrom returns the caller's session, nil for anonymous requests.
func SessionFrom(ctx context.Context) *dto.Session {
	session, _ := ctx.Value(sessionKey{}).(*dto.Session)
	return session
}

func WithSession(ctx context.Context, session *dto.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// Session resolves the bearer token into a session. Requests without a token stay anonymous,
// requests with a bad token are rejected.
func (h *Handler) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.JSON(w, http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid authorization header"})
			return
		}

		session, err := h.session.Resolve(r.Context(), token)
		if err != nil {
			response.Error(w, r, h.logger, err)
			return
		}
		if holder, ok := r.Context().Value(requestUserKey{}).(*requestUser); ok {
			holder.id = session.UserID()
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// Logger writes one line per request.
func (h *Handler) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		user := &requestUser{}

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestUserKey{}, user)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		line := "%s %s %d %dB %s (request_id=%s, user_id=%s)"
		args := []interface{}{
			r.Method, r.URL.Path, status, ww.BytesWritten(), time.Since(start),
			middleware.GetReqID(r.Context()), user.id,
		}
		if status >= http.StatusInternalServerError {
			h.logger.Errorf(line, args...)
		} else {
			h.logger.Debugf(line, args...)
		}
	})
}

// Metrics records request count, duration and response size per route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)

		metrics.RequestDuration.WithLabelValues(r.Method, route, code).Observe(time.Since(start).Seconds())
		metrics.RequestTotal.WithLabelValues(r.Method, route, code).Inc()
		metrics.ResponseSize.WithLabelValues(r.Method, route).Observe(float64(ww.BytesWritten()))
	})
}
