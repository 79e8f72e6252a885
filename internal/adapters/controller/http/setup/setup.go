package setup

import (
	"net/http"

	"github.com/Badsnus/cu-events/cmd/app"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/auth"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/event"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/middlewares"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/notification"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/organizer"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/response"
	"github.com/Badsnus/cu-events/internal/adapters/controller/http/handlers/upload"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
)

func Setup(a *app.App) {
	r := a.Router
	middle := middlewares.New(a)

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middle.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Metrics)
	if timeout := viper.GetDuration("http.request-timeout"); timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   viper.GetStringSlice("http.allowed-origins"),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, response.OK("healthy"))
	})
	r.Handle("/metrics", promhttp.Handler())
	if a.Bucket != nil {
		prefix := "/storage/" + a.Bucket.Name()
		r.Handle(prefix+"/*", http.StripPrefix(prefix, a.Bucket.Handler()))
	}

	// API
	r.Route("/api", func(r chi.Router) {
		r.Use(middle.Session)

		auth.New(a).Setup(r)
		event.New(a).Setup(r)
		organizer.New(a).Setup(r)
		notification.New(a).Setup(r)
		upload.New(a).Setup(r)
	})
}
