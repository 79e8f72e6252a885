package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Badsnus/cu-events/internal/adapters/config"
	"github.com/Badsnus/cu-events/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-events/internal/adapters/database/redis"
	"github.com/Badsnus/cu-events/internal/adapters/database/redis/cache"
	"github.com/Badsnus/cu-events/internal/adapters/notifier/telegram"
	"github.com/Badsnus/cu-events/internal/domain/service"
	"github.com/Badsnus/cu-events/internal/domain/utils/validator"
	"github.com/Badsnus/cu-events/pkg/bucket"
	"github.com/Badsnus/cu-events/pkg/generator"
	"github.com/Badsnus/cu-events/pkg/logger"
	"github.com/Badsnus/cu-events/pkg/logger/types"
	"github.com/Badsnus/cu-events/pkg/sendgrid"
	"github.com/Badsnus/cu-events/pkg/smtp"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const PostersBucket = "event-posters"

type Revocations interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Services struct {
	Auth       *service.AuthService
	Events     *service.EventService
	Discovery  *service.DiscoveryService
	Rsvps      *service.RsvpService
	Follows    *service.FollowService
	Organizers *service.OrganizerService
	Notify     *service.NotifyService
	Posters    *service.PosterService
	Export     *service.ExportService
}

type App struct {
	Router    *chi.Mux
	DB        *gorm.DB
	Redis     *redis.Client
	Cache     *service.QueryCache
	Bucket    *bucket.Local
	Validator *validator.Validator
	Logger    *types.Logger
	Services  Services

	deliveryEnabled bool
}

// Options holds everything Build needs. New fills it from the config, tests fill it by hand.
type Options struct {
	DB          *gorm.DB
	Logger      *types.Logger
	SharedCache cache.Store
	LocalCache  cache.Store
	Broadcaster cache.Broadcaster
	Revocations Revocations
	Email       service.EmailSender
	Telegram    service.TelegramSender
	Bucket      *bucket.Local

	AuthSecret     string
	AuthIssuer     string
	TokenTTL       time.Duration
	CampusDomains  []string
	BaseURL        string
	CacheTTL       time.Duration
	LocalCacheTTL  time.Duration
	PosterMaxWidth uint
	ListLimit      int
	DeliveryBatch  int
	Now            func() time.Time
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}

	posters, err := bucket.NewLocal(
		viper.GetString("storage.root"),
		PostersBucket,
		viper.GetString("http.public-url")+"/storage",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create posters bucket: %w", err)
	}

	opts := Options{
		DB:             cfg.Database,
		Logger:         appLogger,
		Revocations:    cfg.Redis.Sessions,
		Bucket:         posters,
		AuthSecret:     viper.GetString("auth.secret"),
		AuthIssuer:     viper.GetString("auth.issuer"),
		TokenTTL:       viper.GetDuration("auth.token-ttl"),
		CampusDomains:  viper.GetStringSlice("auth.campus-domains"),
		BaseURL:        viper.GetString("http.base-url"),
		CacheTTL:       viper.GetDuration("cache.ttl"),
		LocalCacheTTL:  viper.GetDuration("cache.local-ttl"),
		PosterMaxWidth: viper.GetUint("storage.poster-max-width"),
		ListLimit:      viper.GetInt("notifications.list-limit"),
		DeliveryBatch:  viper.GetInt("notifications.delivery-batch"),
	}
	if opts.AuthSecret == "" {
		return nil, errors.New("auth.secret is required")
	}

	switch viper.GetString("cache.driver") {
	case "redis":
		opts.SharedCache = cfg.Redis.Cache
		opts.Broadcaster = cfg.Redis.Cache
		if opts.LocalCacheTTL > 0 {
			opts.LocalCache = cache.NewMemory(nil)
		}
	case "memory":
		opts.SharedCache = cache.NewMemory(nil)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", viper.GetString("cache.driver"))
	}

	switch viper.GetString("service.email.provider") {
	case "smtp":
		opts.Email = smtp.NewClient(cfg.SMTPDialer, viper.GetString("service.email.from"), viper.GetString("service.smtp.domain"))
	case "sendgrid":
		opts.Email = sendgrid.NewClient(
			viper.GetString("service.sendgrid.api-key"),
			viper.GetString("service.email.from"),
			viper.GetString("service.email.from-name"),
		)
	case "none", "":
	default:
		return nil, fmt.Errorf("unknown email provider %q", viper.GetString("service.email.provider"))
	}

	if token := viper.GetString("service.telegram.token"); token != "" {
		telegramLogger, err := logger.Named("telegram")
		if err != nil {
			return nil, err
		}
		sender, err := telegram.New(telegram.Config{
			Token: token,
			URL:   viper.GetString("service.telegram.url"),
		}, telegramLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to create telegram sender: %w", err)
		}
		opts.Telegram = sender
	}

	a := Build(opts)
	a.Redis = cfg.Redis
	return a, nil
}

// Build wires storages and services on top of the given infrastructure.
func Build(opts Options) *App {
	l := opts.Logger
	if l == nil {
		l = logger.Nop()
	}

	queryCache := service.NewQueryCache(l, opts.SharedCache, opts.LocalCache, opts.Broadcaster, opts.CacheTTL, opts.LocalCacheTTL)

	profileStorage := postgres.NewProfileStorage(opts.DB)
	organizerStorage := postgres.NewOrganizerStorage(opts.DB)
	eventStorage := postgres.NewEventStorage(opts.DB)
	rsvpStorage := postgres.NewRsvpStorage(opts.DB)
	followStorage := postgres.NewFollowStorage(opts.DB)
	postStorage := postgres.NewPostStorage(opts.DB)
	notificationStorage := postgres.NewNotificationStorage(opts.DB)

	notify := service.NewNotifyService(l.Named("notify"), notificationStorage, opts.Email, opts.Telegram, service.NotifyConfig{
		BaseURL:       opts.BaseURL,
		ListLimit:     opts.ListLimit,
		DeliveryBatch: opts.DeliveryBatch,
	}, opts.Now)
	events := service.NewEventService(l.Named("events"), eventStorage, postStorage, notify, queryCache, opts.Now)
	rsvps := service.NewRsvpService(rsvpStorage, eventStorage, queryCache)
	follows := service.NewFollowService(followStorage, organizerStorage, queryCache)

	return &App{
		Router:    chi.NewRouter(),
		DB:        opts.DB,
		Cache:     queryCache,
		Bucket:    opts.Bucket,
		Validator: validator.New(opts.CampusDomains),
		Logger:    l,
		Services: Services{
			Auth:       service.NewAuthService(l.Named("auth"), profileStorage, organizerStorage, opts.Revocations, opts.AuthSecret, opts.AuthIssuer, opts.TokenTTL, opts.Now),
			Events:     events,
			Discovery:  service.NewDiscoveryService(events, follows, rsvps),
			Rsvps:      rsvps,
			Follows:    follows,
			Organizers: service.NewOrganizerService(l.Named("organizers"), organizerStorage, queryCache),
			Notify:     notify,
			Posters:    service.NewPosterService(l.Named("posters"), opts.Bucket, opts.PosterMaxWidth, opts.Now),
			Export:     service.NewExportService(l.Named("export"), eventStorage, rsvpStorage, generator.DefaultQR, opts.BaseURL, opts.Now),
		},
		deliveryEnabled: opts.Email != nil || opts.Telegram != nil,
	}
}

// Start serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (a *App) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if viper.GetBool("settings.logging.log-to-channel") {
		logHook, err := a.Services.Notify.LogHook(
			viper.GetInt64("settings.logging.channel-id"),
			zapcore.Level(viper.GetInt("settings.logging.channel-log-level")),
		)
		if err != nil {
			a.Logger.Errorf("Failed to create notify log hook: %v", err)
		} else {
			logger.SetLogHook(logHook)
		}
	}

	if a.deliveryEnabled {
		a.Services.Notify.StartDeliveryScheduler(ctx, viper.GetDuration("notifications.delivery-interval"))
	}

	go func() {
		if err := a.Cache.Listen(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.Logger.Errorf("Cache invalidation listener stopped: %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              viper.GetString("http.address"),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Infof("HTTP server starting on %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		a.Logger.Info("Shutdown started")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), viper.GetDuration("http.shutdown-timeout"))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Errorf("Graceful shutdown failed: %v", err)
		_ = srv.Close()
	}

	a.close()
	a.Logger.Info("Shutdown complete")
	return serveErr
}

func (a *App) close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Errorf("Failed to close redis: %v", err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			a.Logger.Errorf("Failed to close database: %v", err)
		}
	}
}
