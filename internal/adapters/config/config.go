package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	postgresStorage "github.com/Badsnus/cu-events/internal/adapters/database/postgres"
	"github.com/Badsnus/cu-events/internal/adapters/database/redis"
	"github.com/Badsnus/cu-events/internal/domain/utils/location"
	"github.com/Badsnus/cu-events/pkg/logger"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const envPrefix = "CU_EVENTS"

type Config struct {
	Database   *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	// CU_EVENTS_SERVICE_DATABASE_HOST overrides service.database.host
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
	}
}

func setDefaults() {
	viper.SetDefault("settings.timezone", "UTC")
	viper.SetDefault("settings.logs-dir", "logs")

	viper.SetDefault("http.address", ":8080")
	viper.SetDefault("http.request-timeout", 30*time.Second)
	viper.SetDefault("http.shutdown-timeout", 15*time.Second)
	viper.SetDefault("http.allowed-origins", []string{"http://localhost:5173"})

	viper.SetDefault("auth.issuer", "cu-events")
	viper.SetDefault("auth.token-ttl", 7*24*time.Hour)

	viper.SetDefault("cache.driver", "redis")
	viper.SetDefault("cache.ttl", 5*time.Minute)
	viper.SetDefault("cache.local-ttl", 30*time.Second)

	viper.SetDefault("storage.root", "data")
	viper.SetDefault("storage.poster-max-width", 1600)

	viper.SetDefault("notifications.list-limit", 50)
	viper.SetDefault("notifications.delivery-interval", 30*time.Second)
	viper.SetDefault("notifications.delivery-batch", 100)

	viper.SetDefault("service.database.sslmode", "disable")
	viper.SetDefault("service.redis.cache-db", 0)
	viper.SetDefault("service.redis.sessions-db", 1)
	viper.SetDefault("service.redis.key-prefix", "cu-events:")
	viper.SetDefault("service.email.provider", "none")
}

func Get() *Config {
	initConfig()

	if _, err := location.Load(viper.GetString("settings.timezone")); err != nil {
		panic(err)
	}

	err := logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		JSON:         viper.GetBool("settings.log-json"),
		Prefix:       viper.GetString("settings.instance"),
		TimeLocation: location.Location(),
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
	})
	if err != nil {
		panic(err)
	}

	gormConfig := &gorm.Config{TranslateError: true}
	if viper.GetBool("settings.debug") {
		gormConfig.Logger = gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=%s TimeZone=UTC",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		viper.GetString("service.database.sslmode"),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	errMigrate := database.AutoMigrate(postgresStorage.Migrations...)
	if errMigrate != nil {
		logger.Log.Panicf("Failed to migrate database: %v", errMigrate)
	}

	redisClient, err := redis.New(redis.Options{
		Host:       viper.GetString("service.redis.host"),
		Port:       viper.GetString("service.redis.port"),
		Password:   viper.GetString("service.redis.password"),
		CacheDB:    viper.GetInt("service.redis.cache-db"),
		SessionsDB: viper.GetInt("service.redis.sessions-db"),
		KeyPrefix:  viper.GetString("service.redis.key-prefix"),
	})
	if err != nil {
		logger.Log.Panicf("Failed to connect to redis: %v", err)
	} else {
		logger.Log.Info("Successfully connected to redis")
	}

	var dialer *gomail.Dialer
	if viper.GetString("service.email.provider") == "smtp" {
		dialer = gomail.NewDialer(
			viper.GetString("service.smtp.host"),
			viper.GetInt("service.smtp.port"),
			viper.GetString("service.smtp.login"),
			viper.GetString("service.smtp.password"),
		)
	}

	return &Config{
		Database:   database,
		Redis:      redisClient,
		SMTPDialer: dialer,
	}
}
