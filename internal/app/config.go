package app

import (
	"strings"
	"time"

	"github.com/yungbote/ismaspace-backend/internal/data/db"
	"github.com/yungbote/ismaspace-backend/internal/http/middleware"
	"github.com/yungbote/ismaspace-backend/internal/observability"
	"github.com/yungbote/ismaspace-backend/internal/pkg/envutil"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
	"github.com/yungbote/ismaspace-backend/internal/realtime/bus"
)

type Config struct {
	Port   string
	AppEnv string

	DB          db.Config
	SeedOnStart bool
	// DefaultUserID is the identity used when a request names none.
	DefaultUserID uint

	CORSAllowedOrigins []string

	Redis bus.RedisConfig

	MetricsEnabled bool
	MetricsAddr    string

	// MetricsScrapeInterval is the db/redis collector tick.
	MetricsScrapeInterval time.Duration

	Otel observability.OtelConfig

	ShutdownTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	appEnv := envutil.String("APP_ENV", "development", log)

	defaultUser := envutil.Int("DEFAULT_USER_ID", 1, log)
	if defaultUser < 1 {
		log.Warn("DEFAULT_USER_ID must be positive, using 1", "value", defaultUser)
		defaultUser = 1
	}

	otelEnabled := envutil.Bool("OTEL_ENABLED", false, log)
	sampleRatio := float64(envutil.Int("OTEL_SAMPLE_PERCENT", 100, log)) / 100

	return Config{
		Port:   envutil.String("PORT", "3001", log),
		AppEnv: appEnv,

		DB: db.Config{
			Driver:           envutil.String("DB_DRIVER", db.DriverSQLite, log),
			SQLitePath:       envutil.String("SQLITE_PATH", "database.sqlite", log),
			DatabaseURL:      envutil.String("DATABASE_URL", "", log),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost", log),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432", log),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres", log),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", "", log),
			PostgresName:     envutil.String("POSTGRES_NAME", "ismaspace", log),
			SlowThreshold:    envutil.Seconds("DB_SLOW_QUERY_SECONDS", time.Second, log),
		},
		SeedOnStart:   envutil.Bool("SEED_ON_START", true, log),
		DefaultUserID: uint(defaultUser),

		CORSAllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", middleware.DefaultAllowedOrigins),

		Redis: bus.RedisConfig{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", log),
			DB:       envutil.Int("REDIS_DB", 0, log),
			Channel:  envutil.String("REDIS_CHANNEL", "progress", log),
		},

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", false, log),
		MetricsAddr:    envutil.String("METRICS_ADDR", "", log),

		MetricsScrapeInterval: envutil.Seconds("METRICS_SCRAPE_SECONDS", 10*time.Second, log),

		Otel: observability.OtelConfig{
			Enabled:     otelEnabled,
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "ismaspace-backend", log),
			Environment: appEnv,
			Version:     envutil.String("APP_VERSION", "dev", log),
			Exporter:    strings.ToLower(envutil.String("OTEL_EXPORTER", "stdout", log)),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", "", log),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", true, log),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "", log)),
			SampleRatio: sampleRatio,
		},

		ShutdownTimeout: envutil.Seconds("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second, log),
	}
}
