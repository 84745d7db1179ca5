package app

import (
	"context"

	"github.com/yungbote/ismaspace-backend/internal/data/db"
	"github.com/yungbote/ismaspace-backend/internal/http"
	httpH "github.com/yungbote/ismaspace-backend/internal/http/handlers"
	"github.com/yungbote/ismaspace-backend/internal/observability"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
	"github.com/yungbote/ismaspace-backend/internal/realtime"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Topic    *httpH.TopicHandler
	Lesson   *httpH.LessonHandler
	Progress *httpH.ProgressHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, store *db.Store, services Services, sseHub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(store),
		Topic:    httpH.NewTopicHandler(services.Catalog),
		Lesson:   httpH.NewLessonHandler(services.Catalog),
		Progress: httpH.NewProgressHandler(services.Progress),
		Realtime: httpH.NewRealtimeHandler(log, sseHub, services.User),
	}
}

func wireServer(log *logger.Logger, cfg Config, services Services, handlers Handlers, metrics *observability.Metrics) *http.Server {
	tracingName := ""
	if cfg.Otel.Enabled {
		tracingName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:           log,
		Metrics:       metrics,
		TracingName:   tracingName,
		AllowOrigins:  cfg.CORSAllowedOrigins,
		DefaultUserID: cfg.DefaultUserID,

		ResolveUser: func(ctx context.Context, userID uint) error {
			_, err := services.User.Resolve(ctx, userID)
			return err
		},

		HealthHandler:   handlers.Health,
		TopicHandler:    handlers.Topic,
		LessonHandler:   handlers.Lesson,
		ProgressHandler: handlers.Progress,
		RealtimeHandler: handlers.Realtime,
	})
}
