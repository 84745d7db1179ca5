package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/ismaspace-backend/internal/http/handlers"
	httpMW "github.com/yungbote/ismaspace-backend/internal/http/middleware"
	"github.com/yungbote/ismaspace-backend/internal/http/response"
	"github.com/yungbote/ismaspace-backend/internal/observability"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log           *logger.Logger
	Metrics       *observability.Metrics
	TracingName   string
	AllowOrigins  []string
	DefaultUserID uint
	ResolveUser   httpMW.UserResolver

	HealthHandler   *httpH.HealthHandler
	TopicHandler    *httpH.TopicHandler
	LessonHandler   *httpH.LessonHandler
	ProgressHandler *httpH.ProgressHandler
	RealtimeHandler *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingName != "" {
		r.Use(otelgin.Middleware(cfg.TracingName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	r.NoRoute(func(c *gin.Context) {
		response.AbortError(c, http.StatusNotFound, "not_found", "route not found")
	})

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	if cfg.HealthHandler != nil {
		api.GET("/health", cfg.HealthHandler.APIHealth)
	}

	learner := api.Group("/")
	{
		learner.Use(httpMW.ResolveIdentity(cfg.DefaultUserID, cfg.ResolveUser))

		// Topics
		if cfg.TopicHandler != nil {
			learner.GET("/topics", cfg.TopicHandler.ListTopics)
			learner.GET("/topics/:id", cfg.TopicHandler.GetTopic)
			learner.GET("/topics/:id/lessons", cfg.TopicHandler.ListTopicLessons)
		}

		// Lessons
		if cfg.LessonHandler != nil {
			learner.GET("/lessons", cfg.LessonHandler.ListLessons)
			learner.GET("/lessons/:id", cfg.LessonHandler.GetLesson)
		}

		// Progress
		if cfg.ProgressHandler != nil {
			learner.GET("/progress", cfg.ProgressHandler.GetProgress)
			learner.GET("/progress/stats", cfg.ProgressHandler.GetStats)
			learner.PATCH("/progress/toggle", cfg.ProgressHandler.Toggle)
			learner.POST("/lessons/:id/toggle", cfg.ProgressHandler.ToggleLesson)
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			learner.GET("/progress/stream", cfg.RealtimeHandler.ProgressStream)
		}
	}

	return r
}
