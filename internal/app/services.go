package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ismaspace-backend/internal/data/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/observability"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
	"github.com/yungbote/ismaspace-backend/internal/services"
)

type Services struct {
	User     services.UserService
	Catalog  services.CatalogService
	Progress services.ProgressService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, notifier services.ProgressNotifier, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")
	return Services{
		User:    services.NewUserService(log, reposet.User),
		Catalog: services.NewCatalogService(log, reposet.Topic, reposet.Lesson, reposet.Progress),
		Progress: services.NewProgressService(
			log,
			aggregates.NewGormTxRunner(db),
			reposet.User,
			reposet.Lesson,
			reposet.Progress,
			reposet.ProgressEvent,
			notifier,
			services.WithMetrics(metrics),
		),
	}
}
