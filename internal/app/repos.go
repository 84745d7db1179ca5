package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/ismaspace-backend/internal/data/repos"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type Repos struct {
	User          repos.UserRepo
	Topic         repos.TopicRepo
	Lesson        repos.LessonRepo
	Progress      repos.ProgressRepo
	ProgressEvent repos.ProgressEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		Topic:         repos.NewTopicRepo(db, log),
		Lesson:        repos.NewLessonRepo(db, log),
		Progress:      repos.NewProgressRepo(db, log),
		ProgressEvent: repos.NewProgressEventRepo(db, log),
	}
}
