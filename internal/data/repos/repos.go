package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/ismaspace-backend/internal/data/repos/learning"
	"github.com/yungbote/ismaspace-backend/internal/data/repos/user"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo

type TopicRepo = learning.TopicRepo
type LessonRepo = learning.LessonRepo
type ProgressRepo = learning.ProgressRepo
type ProgressEventRepo = learning.ProgressEventRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return learning.NewTopicRepo(db, baseLog)
}
func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return learning.NewLessonRepo(db, baseLog)
}
func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return learning.NewProgressRepo(db, baseLog)
}
func NewProgressEventRepo(db *gorm.DB, baseLog *logger.Logger) ProgressEventRepo {
	return learning.NewProgressEventRepo(db, baseLog)
}
