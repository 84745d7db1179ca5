package learning

import (
	"gorm.io/gorm"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type ProgressEventRepo interface {
	Append(dbc dbctx.Context, ev *types.ProgressEvent) error
	ListByUserAndLesson(dbc dbctx.Context, userID, lessonID uint) ([]*types.ProgressEvent, error)
}

type progressEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressEventRepo(db *gorm.DB, baseLog *logger.Logger) ProgressEventRepo {
	return &progressEventRepo{db: db, log: baseLog.With("repo", "ProgressEventRepo")}
}

func (r *progressEventRepo) Append(dbc dbctx.Context, ev *types.ProgressEvent) error {
	if ev == nil {
		return nil
	}
	return dbc.Conn(r.db).Create(ev).Error
}

func (r *progressEventRepo) ListByUserAndLesson(dbc dbctx.Context, userID, lessonID uint) ([]*types.ProgressEvent, error) {
	var out []*types.ProgressEvent
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
