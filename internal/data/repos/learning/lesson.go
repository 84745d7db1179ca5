package learning

import (
	"gorm.io/gorm"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type LessonRepo interface {
	GetByID(dbc dbctx.Context, id uint) (*types.Lesson, error)
	ListPublished(dbc dbctx.Context) ([]*types.Lesson, error)
	ListPublishedByTopic(dbc dbctx.Context, topicID uint) ([]*types.Lesson, error)
	CountPublished(dbc dbctx.Context) (int, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	repoLog := baseLog.With("repo", "LessonRepo")
	return &lessonRepo{db: db, log: repoLog}
}

// GetByID returns unpublished lessons too; nil, nil when absent.
func (r *lessonRepo) GetByID(dbc dbctx.Context, id uint) (*types.Lesson, error) {
	var out []*types.Lesson
	if err := dbc.Conn(r.db).Preload("Topic").Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *lessonRepo) ListPublished(dbc dbctx.Context) ([]*types.Lesson, error) {
	var out []*types.Lesson
	if err := dbc.Conn(r.db).
		Where("is_published = ?", true).
		Order("order_index ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *lessonRepo) ListPublishedByTopic(dbc dbctx.Context, topicID uint) ([]*types.Lesson, error) {
	var out []*types.Lesson
	if err := dbc.Conn(r.db).
		Where("topic_id = ? AND is_published = ?", topicID, true).
		Order("order_index ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *lessonRepo) CountPublished(dbc dbctx.Context) (int, error) {
	var n int64
	if err := dbc.Conn(r.db).Model(&types.Lesson{}).Where("is_published = ?", true).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
