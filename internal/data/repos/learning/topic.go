package learning

import (
	"gorm.io/gorm"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type TopicRepo interface {
	List(dbc dbctx.Context) ([]*types.Topic, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Topic, error)
	// Summaries counts published lessons per topic and how many of them the
	// user has completed.
	Summaries(dbc dbctx.Context, userID uint) ([]*types.TopicSummary, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (r *topicRepo) List(dbc dbctx.Context) ([]*types.Topic, error) {
	var out []*types.Topic
	if err := dbc.Conn(r.db).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns nil, nil when the topic does not exist.
func (r *topicRepo) GetByID(dbc dbctx.Context, id uint) (*types.Topic, error) {
	var out []*types.Topic
	if err := dbc.Conn(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

type topicSummaryRow struct {
	TopicID          uint
	LessonCount      int
	CompletedLessons int
}

func (r *topicRepo) Summaries(dbc dbctx.Context, userID uint) ([]*types.TopicSummary, error) {
	topics, err := r.List(dbc)
	if err != nil {
		return nil, err
	}
	var rows []topicSummaryRow
	err = dbc.Conn(r.db).
		Table("lessons AS l").
		Select(`l.topic_id AS topic_id,
			COUNT(l.id) AS lesson_count,
			COUNT(p.id) AS completed_lessons`).
		Joins(`LEFT JOIN progress AS p ON p.lesson_id = l.id AND p.user_id = ? AND p.completed_at IS NOT NULL`, userID).
		Where("l.is_published = ? AND l.topic_id IS NOT NULL", true).
		Group("l.topic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	byTopic := make(map[uint]topicSummaryRow, len(rows))
	for _, row := range rows {
		byTopic[row.TopicID] = row
	}
	out := make([]*types.TopicSummary, 0, len(topics))
	for _, t := range topics {
		row := byTopic[t.ID]
		out = append(out, &types.TopicSummary{
			Topic:            *t,
			LessonCount:      row.LessonCount,
			CompletedLessons: row.CompletedLessons,
		})
	}
	return out, nil
}
