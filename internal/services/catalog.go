package services

import (
	"context"

	"github.com/yungbote/ismaspace-backend/internal/data/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/data/repos"
	types "github.com/yungbote/ismaspace-backend/internal/domain"
	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/domain/learning"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

// CatalogService serves topics and published lessons, annotated with the
// caller's completion state. A zero userID yields no completions.
type CatalogService interface {
	ListTopics(ctx context.Context, userID uint) ([]*types.TopicSummary, error)
	GetTopic(ctx context.Context, topicID uint) (*types.Topic, error)
	ListTopicLessons(ctx context.Context, topicID, userID uint) ([]*types.LessonView, error)
	ListLessons(ctx context.Context, userID uint) ([]*types.LessonView, error)
	GetLesson(ctx context.Context, lessonID, userID uint) (*types.LessonView, error)
}

type catalogService struct {
	log      *logger.Logger
	topics   repos.TopicRepo
	lessons  repos.LessonRepo
	progress repos.ProgressRepo
}

func NewCatalogService(baseLog *logger.Logger, topics repos.TopicRepo, lessons repos.LessonRepo, progress repos.ProgressRepo) CatalogService {
	return &catalogService{
		log:      baseLog.With("service", "CatalogService"),
		topics:   topics,
		lessons:  lessons,
		progress: progress,
	}
}

func (s *catalogService) ListTopics(ctx context.Context, userID uint) ([]*types.TopicSummary, error) {
	const op = "catalog.topics"
	sums, err := s.topics.Summaries(dbctx.From(ctx), userID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	for _, t := range sums {
		t.Progress = learning.Percent(t.CompletedLessons, t.LessonCount)
	}
	return sums, nil
}

func (s *catalogService) GetTopic(ctx context.Context, topicID uint) (*types.Topic, error) {
	const op = "catalog.topic"
	t, err := s.topics.GetByID(dbctx.From(ctx), topicID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if t == nil {
		return nil, domainagg.NotFound(op, "topic %d not found", topicID)
	}
	return t, nil
}

func (s *catalogService) ListTopicLessons(ctx context.Context, topicID, userID uint) ([]*types.LessonView, error) {
	const op = "catalog.topic_lessons"
	dbc := dbctx.From(ctx)
	topic, err := s.topics.GetByID(dbc, topicID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if topic == nil {
		return nil, domainagg.NotFound(op, "topic %d not found", topicID)
	}
	lessons, err := s.lessons.ListPublishedByTopic(dbc, topicID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	views, err := s.annotate(dbc, userID, lessons)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	for _, v := range views {
		v.TopicTitle = topic.Title
	}
	return views, nil
}

func (s *catalogService) ListLessons(ctx context.Context, userID uint) ([]*types.LessonView, error) {
	const op = "catalog.lessons"
	dbc := dbctx.From(ctx)
	lessons, err := s.lessons.ListPublished(dbc)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	views, err := s.annotate(dbc, userID, lessons)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return views, nil
}

// GetLesson hides unpublished lessons behind not_found.
func (s *catalogService) GetLesson(ctx context.Context, lessonID, userID uint) (*types.LessonView, error) {
	const op = "catalog.lesson"
	dbc := dbctx.From(ctx)
	lesson, err := s.lessons.GetByID(dbc, lessonID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if lesson == nil || !lesson.IsPublished {
		return nil, domainagg.NotFound(op, "lesson %d not found", lessonID)
	}
	views, err := s.annotate(dbc, userID, []*types.Lesson{lesson})
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	v := views[0]
	if lesson.Topic != nil {
		v.TopicTitle = lesson.Topic.Title
	}
	return v, nil
}

func (s *catalogService) annotate(dbc dbctx.Context, userID uint, lessons []*types.Lesson) ([]*types.LessonView, error) {
	done := map[uint]bool{}
	if userID != 0 && len(lessons) > 0 {
		ids := make([]uint, 0, len(lessons))
		for _, l := range lessons {
			ids = append(ids, l.ID)
		}
		var err error
		if done, err = s.progress.CompletedLessonIDs(dbc, userID, ids); err != nil {
			return nil, err
		}
	}
	out := make([]*types.LessonView, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, &types.LessonView{Lesson: *l, IsCompleted: done[l.ID]})
	}
	return out, nil
}
