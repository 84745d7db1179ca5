package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/yungbote/ismaspace-backend/internal/data/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/data/repos"
	types "github.com/yungbote/ismaspace-backend/internal/domain"
	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/domain/learning"
	"github.com/yungbote/ismaspace-backend/internal/observability"
	"github.com/yungbote/ismaspace-backend/internal/pkg/ctxutil"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

const (
	opListProgress = "progress.list"
	opComputeStats = "progress.stats"
	opToggle       = "progress.toggle"
	opOverview     = "progress.overview"
)

// ProgressService owns per-user lesson completion. Stats are recomputed from
// the store on every call; nothing is cached.
type ProgressService interface {
	ListProgress(ctx context.Context, userID uint) ([]types.ProgressEntry, error)
	ComputeStats(ctx context.Context, userID uint) (types.Stats, error)
	// ToggleCompletion flips the pair and returns the new state. Unknown
	// users/lessons are not_found, unpublished lessons unpublished_lesson.
	ToggleCompletion(ctx context.Context, userID, lessonID uint) (bool, error)
	Overview(ctx context.Context, userID uint) (*Overview, error)
}

type Overview struct {
	Progress []types.ProgressEntry `json:"progress"`
	Stats    types.Stats           `json:"stats"`
}

// ToggleCounter counts toggles by resulting state.
type ToggleCounter interface {
	IncToggle(completed bool)
}

type progressService struct {
	log      *logger.Logger
	tx       aggregates.TxRunner
	users    repos.UserRepo
	lessons  repos.LessonRepo
	progress repos.ProgressRepo
	events   repos.ProgressEventRepo
	notifier ProgressNotifier

	hooks   aggregates.Hooks
	toggles ToggleCounter
	now     func() time.Time
}

type ProgressOption func(*progressService)

func WithClock(now func() time.Time) ProgressOption {
	return func(s *progressService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithMetrics(m *observability.Metrics) ProgressOption {
	return func(s *progressService) {
		if m == nil {
			return
		}
		s.hooks = aggregates.NewObservabilityHooks(m)
		s.toggles = m
	}
}

func NewProgressService(
	baseLog *logger.Logger,
	tx aggregates.TxRunner,
	users repos.UserRepo,
	lessons repos.LessonRepo,
	progress repos.ProgressRepo,
	events repos.ProgressEventRepo,
	notifier ProgressNotifier,
	opts ...ProgressOption,
) ProgressService {
	s := &progressService{
		log:      baseLog.With("service", "ProgressService"),
		tx:       tx,
		users:    users,
		lessons:  lessons,
		progress: progress,
		events:   events,
		notifier: notifier,
		hooks:    aggregates.NoopHooks(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *progressService) ListProgress(ctx context.Context, userID uint) (out []types.ProgressEntry, err error) {
	err = s.observe(ctx, opListProgress, userID, func(ctx context.Context) error {
		out, err = s.listProgress(dbctx.From(ctx), userID)
		return err
	})
	return out, err
}

func (s *progressService) listProgress(dbc dbctx.Context, userID uint) ([]types.ProgressEntry, error) {
	if err := s.requireUser(dbc, opListProgress, userID); err != nil {
		return nil, err
	}
	rows, err := s.progress.ListByUser(dbc, userID)
	if err != nil {
		return nil, aggregates.MapError(opListProgress, err)
	}
	out := make([]types.ProgressEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, types.ProgressEntry{LessonID: r.LessonID, CompletedAt: r.CompletedAt})
	}
	return out, nil
}

func (s *progressService) ComputeStats(ctx context.Context, userID uint) (out types.Stats, err error) {
	err = s.observe(ctx, opComputeStats, userID, func(ctx context.Context) error {
		out, err = s.computeStats(dbctx.From(ctx), userID)
		return err
	})
	return out, err
}

func (s *progressService) computeStats(dbc dbctx.Context, userID uint) (types.Stats, error) {
	if err := s.requireUser(dbc, opComputeStats, userID); err != nil {
		return types.Stats{}, err
	}
	total, err := s.lessons.CountPublished(dbc)
	if err != nil {
		return types.Stats{}, aggregates.MapError(opComputeStats, err)
	}
	completed, err := s.progress.CountCompleted(dbc, userID)
	if err != nil {
		return types.Stats{}, aggregates.MapError(opComputeStats, err)
	}
	return learning.NewStats(completed, total), nil
}

func (s *progressService) ToggleCompletion(ctx context.Context, userID, lessonID uint) (completed bool, err error) {
	err = s.observe(ctx, opToggle, userID, func(ctx context.Context) error {
		trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("lesson.id", int64(lessonID)))
		completed, err = s.toggle(ctx, userID, lessonID)
		return err
	})
	return completed, err
}

func (s *progressService) toggle(ctx context.Context, userID, lessonID uint) (bool, error) {
	if userID == 0 {
		return false, domainagg.Validation(opToggle, "user id is required")
	}
	if lessonID == 0 {
		return false, domainagg.Validation(opToggle, "lesson id is required")
	}
	now := s.now().UTC()

	var completed bool
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if err := s.requireUser(dbc, opToggle, userID); err != nil {
			return err
		}
		lesson, err := s.lessons.GetByID(dbc, lessonID)
		if err != nil {
			return aggregates.MapError(opToggle, err)
		}
		if lesson == nil {
			return domainagg.NotFound(opToggle, "lesson %d not found", lessonID)
		}
		if !lesson.IsPublished {
			return domainagg.NewError(domainagg.CodeUnpublishedLesson, opToggle, fmt.Sprintf("lesson %d is not published", lessonID), nil)
		}

		completed, err = s.progress.Toggle(dbc, userID, lessonID, now)
		if err != nil {
			return aggregates.MapError(opToggle, err)
		}
		if err := s.events.Append(dbc, s.newEvent(dbc.Ctx, userID, lessonID, completed, now)); err != nil {
			return aggregates.MapError(opToggle, err)
		}
		return nil
	})
	if err != nil {
		if domainagg.IsCode(err, domainagg.CodeConflict) {
			s.hooks.IncConflict(opToggle)
		}
		return false, aggregates.MapError(opToggle, err)
	}

	if s.toggles != nil {
		s.toggles.IncToggle(completed)
	}
	s.log.Debug("Lesson completion toggled", "user_id", userID, "lesson_id", lessonID, "completed", completed)
	if s.notifier != nil {
		s.notifier.ProgressToggled(ctx, userID, lessonID, completed)
	}
	return completed, nil
}

func (s *progressService) newEvent(ctx context.Context, userID, lessonID uint, completed bool, at time.Time) *types.ProgressEvent {
	kind := types.ProgressEventReopened
	if completed {
		kind = types.ProgressEventCompleted
	}
	meta := map[string]string{}
	if td := ctxutil.GetTraceData(ctx); td != nil {
		if td.RequestID != "" {
			meta["request_id"] = td.RequestID
		}
		if td.TraceID != "" {
			meta["trace_id"] = td.TraceID
		}
	}
	var data datatypes.JSON
	if len(meta) > 0 {
		if raw, err := json.Marshal(meta); err == nil {
			data = datatypes.JSON(raw)
		}
	}
	return &types.ProgressEvent{
		UserID:     userID,
		LessonID:   lessonID,
		Kind:       kind,
		OccurredAt: at,
		Data:       data,
	}
}

func (s *progressService) Overview(ctx context.Context, userID uint) (out *Overview, err error) {
	err = s.observe(ctx, opOverview, userID, func(ctx context.Context) error {
		var (
			entries []types.ProgressEntry
			stats   types.Stats
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			entries, err = s.listProgress(dbctx.From(gctx), userID)
			return err
		})
		g.Go(func() error {
			var err error
			stats, err = s.computeStats(dbctx.From(gctx), userID)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}
		out = &Overview{Progress: entries, Stats: stats}
		return nil
	})
	return out, err
}

func (s *progressService) requireUser(dbc dbctx.Context, op string, userID uint) error {
	if userID == 0 {
		return domainagg.Validation(op, "user id is required")
	}
	ok, err := s.users.Exists(dbc, userID)
	if err != nil {
		return aggregates.MapError(op, err)
	}
	if !ok {
		return domainagg.NotFound(op, "user %d not found", userID)
	}
	return nil
}

func (s *progressService) observe(ctx context.Context, op string, userID uint, fn func(ctx context.Context) error) error {
	ctx, span := observability.Tracer().Start(ctx, op, trace.WithAttributes(attribute.Int64("user.id", int64(userID))))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.hooks.ObserveOperation(op, aggregates.StatusOf(err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(domainagg.CodeOf(err)))
	}
	return err
}
