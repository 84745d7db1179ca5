package learning

import (
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
	"github.com/yungbote/ismaspace-backend/internal/domain/learning"
	"github.com/yungbote/ismaspace-backend/internal/pkg/dbctx"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
)

type ProgressRepo interface {
	// Toggle flips completed_at for the pair in one statement and reports the
	// resulting state. A missing row is created completed at now.
	Toggle(dbc dbctx.Context, userID, lessonID uint, now time.Time) (bool, error)

	GetByUserAndLesson(dbc dbctx.Context, userID, lessonID uint) (*types.ProgressRecord, error)
	ListByUser(dbc dbctx.Context, userID uint) ([]*types.ProgressRecord, error)
	// CompletedLessonIDs returns the user's completed lesson ids among lessonIDs.
	CompletedLessonIDs(dbc dbctx.Context, userID uint, lessonIDs []uint) (map[uint]bool, error)
	// CountCompleted counts the user's records with a non-null completed_at.
	CountCompleted(dbc dbctx.Context, userID uint) (int, error)
	CountByUserAndLesson(dbc dbctx.Context, userID, lessonID uint) (int, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return &progressRepo{db: db, log: baseLog.With("repo", "ProgressRepo")}
}

// The conflict target is idx_progress_user_lesson. Postgres and SQLite both
// resolve the CASE against the stored row, so concurrent toggles of one pair
// serialize on the row lock and each observes the previous result.
const toggleSQL = `
INSERT INTO ` + learning.ProgressTable + ` (user_id, lesson_id, completed_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (user_id, lesson_id) DO UPDATE SET
	completed_at = CASE WHEN ` + learning.ProgressTable + `.completed_at IS NULL THEN excluded.completed_at ELSE NULL END,
	updated_at = excluded.updated_at
RETURNING CASE WHEN completed_at IS NULL THEN 0 ELSE 1 END AS completed`

type toggleResult struct {
	Completed int
}

func (r *progressRepo) Toggle(dbc dbctx.Context, userID, lessonID uint, now time.Time) (bool, error) {
	now = now.UTC()
	var res []toggleResult
	if err := dbc.Conn(r.db).Raw(toggleSQL, userID, lessonID, now, now, now).Scan(&res).Error; err != nil {
		return false, err
	}
	if len(res) != 1 {
		return false, gorm.ErrRecordNotFound
	}
	return res[0].Completed == 1, nil
}

func (r *progressRepo) GetByUserAndLesson(dbc dbctx.Context, userID, lessonID uint) (*types.ProgressRecord, error) {
	var out []*types.ProgressRecord
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *progressRepo) ListByUser(dbc dbctx.Context, userID uint) ([]*types.ProgressRecord, error) {
	var out []*types.ProgressRecord
	if err := dbc.Conn(r.db).
		Where("user_id = ?", userID).
		Order("lesson_id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *progressRepo) CompletedLessonIDs(dbc dbctx.Context, userID uint, lessonIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(lessonIDs))
	if len(lessonIDs) == 0 {
		return out, nil
	}
	var ids []uint
	if err := dbc.Conn(r.db).
		Model(&types.ProgressRecord{}).
		Where("user_id = ? AND lesson_id IN ? AND completed_at IS NOT NULL", userID, lessonIDs).
		Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *progressRepo) CountCompleted(dbc dbctx.Context, userID uint) (int, error) {
	var n int64
	if err := dbc.Conn(r.db).
		Model(&types.ProgressRecord{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *progressRepo) CountByUserAndLesson(dbc dbctx.Context, userID, lessonID uint) (int, error) {
	var n int64
	if err := dbc.Conn(r.db).
		Model(&types.ProgressRecord{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}
