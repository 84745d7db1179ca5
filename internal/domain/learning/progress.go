package learning

import "time"

const ProgressTable = "progress"

// ProgressRecord is unique per (user_id, lesson_id). A nil CompletedAt means
// the lesson is not completed; rows are never deleted on un-complete.
type ProgressRecord struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint       `gorm:"column:user_id;not null;uniqueIndex:idx_progress_user_lesson,priority:1" json:"user_id"`
	LessonID    uint       `gorm:"column:lesson_id;not null;uniqueIndex:idx_progress_user_lesson,priority:2;index" json:"lesson_id"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (ProgressRecord) TableName() string { return ProgressTable }

func (p *ProgressRecord) Completed() bool { return p != nil && p.CompletedAt != nil }

// ProgressEntry is the read shape of a record.
type ProgressEntry struct {
	LessonID    uint       `json:"lesson_id"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Stats is always derived from the progress table at call time.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// Percent rounds completed/total*100 half-up; zero when total is zero.
func Percent(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	return (200*completed + total) / (2 * total)
}

func NewStats(completed, total int) Stats {
	return Stats{Total: total, Completed: completed, Percentage: Percent(completed, total)}
}
