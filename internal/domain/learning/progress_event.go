package learning

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProgressEventCompleted = "completed"
	ProgressEventReopened  = "reopened"
)

// ProgressEvent is the append-only audit trail of toggles. Stats never read it.
type ProgressEvent struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint           `gorm:"column:user_id;not null;index:idx_progress_events_user_lesson,priority:1" json:"user_id"`
	LessonID   uint           `gorm:"column:lesson_id;not null;index:idx_progress_events_user_lesson,priority:2" json:"lesson_id"`
	Kind       string         `gorm:"column:kind;not null" json:"kind"`
	OccurredAt time.Time      `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Data       datatypes.JSON `gorm:"column:data" json:"data,omitempty"`
}

func (ProgressEvent) TableName() string { return "progress_events" }
