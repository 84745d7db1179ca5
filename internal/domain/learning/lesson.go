package learning

import "time"

// Lesson is created at seed time and is immutable during normal operation.
// Ordering is order_index ascending, ties broken by id.
type Lesson struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TopicID        *uint  `gorm:"column:topic_id;index" json:"topic_id,omitempty"`
	Topic          *Topic `gorm:"foreignKey:TopicID;references:ID" json:"-"`
	Title          string `gorm:"column:title;not null" json:"title"`
	Description    string `gorm:"column:description;type:text" json:"description"`
	OrderIndex     int    `gorm:"column:order_index;not null;default:0;index:idx_lessons_order,priority:1" json:"order_index"`
	MediaReference string `gorm:"column:media_reference" json:"media_reference"`
	IsPublished    bool   `gorm:"column:is_published;not null" json:"is_published"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "lessons" }

// LessonView is a lesson as seen by one learner.
type LessonView struct {
	Lesson
	TopicTitle  string `json:"topic_title,omitempty"`
	IsCompleted bool   `json:"is_completed"`
}
