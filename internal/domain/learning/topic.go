package learning

import "time"

// Topic groups lessons in the catalog.
type Topic struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Topic) TableName() string { return "topics" }

// TopicSummary is a topic with completion counts over its published lessons.
type TopicSummary struct {
	Topic
	LessonCount      int `json:"lesson_count"`
	CompletedLessons int `json:"completed_lessons"`
	Progress         int `json:"progress"`
}
