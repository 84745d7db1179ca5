package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
)

func SeedUser(tb testing.TB, tx *gorm.DB, id uint, ref string) *types.User {
	tb.Helper()
	u := &types.User{ID: id, ExternalReference: ref, DisplayName: ref}
	if err := tx.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedTopic(tb testing.TB, tx *gorm.DB, id uint, title string) *types.Topic {
	tb.Helper()
	t := &types.Topic{ID: id, Title: title}
	if err := tx.Create(t).Error; err != nil {
		tb.Fatalf("seed topic: %v", err)
	}
	return t
}

func SeedLesson(tb testing.TB, tx *gorm.DB, id uint, topicID *uint, order int, published bool) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		ID:          id,
		TopicID:     topicID,
		Title:       "lesson",
		OrderIndex:  order,
		IsPublished: published,
	}
	if err := tx.Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}

func SeedProgress(tb testing.TB, tx *gorm.DB, userID, lessonID uint, completedAt *time.Time) *types.ProgressRecord {
	tb.Helper()
	p := &types.ProgressRecord{UserID: userID, LessonID: lessonID, CompletedAt: completedAt}
	if err := tx.Create(p).Error; err != nil {
		tb.Fatalf("seed progress: %v", err)
	}
	return p
}

// Fixture ids shared by repo and service tests.
const (
	DefaultUserID     uint = 1
	OtherUserID       uint = 2
	MainTopicID       uint = 1
	DraftTopicID      uint = 2
	UnpublishedLesson uint = 5
	UnknownLesson     uint = 999
)

// SeedScenario seeds users 1 and 2, published lessons 1-4 in topic 1 and one
// unpublished lesson 5 in topic 2.
func SeedScenario(tb testing.TB, tx *gorm.DB) {
	tb.Helper()
	SeedUser(tb, tx, DefaultUserID, "default_user")
	SeedUser(tb, tx, OtherUserID, "second_user")
	main := SeedTopic(tb, tx, MainTopicID, "main").ID
	draft := SeedTopic(tb, tx, DraftTopicID, "draft").ID
	for i := uint(1); i <= 4; i++ {
		SeedLesson(tb, tx, i, &main, int(i), true)
	}
	SeedLesson(tb, tx, UnpublishedLesson, &draft, 1, false)
}
