package domain

import (
	"github.com/yungbote/ismaspace-backend/internal/domain/learning"
	"github.com/yungbote/ismaspace-backend/internal/domain/user"
)

const (
	ProgressEventCompleted = learning.ProgressEventCompleted
	ProgressEventReopened  = learning.ProgressEventReopened
)

type (
	User = user.User

	Topic          = learning.Topic
	TopicSummary   = learning.TopicSummary
	Lesson         = learning.Lesson
	LessonView     = learning.LessonView
	ProgressRecord = learning.ProgressRecord
	ProgressEntry  = learning.ProgressEntry
	ProgressEvent  = learning.ProgressEvent
	Stats          = learning.Stats
)

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Topic{},
		&Lesson{},
		&ProgressRecord{},
		&ProgressEvent{},
	}
}
