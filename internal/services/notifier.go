package services

import (
	"context"

	"github.com/yungbote/ismaspace-backend/internal/realtime"
)

type ProgressNotifier interface {
	ProgressToggled(ctx context.Context, userID, lessonID uint, completed bool)
}

type progressNotifier struct {
	emit SSEEmitter
}

func NewProgressNotifier(emit SSEEmitter) ProgressNotifier {
	return &progressNotifier{emit: emit}
}

func (n *progressNotifier) ProgressToggled(ctx context.Context, userID, lessonID uint, completed bool) {
	if n == nil || n.emit == nil || userID == 0 {
		return
	}
	n.emit.Emit(context.WithoutCancel(ctx), realtime.SSEMessage{
		Channel: realtime.UserChannel(userID),
		Event:   realtime.SSEEventProgressToggled,
		Data: realtime.ProgressToggledData{
			UserID:    userID,
			LessonID:  lessonID,
			Completed: completed,
		},
	})
}
