package realtime

import "fmt"

type SSEEvent string

const (
	SSEEventProgressToggled SSEEvent = "ProgressToggled"
)

type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// ProgressToggledData carries the new state only; subscribers refetch stats.
type ProgressToggledData struct {
	UserID    uint `json:"user_id"`
	LessonID  uint `json:"lesson_id"`
	Completed bool `json:"completed"`
}

// UserChannel is the per-learner channel name.
func UserChannel(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}
