package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ismaspace-backend/internal/http/middleware"
	"github.com/yungbote/ismaspace-backend/internal/http/response"
	"github.com/yungbote/ismaspace-backend/internal/pkg/logger"
	"github.com/yungbote/ismaspace-backend/internal/realtime"
	"github.com/yungbote/ismaspace-backend/internal/services"
)

type RealtimeHandler struct {
	log   *logger.Logger
	hub   *realtime.SSEHub
	users services.UserService
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.SSEHub, users services.UserService) *RealtimeHandler {
	return &RealtimeHandler{log: log.With("handler", "RealtimeHandler"), hub: hub, users: users}
}

// GET /api/progress/stream
func (h *RealtimeHandler) ProgressStream(c *gin.Context) {
	userID := middleware.UserID(c)
	if h.users != nil {
		if _, err := h.users.Resolve(c.Request.Context(), userID); err != nil {
			response.RespondAppError(c, err)
			return
		}
	} else if userID == 0 {
		response.AbortError(c, http.StatusBadRequest, "validation", "user id is required")
		return
	}

	client := h.hub.NewSSEClient(userID)
	h.hub.AddChannel(client, realtime.UserChannel(userID))
	h.log.Debug("SSE stream open", "user_id", userID, "sse_client_id", client.ID.String())

	h.hub.ServeHTTP(c.Writer, c.Request, client)

	h.hub.CloseClient(client)
}
