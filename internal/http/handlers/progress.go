package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/http/middleware"
	"github.com/yungbote/ismaspace-backend/internal/http/response"
	"github.com/yungbote/ismaspace-backend/internal/services"
)

type ProgressHandler struct {
	progress services.ProgressService
}

func NewProgressHandler(progress services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

type toggleRequest struct {
	LessonID uint `json:"lessonId"`
	UserID   uint `json:"userId"`
}

type toggleResponse struct {
	Success   bool `json:"success"`
	Completed bool `json:"completed"`
	LessonID  uint `json:"lessonId"`
}

// GET /api/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	ov, err := h.progress.Overview(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// GET /api/progress/stats
func (h *ProgressHandler) GetStats(c *gin.Context) {
	st, err := h.progress.ComputeStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// PATCH /api/progress/toggle
// body: { "lessonId": 1, "userId": 1 }
func (h *ProgressHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAppError(c, domainagg.Validation("http", "invalid request body"))
		return
	}
	if req.LessonID == 0 {
		response.RespondAppError(c, domainagg.Validation("http", "lessonId is required"))
		return
	}
	userID := req.UserID
	if userID == 0 {
		userID = middleware.UserID(c)
	}
	h.toggle(c, userID, req.LessonID)
}

// POST /api/lessons/:id/toggle
func (h *ProgressHandler) ToggleLesson(c *gin.Context) {
	lessonID, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	h.toggle(c, middleware.UserID(c), lessonID)
}

func (h *ProgressHandler) toggle(c *gin.Context, userID, lessonID uint) {
	completed, err := h.progress.ToggleCompletion(c.Request.Context(), userID, lessonID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, toggleResponse{Success: true, Completed: completed, LessonID: lessonID})
}
