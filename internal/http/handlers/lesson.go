package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ismaspace-backend/internal/http/middleware"
	"github.com/yungbote/ismaspace-backend/internal/http/response"
	"github.com/yungbote/ismaspace-backend/internal/services"
)

type LessonHandler struct {
	catalog services.CatalogService
}

func NewLessonHandler(catalog services.CatalogService) *LessonHandler {
	return &LessonHandler{catalog: catalog}
}

// GET /api/lessons
func (h *LessonHandler) ListLessons(c *gin.Context) {
	lessons, err := h.catalog.ListLessons(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GET /api/lessons/:id
func (h *LessonHandler) GetLesson(c *gin.Context) {
	lessonID, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	lesson, err := h.catalog.GetLesson(c.Request.Context(), lessonID, middleware.UserID(c))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}
