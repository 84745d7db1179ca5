package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ismaspace-backend/internal/http/middleware"
	"github.com/yungbote/ismaspace-backend/internal/http/response"
	"github.com/yungbote/ismaspace-backend/internal/services"
)

type TopicHandler struct {
	catalog services.CatalogService
}

func NewTopicHandler(catalog services.CatalogService) *TopicHandler {
	return &TopicHandler{catalog: catalog}
}

// GET /api/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics, err := h.catalog.ListTopics(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, topics)
}

// GET /api/topics/:id
func (h *TopicHandler) GetTopic(c *gin.Context) {
	topicID, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	topic, err := h.catalog.GetTopic(c.Request.Context(), topicID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, topic)
}

// GET /api/topics/:id/lessons
func (h *TopicHandler) ListTopicLessons(c *gin.Context) {
	topicID, err := pathID(c, "id")
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	lessons, err := h.catalog.ListTopicLessons(c.Request.Context(), topicID, middleware.UserID(c))
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}
