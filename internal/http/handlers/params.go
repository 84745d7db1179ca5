package handlers

import (
	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
	httpMW "github.com/yungbote/ismaspace-backend/internal/http/middleware"
)

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := httpMW.ParseID(c.Param(name))
	if err != nil {
		return 0, domainagg.Validation("http", "invalid %s", name)
	}
	return id, nil
}
