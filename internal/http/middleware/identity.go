package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ismaspace-backend/internal/http/response"
	"github.com/yungbote/ismaspace-backend/internal/pkg/ctxutil"
)

const headerUserID = "X-User-Id"

// UserResolver reports whether a user id names an existing learner.
type UserResolver func(ctx context.Context, userID uint) error

// ResolveIdentity places the acting user on the request context. The id comes
// from the X-User-Id header, then the userId query parameter, then
// defaultUserID. Explicit ids are checked with resolve when it is non-nil, so
// an unknown learner is rejected before any handler runs.
func ResolveIdentity(defaultUserID uint, resolve UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(headerUserID))
		if raw == "" {
			raw = strings.TrimSpace(c.Query("userId"))
		}
		rd := &ctxutil.RequestData{UserID: defaultUserID}
		if raw != "" {
			id, err := ParseID(raw)
			if err != nil {
				response.AbortError(c, http.StatusBadRequest, "validation", "invalid user id")
				return
			}
			rd = &ctxutil.RequestData{UserID: id, Explicit: true}
		}
		if rd.Explicit && resolve != nil {
			if err := resolve(c.Request.Context(), rd.UserID); err != nil {
				response.RespondAppError(c, err)
				c.Abort()
				return
			}
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// ParseID accepts a positive base-10 integer.
func ParseID(raw string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, strconv.ErrRange
	}
	return uint(n), nil
}

// UserID returns the id placed by ResolveIdentity, or zero.
func UserID(c *gin.Context) uint {
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		return rd.UserID
	}
	return 0
}
