package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
)

// StatusFor maps an error code to its HTTP status.
func StatusFor(code domainagg.ErrorCode) int {
	switch code {
	case domainagg.CodeValidation:
		return http.StatusBadRequest
	case domainagg.CodeNotFound:
		return http.StatusNotFound
	case domainagg.CodeUnpublishedLesson, domainagg.CodeConflict:
		return http.StatusConflict
	case domainagg.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// RespondAppError writes err as an envelope. 5xx responses carry a fixed
// message; the cause only goes to the log.
func RespondAppError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	if code == "" {
		code = domainagg.CodeInternal
	}
	status := StatusFor(code)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		msg := "internal server error"
		if code == domainagg.CodeStoreUnavailable {
			msg = "service temporarily unavailable"
		}
		RespondError(c, status, string(code), errors.New(msg))
		return
	}
	msg := err.Error()
	var appErr *domainagg.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	RespondError(c, status, string(code), errors.New(msg))
}
