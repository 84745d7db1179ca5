package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
)

func TestRespondAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", domainagg.Validation("op", "lesson id is required"), http.StatusBadRequest, "validation", "lesson id is required"},
		{"not found", domainagg.NotFound("op", "lesson %d not found", 999), http.StatusNotFound, "not_found", "lesson 999 not found"},
		{"unpublished", domainagg.NewError(domainagg.CodeUnpublishedLesson, "op", "lesson 5 is not published", nil), http.StatusConflict, "unpublished_lesson", "lesson 5 is not published"},
		{"store", domainagg.NewError(domainagg.CodeStoreUnavailable, "op", "dial tcp 10.0.0.1:5432: connection refused", nil), http.StatusServiceUnavailable, "store_unavailable", "service temporarily unavailable"},
		{"plain", errors.New("secret detail"), http.StatusInternalServerError, "internal", "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondAppError(c, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("status: want=%d got=%d", tc.status, rec.Code)
			}
			var body ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tc.code || body.Error.Message != tc.message {
				t.Fatalf("unexpected envelope: %+v", body.Error)
			}
		})
	}
}
