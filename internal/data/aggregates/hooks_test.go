package aggregates

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
	"github.com/yungbote/ismaspace-backend/internal/observability"
)

func TestStatusOf(t *testing.T) {
	cases := map[string]error{
		"ok":                 nil,
		"not_found":          domainagg.NotFound("op", "missing"),
		"unpublished_lesson": domainagg.NewError(domainagg.CodeUnpublishedLesson, "op", "draft", nil),
		"internal":           errors.New("boom"),
	}
	for want, err := range cases {
		if got := StatusOf(err); got != want {
			t.Fatalf("StatusOf(%v): want=%s got=%s", err, want, got)
		}
	}
}

func TestObservabilityHooks(t *testing.T) {
	if _, ok := NewObservabilityHooks(nil).(noopHooks); !ok {
		t.Fatalf("nil metrics should yield noop hooks")
	}
	m := observability.New()
	h := NewObservabilityHooks(m)
	h.ObserveOperation(" progress.toggle ", "ok", 3*time.Millisecond)
	h.IncConflict("progress.toggle")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	for _, want := range []string{
		`ism_service_operations_total{op="progress.toggle",status="ok"} 1`,
		`ism_service_conflicts_total{op="progress.toggle"} 1`,
	} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, buf.String())
		}
	}
}
