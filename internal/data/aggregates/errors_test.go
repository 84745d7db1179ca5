package aggregates

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/ismaspace-backend/internal/domain/aggregates"
)

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", fmt.Errorf("load lesson: %w", gorm.ErrRecordNotFound))
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_StoreUnavailable(t *testing.T) {
	cases := []error{
		ErrStoreUnavailable,
		driver.ErrBadConn,
		context.DeadlineExceeded,
		&pgconn.PgError{Code: "08006"},
		&pgconn.PgError{Code: "57P01"},
		errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"),
		errors.New("sql: database is closed"),
	}
	for _, in := range cases {
		if err := MapError("op", in); !domainagg.IsCode(err, domainagg.CodeStoreUnavailable) {
			t.Fatalf("%v: expected store_unavailable, got %q", in, domainagg.CodeOf(err))
		}
	}
}

func TestMapError_Conflict(t *testing.T) {
	for _, in := range []error{
		&pgconn.PgError{Code: "23505"},
		errors.New("UNIQUE constraint failed: progress.user_id, progress.lesson_id"),
	} {
		if err := MapError("op", in); !domainagg.IsCode(err, domainagg.CodeConflict) {
			t.Fatalf("%v: expected conflict, got %q", in, domainagg.CodeOf(err))
		}
	}
}

func TestMapError_PassthroughDomainError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeUnpublishedLesson, "op", "lesson 5 is not published", nil)
	if out := MapError("other", in); out != in {
		t.Fatalf("expected passthrough domain error")
	}
	wrapped := fmt.Errorf("ctx: %w", in)
	if out := MapError("other", wrapped); !domainagg.IsCode(out, domainagg.CodeUnpublishedLesson) {
		t.Fatalf("expected wrapped code to survive, got %q", domainagg.CodeOf(out))
	}
}

func TestMapError_Internal(t *testing.T) {
	if MapError("op", nil) != nil {
		t.Fatalf("nil in, nil out")
	}
	if err := MapError("op", errors.New("syntax error near RETURNING")); !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal, got %q", domainagg.CodeOf(err))
	}
}
