package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(CodeNotFound, "progress.toggle", "lesson 999 not found", nil)
	if got := err.Error(); got != "progress.toggle: lesson 999 not found (not_found)" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := (&Error{Code: CodeInternal}).Error(); got != "internal" {
		t.Fatalf("unexpected bare message: %q", got)
	}
}

func TestCodeSurvivesWrapping(t *testing.T) {
	base := NewError(CodeUnpublishedLesson, "progress.toggle", "lesson 5 is not published", nil)
	wrapped := fmt.Errorf("handler: %w", base)
	if !IsCode(wrapped, CodeUnpublishedLesson) {
		t.Fatalf("expected unpublished_lesson through fmt wrapping")
	}
	rewrapped := Wrap(CodeInternal, "outer", wrapped)
	if CodeOf(rewrapped) != CodeUnpublishedLesson {
		t.Fatalf("Wrap should keep existing code, got %q", CodeOf(rewrapped))
	}
	if !errors.Is(rewrapped, base) {
		t.Fatalf("expected errors.Is to reach the base error")
	}
}

func TestWrapNilAndPlain(t *testing.T) {
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("Wrap(nil) should be nil")
	}
	err := Wrap(CodeStoreUnavailable, "op", errors.New("dial tcp: refused"))
	if CodeOf(err) != CodeStoreUnavailable {
		t.Fatalf("want store_unavailable got %q", CodeOf(err))
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("plain errors carry no code")
	}
}
