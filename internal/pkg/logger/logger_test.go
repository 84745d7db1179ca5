package logger

import "testing"

func TestSanitizeKVsRedactsAndHashes(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"api_key", "sk-123",
		"external_reference", "default_user",
		"lesson_id", 3,
	})
	if len(out) != 6 {
		t.Fatalf("len: want=6 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("api_key: want redacted, got=%v", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || len(hashed) != len("hash:")+12 {
		t.Fatalf("external_reference: want hash, got=%v", out[3])
	}
	if out[5] != 3 {
		t.Fatalf("lesson_id: want passthrough, got=%v", out[5])
	}
}

func TestSanitizeKVsHashesOnlyExternalIdentity(t *testing.T) {
	out := sanitizeKVs([]interface{}{"telegram_id", "12345", "user_id", uint(7)})
	if s, ok := out[1].(string); !ok || len(s) < 5 || s[:5] != "hash:" {
		t.Fatalf("telegram_id: want hash, got=%v", out[1])
	}
	if out[3] != uint(7) {
		t.Fatalf("user_id: want passthrough, got=%v", out[3])
	}
}

func TestSanitizeKVsOddLength(t *testing.T) {
	out := sanitizeKVs([]interface{}{"lesson_id", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "test"} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("component", "test").Debug("hello", "lesson_id", 1)
	}
}
