package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DEFAULT_USER_ID", "1")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--sqlite-path", dbPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestProgressctlScenario(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "progress.sqlite")

	if out, err := run(t, dbPath, "migrate"); err != nil || !strings.Contains(out, "migrated (sqlite)") {
		t.Fatalf("migrate: %q %v", out, err)
	}
	for i := 0; i < 2; i++ {
		if out, err := run(t, dbPath, "seed"); err != nil || !strings.Contains(out, "seeded") {
			t.Fatalf("seed #%d: %q %v", i, out, err)
		}
	}

	out, err := run(t, dbPath, "lessons")
	if err != nil {
		t.Fatalf("lessons: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 4 || !strings.HasPrefix(lines[0], "1\t") {
		t.Fatalf("lessons output: %q", out)
	}

	if out, _ := run(t, dbPath, "stats", "--user", "1"); strings.TrimSpace(out) != `{"total":4,"completed":0,"percentage":0}` {
		t.Fatalf("initial stats: %q", out)
	}
	if out, err := run(t, dbPath, "toggle", "--user", "1", "--lesson", "1"); err != nil || !strings.Contains(out, "completed=true") {
		t.Fatalf("toggle: %q %v", out, err)
	}
	if out, _ := run(t, dbPath, "stats"); strings.TrimSpace(out) != `{"total":4,"completed":1,"percentage":25}` {
		t.Fatalf("stats after toggle: %q", out)
	}
	if out, err := run(t, dbPath, "toggle", "--lesson", "1"); err != nil || !strings.Contains(out, "completed=false") {
		t.Fatalf("second toggle: %q %v", out, err)
	}
	if out, _ := run(t, dbPath, "progress"); !strings.HasPrefix(out, "1\t-") {
		t.Fatalf("progress: %q", out)
	}

	if _, err := run(t, dbPath, "toggle", "--lesson", "999"); err == nil {
		t.Fatalf("unknown lesson should fail")
	}
	if _, err := run(t, dbPath, "toggle"); err == nil {
		t.Fatalf("missing --lesson should fail")
	}
}
