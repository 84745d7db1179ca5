package db

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Config{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.sqlite"),
		Silent:     true,
	}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := AutoMigrateAll(s.DB()); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	return s
}

func TestSeedIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := Seed(s.DB(), c); err != nil {
			t.Fatalf("Seed #%d: %v", i+1, err)
		}
	}

	var published int64
	if err := s.DB().Model(&types.Lesson{}).Where("is_published = ?", true).Count(&published).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if published != 4 {
		t.Fatalf("published lessons: want=4 got=%d", published)
	}
	var ids []uint
	s.DB().Model(&types.Lesson{}).Where("is_published = ?", true).Order("order_index, id").Pluck("id", &ids)
	if fmt.Sprint(ids) != "[1 2 3 4]" {
		t.Fatalf("published ids: got=%v", ids)
	}
	var user types.User
	if err := s.DB().First(&user, 1).Error; err != nil {
		t.Fatalf("default user: %v", err)
	}
	if user.ExternalReference != "default_user" {
		t.Fatalf("default user ref: got=%q", user.ExternalReference)
	}
}

func TestUniqueProgressPair(t *testing.T) {
	s := openTestStore(t)
	if err := Seed(s.DB(), mustCatalog(t)); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	rec := types.ProgressRecord{UserID: 1, LessonID: 1}
	if err := s.DB().Create(&rec).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	dup := types.ProgressRecord{UserID: 1, LessonID: 1}
	if err := s.DB().Create(&dup).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate pair")
	}
}

func TestParseCatalogRejectsDuplicates(t *testing.T) {
	raw := []byte("topics:\n  - id: 1\n    lessons:\n      - {id: 1, title: a}\n      - {id: 1, title: b}\n")
	if _, err := ParseCatalog(raw); err == nil || !strings.Contains(err.Error(), "duplicated") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestConfigDSNs(t *testing.T) {
	c := Config{PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u", PostgresPassword: "p@ss", PostgresName: "ismaspace"}
	if got := c.PostgresDSN(); got != "postgres://u:p%40ss@db:5432/ismaspace?sslmode=disable" {
		t.Fatalf("PostgresDSN: got=%q", got)
	}
	c.DatabaseURL = "postgres://x"
	if got := c.PostgresDSN(); got != "postgres://x" {
		t.Fatalf("DatabaseURL override: got=%q", got)
	}
	if got := (Config{SQLitePath: "file:mem?mode=memory"}).SQLiteDSN(); got != "file:mem?mode=memory&_foreign_keys=1&_busy_timeout=5000" {
		t.Fatalf("SQLiteDSN: got=%q", got)
	}
	if _, err := Open(Config{Driver: "mysql"}, nil); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func mustCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	return c
}
