package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureProgressIndexes(db)
}

// EnsureProgressIndexes creates the indexes the tag layer cannot express.
// The (user_id, lesson_id) unique index is the conflict target of the toggle
// upsert, so it is re-asserted here for databases migrated by hand.
func EnsureProgressIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_progress_user_lesson", `CREATE UNIQUE INDEX IF NOT EXISTS idx_progress_user_lesson ON progress(user_id, lesson_id);`},
		{"idx_progress_user_completed", `CREATE INDEX IF NOT EXISTS idx_progress_user_completed ON progress(user_id) WHERE completed_at IS NOT NULL;`},
		{"idx_lessons_published_order", `CREATE INDEX IF NOT EXISTS idx_lessons_published_order ON lessons(is_published, order_index, id);`},
	}
	for _, s := range stmts {
		if err := db.Exec(s.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}
