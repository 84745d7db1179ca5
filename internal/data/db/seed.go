package db

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/ismaspace-backend/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Topics []CatalogTopic `yaml:"topics"`
	Users  []CatalogUser  `yaml:"users"`
}

type CatalogTopic struct {
	ID          uint            `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Lessons     []CatalogLesson `yaml:"lessons"`
}

type CatalogLesson struct {
	ID          uint   `yaml:"id"`
	Order       int    `yaml:"order"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Media       string `yaml:"media"`
	Draft       bool   `yaml:"draft"`
}

type CatalogUser struct {
	ID                uint   `yaml:"id"`
	ExternalReference string `yaml:"external_reference"`
	DisplayName       string `yaml:"display_name"`
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(catalogYAML)
}

func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	seen := map[uint]bool{}
	for _, t := range c.Topics {
		if t.ID == 0 {
			return nil, fmt.Errorf("catalog topic %q has no id", t.Title)
		}
		for _, l := range t.Lessons {
			if l.ID == 0 {
				return nil, fmt.Errorf("catalog lesson %q has no id", l.Title)
			}
			if seen[l.ID] {
				return nil, fmt.Errorf("catalog lesson id %d is duplicated", l.ID)
			}
			seen[l.ID] = true
		}
	}
	return &c, nil
}

// Seed inserts the catalog by id. Rows that already exist are left as is, so
// seeding is safe to repeat.
func Seed(db *gorm.DB, c *Catalog) error {
	if c == nil {
		return nil
	}
	now := time.Now().UTC()
	return db.Transaction(func(tx *gorm.DB) error {
		for _, t := range c.Topics {
			topic := types.Topic{ID: t.ID, Title: t.Title, Description: t.Description, CreatedAt: now, UpdatedAt: now}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&topic).Error; err != nil {
				return fmt.Errorf("seed topic %d: %w", t.ID, err)
			}
			topicID := t.ID
			for _, l := range t.Lessons {
				lesson := types.Lesson{
					ID:             l.ID,
					TopicID:        &topicID,
					Title:          l.Title,
					Description:    l.Description,
					OrderIndex:     l.Order,
					MediaReference: l.Media,
					IsPublished:    !l.Draft,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&lesson).Error; err != nil {
					return fmt.Errorf("seed lesson %d: %w", l.ID, err)
				}
			}
		}
		for _, u := range c.Users {
			user := types.User{ID: u.ID, ExternalReference: u.ExternalReference, DisplayName: u.DisplayName, CreatedAt: now, UpdatedAt: now}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error; err != nil {
				return fmt.Errorf("seed user %d: %w", u.ID, err)
			}
		}
		return syncSequences(tx)
	})
}

// syncSequences moves Postgres serial sequences past explicitly seeded ids.
func syncSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != DriverPostgres {
		return nil
	}
	for _, table := range []string{"topics", "lessons", "users"} {
		q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))`, table, table)
		if err := tx.Exec(q).Error; err != nil {
			return fmt.Errorf("sync %s sequence: %w", table, err)
		}
	}
	return nil
}
