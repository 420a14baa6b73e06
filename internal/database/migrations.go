package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

type indexSpec struct {
	model   string
	name    string
	columns string
}

// listingIndexes back the owner and category scans used by the listing endpoints.
var listingIndexes = []indexSpec{
	{"projects", "idx_projects_user_created", "user_id, created_at"},
	{"templates", "idx_templates_public_category", "is_public, category"},
	{"components", "idx_components_public_category", "is_public, category"},
}

// AddIndexes adds the composite listing indexes that struct tags do not express
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range listingIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Printf("Index %s already exists, skipping", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.model, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.model, idx.columns)
	}

	return nil
}
