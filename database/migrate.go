package database

import (
	"fmt"

	"github.com/catalog-admin/logging"
	"github.com/catalog-admin/models"
	"gorm.io/gorm"
)

// Models lists every table owned by the catalog, in dependency order.
// Join tables (category_genre, category_video, genre_video) come from the many2many tags.
func Models() []interface{} {
	return []interface{}{
		&models.Category{},
		&models.Genre{},
		&models.CastMember{},
		&models.Video{},
	}
}

// Migrate migrates the database schema
func Migrate(db *gorm.DB) error {
	logging.Info().Msg("migrating database schema")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logging.Info().Msg("database schema migrated")
	return nil
}
