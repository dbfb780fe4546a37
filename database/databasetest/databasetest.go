// Package databasetest opens a migrated SQLite database for store-backed tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"github.com/catalog-admin/database"
	"gorm.io/gorm"
)

// New returns a fresh, migrated database living in the test's temp dir.
// Foreign keys are enforced so join-table integrity behaves like postgres.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "catalog_test.db") + "?_pragma=foreign_keys(1)"
	db, err := database.Connect("sqlite", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}
