package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestConnectAndMigrateSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "catalog_test.db")

	db, err := Connect("sqlite", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// migrations are idempotent
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	for _, table := range []string{"categories", "genres", "cast_members", "videos", "category_genre", "category_video", "genre_video"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s not created", table)
		}
	}

	if err := Ping(context.Background(), db); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	if _, err := Connect("mysql", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if _, err := Connect("sqlite", ""); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}
