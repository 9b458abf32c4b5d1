package db

import (
	"path/filepath"
	"testing"

	"github.com/astrelina/helia/internal/models"
)

func TestOpenSQLiteReopenKeepsDataAndMigrations(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "helia-kp-cache.db")

	first, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	repo := NewKpCacheRepository(first)
	if err := repo.UpsertHistorical([]models.KpIndexEntry{{Date: "2026-06-01", KpIndex: intPtr(4)}}); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	sqlDB, err := first.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close first handle: %v", err)
	}

	second, err := OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("reopen must not re-run applied migrations: %v", err)
	}
	entries, err := NewKpCacheRepository(second).Range("2026-06-01", "2026-06-01")
	if err != nil {
		t.Fatalf("range after reopen: %v", err)
	}
	if len(entries) != 1 || entries[0].KpIndex == nil || *entries[0].KpIndex != 4 {
		t.Fatalf("cached row lost across reopen: %+v", entries)
	}
}
