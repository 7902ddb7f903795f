package repository

import (
	"testing"

	"github.com/stockpilot/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupKVRepositoryTest(t *testing.T) *GormKVRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		t.Fatalf("migrate store_entries failed: %v", err)
	}
	if err := db.Exec("DELETE FROM store_entries").Error; err != nil {
		t.Fatalf("clean store_entries failed: %v", err)
	}
	return NewKVRepository(db)
}

func TestKVRepositoryGetByKeyMissing(t *testing.T) {
	repo := setupKVRepositoryTest(t)

	entry, err := repo.GetByKey("inventory:none")
	if err != nil {
		t.Fatalf("get missing key failed: %v", err)
	}
	if entry != nil {
		t.Fatalf("missing key should return nil entry, got %+v", entry)
	}
}

func TestKVRepositoryUpsertCreateAndUpdate(t *testing.T) {
	repo := setupKVRepositoryTest(t)

	created, err := repo.Upsert("inventory:catalog", `[{"id":"p1"}]`)
	if err != nil {
		t.Fatalf("create entry failed: %v", err)
	}
	if created.Value != `[{"id":"p1"}]` {
		t.Fatalf("created value mismatch: %s", created.Value)
	}

	updated, err := repo.Upsert("inventory:catalog", `[]`)
	if err != nil {
		t.Fatalf("update entry failed: %v", err)
	}
	if updated.Value != `[]` {
		t.Fatalf("updated value mismatch: %s", updated.Value)
	}

	entry, err := repo.GetByKey("inventory:catalog")
	if err != nil {
		t.Fatalf("get after upsert failed: %v", err)
	}
	if entry == nil || entry.Value != `[]` {
		t.Fatalf("stored value should be overwritten, got %+v", entry)
	}
}

func TestKVRepositoryDelete(t *testing.T) {
	repo := setupKVRepositoryTest(t)

	if _, err := repo.Upsert("inventory:currency", "¥"); err != nil {
		t.Fatalf("create entry failed: %v", err)
	}
	if err := repo.Delete("inventory:currency"); err != nil {
		t.Fatalf("delete entry failed: %v", err)
	}
	entry, err := repo.GetByKey("inventory:currency")
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if entry != nil {
		t.Fatalf("deleted key should return nil entry")
	}
}
