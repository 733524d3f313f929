package tag

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/inknote/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.TagModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCRUDScopedToOwner(t *testing.T) {
	svc := NewService(setupDB(t))

	created, err := svc.Create("alice", "urgent")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Rename("bob", created.ID, "stolen"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("foreign rename err = %v, want ErrTagNotFound", err)
	}

	renamed, err := svc.Rename("alice", created.ID, "later")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "later" {
		t.Fatalf("name = %q", renamed.Name)
	}

	if err := svc.Delete("alice", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete("alice", created.ID); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("second delete err = %v, want ErrTagNotFound", err)
	}
}

func TestListOnlyOwnTags(t *testing.T) {
	svc := NewService(setupDB(t))

	if _, err := svc.Create("alice", "a"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create("bob", "b"); err != nil {
		t.Fatalf("create: %v", err)
	}

	tags, err := svc.List("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "a" {
		t.Fatalf("tags = %+v", tags)
	}
}
