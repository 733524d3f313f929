package category

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
	if err := db.AutoMigrate(&models.CategoryModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCRUDScopedToOwner(t *testing.T) {
	svc := NewService(setupDB(t))

	created, err := svc.Create("alice", "work")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Rename("bob", created.ID, "stolen"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("foreign rename err = %v, want ErrCategoryNotFound", err)
	}
	if err := svc.Delete("bob", created.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrCategoryNotFound", err)
	}

	renamed, err := svc.Rename("alice", created.ID, "projects")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "projects" {
		t.Fatalf("name = %q", renamed.Name)
	}

	if err := svc.Delete("alice", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	remaining, err := svc.List("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("list returned %d rows after delete", len(remaining))
	}
}

func TestDuplicateNamesAllowed(t *testing.T) {
	svc := NewService(setupDB(t))

	if _, err := svc.Create("alice", "ideas"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create("alice", "ideas"); err != nil {
		t.Fatalf("second create with same name: %v", err)
	}

	categories, err := svc.List("alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("list = %d rows, want 2", len(categories))
	}
}
