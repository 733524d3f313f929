package user

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/inknote/core/internal/models"
	"golang.org/x/crypto/bcrypt"
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
	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func registerDTO() *RegisterDTO {
	return &RegisterDTO{
		Name:            "Alice",
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(setupDB(t))

	result, err := svc.Register(registerDTO())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.Token == "" {
		t.Fatal("register returned no token")
	}
	if result.User.Email != "alice@example.com" {
		t.Fatalf("user = %+v", result.User)
	}

	logged, err := svc.Login(&LoginDTO{Email: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.User.ID != result.User.ID {
		t.Fatalf("login user id = %q, want %q", logged.User.ID, result.User.ID)
	}
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc := NewService(setupDB(t))

	dto := registerDTO()
	dto.ConfirmPassword = "other"
	if _, err := svc.Register(dto); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err = %v, want ErrPasswordMismatch", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewService(setupDB(t))

	if _, err := svc.Register(registerDTO()); err != nil {
		t.Fatalf("register: %v", err)
	}

	dup := registerDTO()
	dup.Email = "other@example.com" // same username
	if _, err := svc.Register(dup); !errors.Is(err, ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}

	dup = registerDTO()
	dup.Username = "alice2" // same email
	if _, err := svc.Register(dup); !errors.Is(err, ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewService(setupDB(t))

	if _, err := svc.Register(registerDTO()); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(&LoginDTO{Email: "alice@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(&LoginDTO{Email: "ghost@example.com", Password: "s3cret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db)

	result, err := svc.Register(registerDTO())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.UpdateProfile(result.User.ID, &ProfileUpdateDTO{Username: "alice2"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "alice2" {
		t.Fatalf("username = %q", updated.Username)
	}
	if updated.Email != "alice@example.com" {
		t.Fatalf("email changed unexpectedly: %q", updated.Email)
	}

	// Password update rehashes.
	if _, err := svc.UpdateProfile(result.User.ID, &ProfileUpdateDTO{Password: "newpass"}); err != nil {
		t.Fatalf("update password: %v", err)
	}
	var row models.UserModel
	if err := db.First(&row, "id = ?", result.User.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(row.Password), []byte("newpass")) != nil {
		t.Fatal("stored password is not the new bcrypt hash")
	}
}

func TestFindByEmail(t *testing.T) {
	svc := NewService(setupDB(t))

	if _, err := svc.Register(registerDTO()); err != nil {
		t.Fatalf("register: %v", err)
	}

	found, err := svc.FindByEmail("alice@example.com")
	if err != nil || found == nil {
		t.Fatalf("find: %v, %v", found, err)
	}

	missing, err := svc.FindByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("find missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("found %+v, want nil", missing)
	}
}
