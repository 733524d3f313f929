package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/inknote/core/internal/models"
	"github.com/inknote/core/internal/pkg/jwt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r := gin.New()
	r.GET("/protected", Auth(db), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return r, db
}

func request(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	r, db := setupAuthRouter(t)

	user := models.UserModel{Username: "alice", Email: "a@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := jwt.Sign(user.ID, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	w := request(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != user.ID {
		t.Fatalf("context user id = %q, want %q", w.Body.String(), user.ID)
	}

	// The raw token without the Bearer prefix works too.
	if w := request(r, token); w.Code != http.StatusOK {
		t.Fatalf("raw token status = %d", w.Code)
	}
}

func TestAuthRejectsMissingAndUnknownUsers(t *testing.T) {
	r, _ := setupAuthRouter(t)

	if w := request(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", w.Code)
	}

	// Valid signature but the user row does not exist.
	token, err := jwt.Sign("ghost", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if w := request(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("ghost user status = %d, want 401", w.Code)
	}
}

func TestNormalizeToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer abc":   "abc",
		"  abc  ":      "abc",
		"":             "",
		"Bearer   abc": "abc",
	}
	for in, want := range cases {
		if got := NormalizeToken(in); got != want {
			t.Fatalf("NormalizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}
