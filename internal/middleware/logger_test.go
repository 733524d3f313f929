package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRecordsQueryAndOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/notes/search", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "owner-alice")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/notes/search?query=milk", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["query"] != "query=milk" {
		t.Fatalf("query field = %v", fields["query"])
	}
	if fields["owner"] != "owner-alice" {
		t.Fatalf("owner field = %v", fields["owner"])
	}
	if fields["path"] != "/notes/search" {
		t.Fatalf("path field = %v", fields["path"])
	}
}

func TestLoggerOmitsEmptyFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["query"]; ok {
		t.Fatal("query field present for a query-less request")
	}
	if _, ok := fields["owner"]; ok {
		t.Fatal("owner field present for an unauthenticated request")
	}
}
