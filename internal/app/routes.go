package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inknote/core/internal/middleware"
	"github.com/inknote/core/internal/modules/category"
	"github.com/inknote/core/internal/modules/note"
	"github.com/inknote/core/internal/modules/stats"
	"github.com/inknote/core/internal/modules/tag"
	"github.com/inknote/core/internal/modules/user"
	"github.com/inknote/core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(a.rc.Raw()))
	r.Use(middleware.Idempotence(a.rc.Raw()))

	api := r.Group("/api")

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	noteSvc := note.NewService(db)
	note.NewHandler(noteSvc).RegisterRoutes(api, authMW)

	category.NewHandler(category.NewService(db)).RegisterRoutes(api, authMW)
	tag.NewHandler(tag.NewService(db)).RegisterRoutes(api, authMW)
	stats.NewHandler(stats.NewService(db, noteSvc)).RegisterRoutes(api, authMW)
	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)
}
