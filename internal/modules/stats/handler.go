package stats

import (
	"github.com/gin-gonic/gin"
	"github.com/inknote/core/internal/middleware"
	"github.com/inknote/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	stats := rg.Group("/stats", authMW)
	stats.GET("", h.overview)
	stats.GET("/notes", h.notes)
	stats.GET("/categories", h.categories)
	stats.GET("/tags", h.tags)
	stats.GET("/activity", h.activity)
}

func (h *Handler) overview(c *gin.Context) {
	o, err := h.svc.Overview(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取用户统计信息失败", err)
		return
	}
	response.OK(c, o)
}

func (h *Handler) notes(c *gin.Context) {
	o, err := h.svc.NoteStats(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取笔记统计信息失败", err)
		return
	}
	response.OK(c, o)
}

func (h *Handler) categories(c *gin.Context) {
	out, err := h.svc.CategoryStats(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取分类统计信息失败", err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) tags(c *gin.Context) {
	out, err := h.svc.TagStats(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取标签统计信息失败", err)
		return
	}
	response.OK(c, out)
}

func (h *Handler) activity(c *gin.Context) {
	out, err := h.svc.ActivityStats(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取活动统计信息失败", err)
		return
	}
	response.OK(c, out)
}
