package category

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inknote/core/internal/middleware"
	"github.com/inknote/core/internal/pkg/response"
)

type nameDTO struct {
	Name string `json:"name" binding:"required"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	categories := rg.Group("/categories", authMW)
	categories.GET("", h.list)
	categories.POST("", h.create)
	categories.PUT("/:id", h.rename)
	categories.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	categories, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取分类失败", err)
		return
	}
	response.OK(c, categories)
}

func (h *Handler) create(c *gin.Context) {
	var dto nameDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, err := h.svc.Create(middleware.CurrentUserID(c), dto.Name)
	if err != nil {
		response.InternalError(c, "创建分类失败", err)
		return
	}
	response.Created(c, category)
}

func (h *Handler) rename(c *gin.Context) {
	var dto nameDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, err := h.svc.Rename(middleware.CurrentUserID(c), c.Param("id"), dto.Name)
	if err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, "更新分类失败", err)
		return
	}
	response.OK(c, category)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, "删除分类失败", err)
		return
	}
	response.Message(c, "分类已删除")
}
