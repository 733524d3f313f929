package tag

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
	tags := rg.Group("/tags", authMW)
	tags.GET("", h.list)
	tags.POST("", h.create)
	tags.PUT("/:id", h.rename)
	tags.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	tags, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取标签失败", err)
		return
	}
	response.OK(c, tags)
}

func (h *Handler) create(c *gin.Context) {
	var dto nameDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tag, err := h.svc.Create(middleware.CurrentUserID(c), dto.Name)
	if err != nil {
		response.InternalError(c, "创建标签失败", err)
		return
	}
	response.Created(c, tag)
}

func (h *Handler) rename(c *gin.Context) {
	var dto nameDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tag, err := h.svc.Rename(middleware.CurrentUserID(c), c.Param("id"), dto.Name)
	if err != nil {
		if errors.Is(err, ErrTagNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, "更新标签失败", err)
		return
	}
	response.OK(c, tag)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id")); err != nil {
		if errors.Is(err, ErrTagNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, "删除标签失败", err)
		return
	}
	response.Message(c, "标签已删除")
}
