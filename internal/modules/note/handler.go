package note

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inknote/core/internal/database"
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
	notes := rg.Group("/notes", authMW)

	// Draft routes must stay ahead of the :id routes.
	notes.POST("/draft", h.saveDraft)
	notes.GET("/draft", h.getDraft)

	notes.GET("", h.list)
	notes.GET("/recent", h.recent)
	notes.GET("/search", h.search)
	notes.POST("", h.create)
	notes.GET("/:id", h.get)
	notes.PUT("/:id", h.update)
	notes.PATCH("/:id", h.update)
	notes.DELETE("/:id", h.delete)
	notes.GET("/:id/history", h.history)
	notes.POST("/:id/restore/:versionId", h.restore)
}

func (h *Handler) list(c *gin.Context) {
	notes, err := h.svc.List(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取笔记失败", err)
		return
	}
	response.OK(c, notes)
}

func (h *Handler) recent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", ""))
	if err != nil {
		limit = 0 // service falls back to the default
	}
	notes, err := h.svc.ListRecent(middleware.CurrentUserID(c), limit)
	if err != nil {
		response.InternalError(c, "获取最近笔记失败", err)
		return
	}
	response.OK(c, notes)
}

func (h *Handler) search(c *gin.Context) {
	notes, err := h.svc.Search(middleware.CurrentUserID(c), c.Query("query"))
	if err != nil {
		response.InternalError(c, "搜索笔记失败", err)
		return
	}
	response.OK(c, notes)
}

func (h *Handler) get(c *gin.Context) {
	n, err := h.svc.GetByID(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.InternalError(c, "获取笔记失败", err)
		return
	}
	if n == nil {
		response.NotFoundMsg(c, ErrNoteNotFound.Error())
		return
	}
	response.OK(c, n)
}

func (h *Handler) create(c *gin.Context) {
	var dto NoteInputDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.InternalError(c, "创建笔记失败", err)
		return
	}
	response.Created(c, n)
}

func (h *Handler) update(c *gin.Context) {
	var dto NoteInputDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	n, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		if database.IsDuplicateKeyError(err) {
			response.BadRequest(c, "更新笔记失败")
			return
		}
		response.InternalError(c, "更新笔记失败", err)
		return
	}
	response.OK(c, n)
}

func (h *Handler) saveDraft(c *gin.Context) {
	var dto NoteInputDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	draft, err := h.svc.SaveDraft(middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.InternalError(c, "保存草稿失败", err)
		return
	}
	response.OK(c, draft)
}

func (h *Handler) getDraft(c *gin.Context) {
	draft, err := h.svc.GetDraft(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "获取草稿失败", err)
		return
	}
	if draft == nil {
		response.OK(c, emptyDraftTemplate())
		return
	}
	response.OK(c, draft)
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := middleware.CurrentUserID(c)
	if err := h.svc.Delete(ownerID, c.Param("id")); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			response.NotFoundMsg(c, "Note not found or user not authorized")
			return
		}
		response.InternalError(c, "Error deleting note", err)
		return
	}

	total, err := h.svc.CountNotes(ownerID)
	if err != nil {
		response.InternalError(c, "Error deleting note", err)
		return
	}
	response.OK(c, gin.H{
		"message":      "Note deleted successfully",
		"updatedStats": gin.H{"totalNotes": total},
	})
}

func (h *Handler) history(c *gin.Context) {
	history, err := h.svc.GetHistory(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, "获取笔记历史失败", err)
		return
	}
	response.OK(c, history)
}

func (h *Handler) restore(c *gin.Context) {
	n, err := h.svc.RestoreVersion(middleware.CurrentUserID(c), c.Param("id"), c.Param("versionId"))
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) || errors.Is(err, ErrVersionNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, "恢复笔记版本失败", err)
		return
	}
	response.OK(c, n)
}
