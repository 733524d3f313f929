package user

import (
	"errors"

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
	users := rg.Group("/users")
	users.POST("/register", h.register)
	users.POST("/login", h.login)
	users.GET("/profile", authMW, h.profile)
	users.PUT("/profile", authMW, h.updateProfile)
	users.GET("/find/:email", h.find)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, ErrPasswordMismatch) || errors.Is(err, ErrUserExists) {
			response.BadRequest(c, err.Error())
			return
		}
		// The uniqueness pre-check can race; the index catches it.
		if database.IsDuplicateKeyError(err) {
			response.BadRequest(c, ErrUserExists.Error())
			return
		}
		response.InternalError(c, "注册失败，请稍后再试", err)
		return
	}
	response.Created(c, result)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Login(&dto)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(c, err.Error())
			return
		}
		response.InternalError(c, "服务器错误", err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) profile(c *gin.Context) {
	user, err := h.svc.Profile(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, "获取用户资料失败", err)
		return
	}
	response.OK(c, user)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var dto ProfileUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.svc.UpdateProfile(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.InternalError(c, "更新用户资料失败", err)
		return
	}
	response.OK(c, gin.H{"message": "个人资料更新成功", "user": user})
}

func (h *Handler) find(c *gin.Context) {
	user, err := h.svc.FindByEmail(c.Param("email"))
	if err != nil {
		response.InternalError(c, "Server error", err)
		return
	}
	if user == nil {
		response.NotFoundMsg(c, "User not found")
		return
	}
	response.OK(c, gin.H{"message": "User found", "userId": user.ID})
}
