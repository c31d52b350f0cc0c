package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/minipost/internal/repository"
	"github.com/d60-Lab/minipost/internal/service"
	"github.com/d60-Lab/minipost/pkg/response"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

// Signup 注册用户
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body credentialsRequest true "邮箱与密码"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.authService.Signup(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.BadRequest(c, "email already registered")
			return
		}
		h.storageError(c, err)
		return
	}
	response.Success(c, gin.H{"msg": "user created"})
}

// Login 登录并签发 token
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body credentialsRequest true "邮箱与密码"
// @Success 200 {object} response.Response{data=map[string]string}
// @Failure 400 {object} response.Response
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, "invalid credentials")
			return
		}
		h.storageError(c, err)
		return
	}
	response.Success(c, gin.H{"token": token})
}

func (h *Handler) storageError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrStorageUnavailable) {
		response.ServiceUnavailable(c, "storage unavailable")
		return
	}
	response.InternalError(c, err)
}
