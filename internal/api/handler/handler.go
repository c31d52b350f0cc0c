package handler

import (
	"github.com/d60-Lab/minipost/internal/service"
)

// Handler 聚合各业务 service，供路由注册
type Handler struct {
	authService service.AuthService
	postService service.PostService
}

func New(authService service.AuthService, postService service.PostService) *Handler {
	return &Handler{authService: authService, postService: postService}
}
