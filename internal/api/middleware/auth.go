package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/minipost/pkg/jwtauth"
	"github.com/d60-Lab/minipost/pkg/logger"
	"github.com/d60-Lab/minipost/pkg/response"
)

const ownerIDKey = "owner_id"

// Auth 校验 token 并把 owner_id 写进 gin context。
// 优先 Authorization: Bearer，兼容 ?token= 查询参数。
// 任何校验失败都是 401，绝不降级为匿名请求。
func Auth(tokens *jwtauth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			logger.Warn("missing token", zap.String("path", c.FullPath()))
			response.Unauthorized(c, "missing token")
			return
		}
		ownerID, err := tokens.Validate(tokenStr)
		if err != nil {
			logger.Warn("token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			if errors.Is(err, jwtauth.ErrExpiredToken) {
				response.Unauthorized(c, "token expired")
				return
			}
			response.Unauthorized(c, "invalid token")
			return
		}
		c.Set(ownerIDKey, ownerID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Query("token")
}

// OwnerID 读取 Auth 中间件写入的用户 id；只在挂了 Auth 的路由内调用
func OwnerID(c *gin.Context) uint64 {
	v, _ := c.Get(ownerIDKey)
	id, _ := v.(uint64)
	return id
}
