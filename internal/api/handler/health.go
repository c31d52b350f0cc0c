package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health 存活探针
// @Summary 健康检查
// @Tags 运维
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
