package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/minipost/internal/api/middleware"
	"github.com/d60-Lab/minipost/internal/repository"
	"github.com/d60-Lab/minipost/pkg/response"
)

type addPostRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddPost 新增帖子
// @Summary 新增帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body addPostRequest true "帖子内容"
// @Param token query string false "token（也可用 Authorization 头）"
// @Success 200 {object} response.Response{data=map[string]uint64}
// @Failure 401 {object} response.Response
// @Router /add_post [post]
func (h *Handler) AddPost(c *gin.Context) {
	var req addPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ownerID := middleware.OwnerID(c)
	postID, err := h.postService.Add(c.Request.Context(), ownerID, req.Text)
	if err != nil {
		h.storageError(c, err)
		return
	}
	response.Success(c, gin.H{"postID": postID})
}

// GetPosts 查询当前用户全部帖子（走读穿缓存）
// @Summary 查询帖子
// @Tags 帖子
// @Produce json
// @Param token query string false "token（也可用 Authorization 头）"
// @Success 200 {object} response.Response{data=[]cache.PostSnapshot}
// @Failure 401 {object} response.Response
// @Router /get_posts [get]
func (h *Handler) GetPosts(c *gin.Context) {
	ownerID := middleware.OwnerID(c)
	posts, err := h.postService.List(c.Request.Context(), ownerID)
	if err != nil {
		h.storageError(c, err)
		return
	}
	response.Success(c, posts)
}

// DeletePost 删除当前用户的指定帖子
// @Summary 删除帖子
// @Tags 帖子
// @Produce json
// @Param id path int true "帖子ID"
// @Param token query string false "token（也可用 Authorization 头）"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /delete_post/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid post id")
		return
	}
	ownerID := middleware.OwnerID(c)
	if err := h.postService.Delete(c.Request.Context(), ownerID, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			response.NotFound(c, "post not found")
			return
		}
		h.storageError(c, err)
		return
	}
	response.Success(c, gin.H{"msg": "post deleted"})
}
