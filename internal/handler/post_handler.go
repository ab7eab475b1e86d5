package handler

import (
	"net/http"
	"strconv"

	"Iris_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler() *PostHandler {
	return &PostHandler{svc: service.NewPostService()}
}

type createPostReq struct {
	Body string `json:"body" binding:"required"`
	// 上游语言检测结果，可为空
	Language string `json:"language"`
}

// CreatePost 发帖接口
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)
	post, err := h.svc.CreatePost(c.Request.Context(), uid, req.Body, req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// Feed 主页时间线
func (h *PostHandler) Feed(c *gin.Context) {
	uid := userIDFromCtx(c)
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	result, err := h.svc.Feed(c.Request.Context(), uid, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Explore 广场页全量帖子
func (h *PostHandler) Explore(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	result, err := h.svc.Explore(c.Request.Context(), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "explore failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
