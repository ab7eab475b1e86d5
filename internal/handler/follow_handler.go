package handler

import (
	"net/http"
	"strconv"

	"Iris_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	svc *service.FollowService
}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{svc: service.NewFollowService()}
}

type followReq struct {
	FolloweeID uint64 `json:"followee_id" binding:"required"`
	Action     string `json:"action" binding:"required,oneof=follow unfollow"`
}

// Follow 关注/取关接口，两个方向都幂等
func (h *FollowHandler) Follow(c *gin.Context) {
	var req followReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)
	var err error
	if req.Action == "follow" {
		err = h.svc.Follow(c.Request.Context(), uid, req.FolloweeID)
	} else {
		err = h.svc.Unfollow(c.Request.Context(), uid, req.FolloweeID)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// ListFollowers 粉丝分页列表
func (h *FollowHandler) ListFollowers(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	result, err := h.svc.Followers(c.Request.Context(), userID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListFollowing 关注分页列表
func (h *FollowHandler) ListFollowing(c *gin.Context) {
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 64)
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	result, err := h.svc.Following(c.Request.Context(), userID, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Relation 获取用户间关系
func (h *FollowHandler) Relation(c *gin.Context) {
	from, _ := strconv.ParseUint(c.Query("from"), 10, 64)
	to, _ := strconv.ParseUint(c.Query("to"), 10, 64)
	ok, err := h.svc.IsFollowing(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": ok})
}

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
