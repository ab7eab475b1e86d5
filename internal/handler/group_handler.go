package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Iris_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	svc *service.GroupService
}

func NewGroupHandler() *GroupHandler {
	return &GroupHandler{svc: service.NewGroupService()}
}

type groupCreateReq struct {
	Name string `json:"name" binding:"required"`
}

// Create 建群
func (h *GroupHandler) Create(c *gin.Context) {
	var req groupCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)
	g, err := h.svc.CreateGroup(c.Request.Context(), uid, req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": g.ID, "name": g.Name})
}

// Get 群详情
func (h *GroupHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	g, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "get failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": g.ID, "name": g.Name})
}

// Rename 改名
func (h *GroupHandler) Rename(c *gin.Context) {
	var req groupCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Rename(c.Request.Context(), id, req.Name); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "group not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Delete 删群，幂等
func (h *GroupHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// List 群分页列表
func (h *GroupHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	result, err := h.svc.List(c.Request.Context(), page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Join 入群
func (h *GroupHandler) Join(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	uid := userIDFromCtx(c)
	if err := h.svc.Join(c.Request.Context(), uid, id); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "group not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Leave 退群
func (h *GroupHandler) Leave(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	uid := userIDFromCtx(c)
	if err := h.svc.Leave(c.Request.Context(), uid, id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Members 成员列表 + 管理角色统计
func (h *GroupHandler) Members(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	members, counts, err := h.svc.Members(c.Request.Context(), id, page, perPage)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "group not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "members failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members, "role_counts": counts})
}

type roleReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   int    `json:"role"`
}

// SetRole 调整成员角色
func (h *GroupHandler) SetRole(c *gin.Context) {
	var req roleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.svc.SetRole(c.Request.Context(), id, req.UserID, req.Role); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "member not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// RemoveMember 移除成员
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	uid, _ := strconv.ParseUint(c.Param("uid"), 10, 64)
	if err := h.svc.RemoveMember(c.Request.Context(), id, uid); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "member not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
