package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Iris_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	svc *service.MessageService
}

func NewMessageHandler() *MessageHandler {
	return &MessageHandler{svc: service.NewMessageService()}
}

type sendMessageReq struct {
	Recipient string `json:"recipient" binding:"required"`
	Body      string `json:"body" binding:"required"`
}

// Send 发私信接口
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)
	m, err := h.svc.Send(c.Request.Context(), uid, req.Recipient, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrRecipientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": m.ID})
}

// Unread 当前未读私信数
func (h *MessageHandler) Unread(c *gin.Context) {
	uid := userIDFromCtx(c)
	count, err := h.svc.UnreadCount(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "unread failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// Inbox 收件箱，访问即推进已读水位
func (h *MessageHandler) Inbox(c *gin.Context) {
	uid := userIDFromCtx(c)
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	result, err := h.svc.Inbox(c.Request.Context(), uid, page, perPage)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "inbox failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
