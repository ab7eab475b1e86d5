package handler

import (
	"net/http"
	"strconv"

	"Iris_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{svc: service.NewNotificationService()}
}

// Poll 增量轮询接口：since 为上次见过的最大时间戳（浮点秒）
func (h *NotificationHandler) Poll(c *gin.Context) {
	uid := userIDFromCtx(c)
	since, _ := strconv.ParseFloat(c.DefaultQuery("since", "0"), 64)
	list, err := h.svc.Poll(c.Request.Context(), uid, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "poll failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}
