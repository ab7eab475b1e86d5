package handler

import (
	"errors"
	"net/http"

	"Iris_Blog/internal/pkg"
	"Iris_Blog/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc    *service.TaskService
	export *service.ExportService
}

func NewTaskHandler(smtp pkg.SMTPConfig) *TaskHandler {
	return &TaskHandler{
		svc:    service.NewTaskService(),
		export: service.NewExportService(smtp),
	}
}

// Status 任务状态查询
func (h *TaskHandler) Status(c *gin.Context) {
	id := c.Param("id")
	st, err := h.svc.Status(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "status failed"})
		return
	}
	c.JSON(http.StatusOK, st)
}

type progressReq struct {
	Progress int `json:"progress"`
}

// ReportProgress 外部 job runner 的进度回调
func (h *TaskHandler) ReportProgress(c *gin.Context) {
	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	id := c.Param("id")
	if err := h.svc.ReportProgress(c.Request.Context(), id, req.Progress); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "task not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Complete 收口回调，runner 重试时幂等
func (h *TaskHandler) Complete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Finalize(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "finalize failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// ExportPosts 启动帖子导出任务
func (h *TaskHandler) ExportPosts(c *gin.Context) {
	uid := userIDFromCtx(c)
	task, err := h.export.LaunchExport(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, service.ErrTaskInProgress) {
			c.JSON(http.StatusConflict, gin.H{"msg": "export already in progress"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "launch failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": task.ID})
}
