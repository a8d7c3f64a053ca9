package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"focustime/internal/adapter/http/helper"
	"focustime/internal/adapter/http/middleware"
	"focustime/internal/adapter/http/validation"
	"focustime/internal/core/model/request"
	"focustime/internal/core/model/response"
	"focustime/internal/core/port"
	"focustime/pkg/logger"
	"focustime/pkg/metrics"
)

type TaskHandler struct {
	svc     port.TaskService
	Logger  *logger.LokiLogger
	Metrics *metrics.AppMetrics
}

func NewTaskHandler(svc port.TaskService, l *logger.LokiLogger, m *metrics.AppMetrics) *TaskHandler {
	return &TaskHandler{svc: svc, Logger: l, Metrics: m}
}

func (h *TaskHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	projectID := c.Param("project_id")

	var params request.Task

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, validation.FormatValidationErrors(err))
		return
	}

	task, err := h.svc.Create(ctx, userID, projectID, params.Title, params.Description)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordTaskOperation("create")
	}

	h.Logger.InfoWithTrace(ctx, "Task created",
		zap.String("user_id", userID),
		zap.String("project_id", projectID),
		zap.String("task_id", task.Identificator),
	)

	helper.SendSuccess(c, http.StatusCreated, response.FromTask(task), "Task created successfully")
}

func (h *TaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	projectID := c.Param("project_id")

	tasks, err := h.svc.ListByProject(ctx, userID, projectID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.FromTasks(tasks))
}

// ChangeStatus moves a task between "in progress" and "completed".
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	projectID := c.Param("project_id")
	taskID := c.Param("task_id")

	var params request.TaskStatusChange

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	task, err := h.svc.ChangeStatus(ctx, userID, projectID, taskID, params.Status)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordTaskOperation("change_status")
	}

	helper.SendSuccess(c, http.StatusOK, response.FromTask(task), "Task status updated")
}

func (h *TaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	projectID := c.Param("project_id")
	taskID := c.Param("task_id")

	if err := h.svc.Delete(ctx, userID, projectID, taskID); err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordTaskOperation("delete")
	}

	helper.SendSuccess(c, http.StatusOK, nil, "Task deleted successfully")
}
