package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focustime/internal/adapter/http/helper"
	"focustime/internal/adapter/http/middleware"
	"focustime/internal/adapter/http/validation"
	"focustime/internal/core/model/request"
	"focustime/internal/core/model/response"
	"focustime/internal/core/port"
	"focustime/pkg/logger"
)

type ToDoHandler struct {
	svc    port.ToDoService
	Logger *logger.LokiLogger
}

func NewToDoHandler(svc port.ToDoService, l *logger.LokiLogger) *ToDoHandler {
	return &ToDoHandler{svc: svc, Logger: l}
}

func (h *ToDoHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	taskID := c.Param("task_id")

	var params request.ToDo

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, validation.FormatValidationErrors(err))
		return
	}

	todo, err := h.svc.Create(ctx, userID, taskID, params.Title)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, response.FromToDo(todo), "To-do created successfully")
}

func (h *ToDoHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	taskID := c.Param("task_id")

	todos, err := h.svc.ListByTask(ctx, userID, taskID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.FromToDos(todos))
}

func (h *ToDoHandler) ChangeState(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	taskID := c.Param("task_id")
	todoID := c.Param("todo_id")

	var params request.ToDoStateChange

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	todo, err := h.svc.ChangeState(ctx, userID, taskID, todoID, params.Status)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.FromToDo(todo), "To-do state updated")
}

// Delete soft-deletes: the row stays in storage flagged as deleted.
func (h *ToDoHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	taskID := c.Param("task_id")
	todoID := c.Param("todo_id")

	if err := h.svc.Delete(ctx, userID, taskID, todoID); err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, nil, "To-do deleted successfully")
}
