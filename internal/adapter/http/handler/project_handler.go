package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"focustime/internal/adapter/http/helper"
	"focustime/internal/adapter/http/middleware"
	"focustime/internal/adapter/http/validation"
	"focustime/internal/core/model/request"
	"focustime/internal/core/model/response"
	"focustime/internal/core/port"
	"focustime/pkg/logger"
	"focustime/pkg/metrics"
	"focustime/pkg/tracing"
)

type ProjectHandler struct {
	svc     port.ProjectService
	Logger  *logger.LokiLogger
	Metrics *metrics.AppMetrics
}

func NewProjectHandler(svc port.ProjectService, l *logger.LokiLogger, m *metrics.AppMetrics) *ProjectHandler {
	return &ProjectHandler{svc: svc, Logger: l, Metrics: m}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.project.Create", []attribute.KeyValue{
		attribute.String("handler.operation", "Create"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID := middleware.CurrentUserID(c)

	var params request.Project

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, validation.FormatValidationErrors(err))
		return
	}

	project, err := h.svc.Create(ctx, userID, params.Title, params.Color)

	if err != nil {
		tracing.AddSpanError(span, err)
		helper.SendDomainError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordProjectOperation("create")
	}

	h.Logger.InfoWithTrace(ctx, "Project created",
		zap.String("user_id", userID),
		zap.String("project_id", project.Identificator),
	)

	helper.SendSuccess(c, http.StatusCreated, response.FromProject(project), "Project created successfully")
}

func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	projects, err := h.svc.List(ctx, userID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.FromProjects(projects))
}

// Get returns the full project view: the project, its tasks and its focus
// sessions, with today's focus time precomputed.
func (h *ProjectHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	projectID := c.Param("project_id")

	detail, err := h.svc.Detail(ctx, userID, projectID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.FromProjectDetail(detail))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	projectID := c.Param("project_id")

	var params request.ProjectUpdate

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, validation.FormatValidationErrors(err))
		return
	}

	project, err := h.svc.Update(ctx, userID, projectID, params.Title, params.Color, *params.Active)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordProjectOperation("update")
	}

	helper.SendSuccess(c, http.StatusOK, response.FromProject(project), "Project updated successfully")
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)
	projectID := c.Param("project_id")

	if err := h.svc.Delete(ctx, userID, projectID); err != nil {
		helper.SendDomainError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordProjectOperation("delete")
	}

	h.Logger.InfoWithTrace(ctx, "Project deleted",
		zap.String("user_id", userID),
		zap.String("project_id", projectID),
	)

	helper.SendSuccess(c, http.StatusOK, nil, "Project deleted successfully")
}

// Summary returns the per-project focus rollup used by the project cards.
func (h *ProjectHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	summaries, err := h.svc.Summaries(ctx, userID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.FromSummaries(summaries))
}

// Heatmap returns the last year of daily focus totals.
func (h *ProjectHandler) Heatmap(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	totals, err := h.svc.Heatmap(ctx, userID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, totals)
}
