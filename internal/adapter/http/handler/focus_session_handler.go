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

type FocusSessionHandler struct {
	svc     port.FocusSessionService
	Logger  *logger.LokiLogger
	Metrics *metrics.AppMetrics
}

func NewFocusSessionHandler(svc port.FocusSessionService, l *logger.LokiLogger, m *metrics.AppMetrics) *FocusSessionHandler {
	return &FocusSessionHandler{svc: svc, Logger: l, Metrics: m}
}

func (h *FocusSessionHandler) Save(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.focus_session.Save", []attribute.KeyValue{
		attribute.String("handler.operation", "Save"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID := middleware.CurrentUserID(c)

	var params request.FocusSessionSave

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, validation.FormatValidationErrors(err))
		return
	}

	session, err := h.svc.Save(ctx, userID, params.ProjectID, params.StartedAt, params.DurationSeconds)

	if err != nil {
		tracing.AddSpanError(span, err)
		helper.SendDomainError(c, err)
		return
	}

	if h.Metrics != nil {
		h.Metrics.RecordFocusSessionSaved()
	}

	h.Logger.InfoWithTrace(ctx, "Focus session saved",
		zap.String("user_id", userID),
		zap.String("project_id", params.ProjectID),
		zap.Int("duration_seconds", params.DurationSeconds),
	)

	helper.SendSuccess(c, http.StatusCreated, response.FromFocusSession(session), "Focus session saved")
}
