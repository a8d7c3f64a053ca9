package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"focustime/internal/adapter/http/helper"
	"focustime/internal/adapter/http/middleware"
	"focustime/internal/adapter/http/validation"
	"focustime/internal/core/domain"
	"focustime/internal/core/model/request"
	"focustime/internal/core/model/response"
	"focustime/internal/core/port"
	"focustime/pkg/auth"
	"focustime/pkg/logger"
	"focustime/pkg/tracing"
)

type AuthHandler struct {
	svc    port.AuthService
	Logger *logger.LokiLogger
}

func NewAuthHandler(svc port.AuthService, l *logger.LokiLogger) *AuthHandler {
	return &AuthHandler{svc: svc, Logger: l}
}

func (h *AuthHandler) Register(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.auth.Register", []attribute.KeyValue{
		attribute.String("handler.operation", "Register"),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	var params request.Register

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, validation.FormatValidationErrors(err))
		return
	}

	user, err := h.svc.Register(ctx, params.Username, params.Email, params.Password)

	if err != nil {
		tracing.AddSpanError(span, err)
		helper.SendDomainError(c, err)
		return
	}

	h.Logger.InfoWithTrace(ctx, "User registered",
		zap.String("user_id", user.Identificator),
		zap.String("username", user.Username),
	)

	helper.SendSuccess(c, http.StatusCreated, response.FromUser(user), "User registered successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var params request.Login

	if err := c.ShouldBindJSON(&params); err != nil {
		helper.SendBadRequestError(c, "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, validation.FormatValidationErrors(err))
		return
	}

	user, token, err := h.svc.Login(ctx, params.Email, params.Password)

	if err != nil {
		// An unknown email and a wrong password are indistinguishable to
		// the caller.
		var notFound *domain.NotFoundError
		var badPassword *domain.InvalidPasswordError

		if errors.As(err, &notFound) || errors.As(err, &badPassword) {
			helper.SendUnauthorizedError(c, "Invalid email or password")
			return
		}

		helper.SendDomainError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, token, int(auth.TokenTTL.Seconds()), "/", "", true, true)

	h.Logger.InfoWithTrace(ctx, "User logged in", zap.String("user_id", user.Identificator))

	helper.SendSuccess(c, http.StatusOK, response.FromUser(user), "Logged in successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", true, true)

	helper.SendSuccess(c, http.StatusOK, nil, "Logged out successfully")
}

func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	user, err := h.svc.GetUser(ctx, userID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.FromUser(user))
}
