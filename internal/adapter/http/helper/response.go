package helper

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"focustime/internal/core/domain"
	"focustime/internal/core/model/response"
)

const genericErrorMessage = "Something went wrong. Please try again later."

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	envelope := response.Envelope{
		Success: true,
		Data:    data,
	}

	if len(message) > 0 && message[0] != "" {
		envelope.Message = message[0]
	}

	c.JSON(statusCode, envelope)
}

func SendError(c *gin.Context, statusCode int, errType, details string) {
	c.JSON(statusCode, response.Envelope{
		Success: false,
		Message: details,
		Error: &response.Error{
			Code:    statusCode,
			Type:    errType,
			Details: details,
		},
	})
}

// SendDomainError maps the domain error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is logged with full detail and returned as a
// generic 500 without leaking internals.
func SendDomainError(c *gin.Context, err error) {
	var (
		validationErr    *domain.ValidationError
		notFoundErr      *domain.NotFoundError
		authorizationErr *domain.AuthorizationError
		alreadyExistsErr *domain.AlreadyExistsError
		passwordErr      *domain.InvalidPasswordError
	)

	switch {
	case errors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, "validation_error", validationErr.Error())

	case errors.As(err, &alreadyExistsErr):
		SendError(c, http.StatusBadRequest, "already_exists", alreadyExistsErr.Error())

	case errors.As(err, &notFoundErr):
		SendError(c, http.StatusNotFound, "not_found", notFoundErr.Error())

	case errors.As(err, &authorizationErr):
		SendError(c, http.StatusForbidden, "authorization_error", authorizationErr.Error())

	case errors.As(err, &passwordErr):
		SendError(c, http.StatusUnauthorized, "unauthorized", "Invalid email or password")

	default:
		slog.Error("unhandled error reached the controller boundary",
			"path", c.FullPath(), "error", err)
		SendError(c, http.StatusInternalServerError, "internal_error", genericErrorMessage)
	}
}

func SendValidationError(c *gin.Context, details string) {
	SendError(c, http.StatusBadRequest, "validation_error", details)
}

func SendUnauthorizedError(c *gin.Context, details string) {
	SendError(c, http.StatusUnauthorized, "unauthorized", details)
}

func SendBadRequestError(c *gin.Context, details string) {
	SendError(c, http.StatusBadRequest, "bad_request", details)
}
