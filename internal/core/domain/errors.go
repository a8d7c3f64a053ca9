package domain

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field error found by an entity's validate
// function, so callers see all problems at once instead of the first one.
type ValidationError struct {
	Entity string
	Errors []FieldError
}

func NewValidationError(entity, field, message string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))

	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}

	return fmt.Sprintf("%s validation failed: %s", e.Entity, strings.Join(parts, "; "))
}

// NotFoundError reports that a resource does not exist at all. It is distinct
// from AuthorizationError, which means the resource exists but belongs to
// someone else.
type NotFoundError struct {
	Resource      string
	Identificator string
}

func NewNotFoundError(resource, identificator string) *NotFoundError {
	return &NotFoundError{Resource: resource, Identificator: identificator}
}

func (e *NotFoundError) Error() string {
	if e.Identificator == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}

	return fmt.Sprintf("%s '%s' not found", e.Resource, e.Identificator)
}

// AuthorizationError reports an ownership check failure.
type AuthorizationError struct {
	UserID        string
	Resource      string
	Identificator string
}

func NewAuthorizationError(userID, resource, identificator string) *AuthorizationError {
	return &AuthorizationError{UserID: userID, Resource: resource, Identificator: identificator}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("user '%s' does not own %s '%s'", e.UserID, e.Resource, e.Identificator)
}

// AlreadyExistsError reports a uniqueness collision (username, email).
type AlreadyExistsError struct {
	Resource string
	Field    string
}

func NewAlreadyExistsError(resource, field string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, Field: field}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("a %s with this %s already exists", e.Resource, e.Field)
}

// DatabaseError wraps infrastructure and data-integrity failures. The unit of
// work wraps any unexpected error in one of these before re-raising, so
// handlers never leak driver details to the caller.
type DatabaseError struct {
	Op  string
	Err error
}

func NewDatabaseError(op string, err error) *DatabaseError {
	return &DatabaseError{Op: op, Err: err}
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("database error during %s", e.Op)
	}

	return fmt.Sprintf("database error during %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// InvalidPasswordError is raised on a failed login attempt.
type InvalidPasswordError struct{}

func (e *InvalidPasswordError) Error() string {
	return "invalid password"
}

// IsDomainError reports whether err belongs to the domain taxonomy. The unit
// of work uses it to decide between passing an error through unchanged and
// wrapping it in a DatabaseError.
func IsDomainError(err error) bool {
	var (
		validation    *ValidationError
		notFound      *NotFoundError
		authorization *AuthorizationError
		alreadyExists *AlreadyExistsError
		database      *DatabaseError
		password      *InvalidPasswordError
	)

	return errors.As(err, &validation) ||
		errors.As(err, &notFound) ||
		errors.As(err, &authorization) ||
		errors.As(err, &alreadyExists) ||
		errors.As(err, &database) ||
		errors.As(err, &password)
}
