package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried in the error_type field of failure responses.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeRuleViolated = "RULE_VIOLATION"
	CodeValidation   = "VALIDATION_ERROR"
	CodeDebugOnly    = "DEBUG_ONLY"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Result       bool   `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewForbiddenError reports an ownership violation.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

// NewConflictError reports a uniqueness violation (duplicate key, like or follow).
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

// NewInvalidStateError reports stored data that cannot be reconciled.
func NewInvalidStateError(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidState,
		Message: message,
	}
}

// NewRuleViolationError reports a well-formed request the domain rules refuse.
func NewRuleViolationError(message string) *AppError {
	return &AppError{
		Code:    CodeRuleViolated,
		Message: message,
	}
}

func NewDebugOnlyError() *AppError {
	return &AppError{
		Code:    CodeDebugOnly,
		Message: "This endpoint is available only in debug mode.",
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HasCode reports whether err is an *AppError with the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// StatusFor maps an error onto the HTTP status used by the API.
// Client-side domain failures are all reported as 400, except validation (422)
// and the debug gate (403).
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound, CodeUnauthorized, CodeForbidden, CodeConflict, CodeInvalidState, CodeRuleViolated:
		return fiber.StatusBadRequest
	case CodeValidation:
		return fiber.StatusUnprocessableEntity
	case CodeDebugOnly:
		return fiber.StatusForbidden
	case CodeRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	response := ErrorResponse{Result: false}

	var appErr *AppError
	if errors.As(err, &appErr) {
		response.ErrorType = appErr.Code
		response.ErrorMessage = appErr.Message
	} else {
		response.ErrorType = CodeInternal
		response.ErrorMessage = err.Error()
	}

	return c.Status(status).JSON(response)
}

// RespondWithAppError writes err using the status StatusFor derives from it.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, StatusFor(err), err)
}
