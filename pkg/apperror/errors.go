package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Kind    string       `json:"kind,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError creates a validation error carrying field details
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

func (e *AppError) Error() string {
	return e.Message
}

// Is lets errors.Is match AppErrors by kind, so services can compare
// against the sentinel values below while still attaching messages.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if !errors.As(target, &appErr) {
		return false
	}
	return e.Kind != "" && e.Kind == appErr.Kind
}

// Error kinds for the order/ticket core
const (
	KindInvalidTransition   = "invalid_transition"
	KindInvalidOrderKind    = "invalid_order_kind"
	KindPrintDeliveryFailed = "print_delivery_failed"
	KindTicketBuildFailed   = "ticket_build_failed"
)

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden      = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict       = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}

	ErrInvalidTransition = &AppError{
		Code:    http.StatusConflict,
		Message: "Order state does not allow this transition",
		Kind:    KindInvalidTransition,
	}
	ErrInvalidOrderKind = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Operation not allowed for this order kind",
		Kind:    KindInvalidOrderKind,
	}
	ErrPrintDeliveryFailed = &AppError{
		Code:    http.StatusBadGateway,
		Message: "Print sink rejected or did not receive the ticket",
		Kind:    KindPrintDeliveryFailed,
	}
	ErrTicketBuildFailed = &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Ticket document could not be built",
		Kind:    KindTicketBuildFailed,
	}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewInvalidTransitionError reports an illegal state change attempt.
func NewInvalidTransitionError(from, trigger string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: "Cannot " + trigger + " an order in state " + from,
		Kind:    KindInvalidTransition,
	}
}

// NewInvalidOrderKindError reports a kind-restricted operation on the wrong kind.
func NewInvalidOrderKindError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Kind:    KindInvalidOrderKind,
	}
}

// NewPrintDeliveryError wraps a sink failure with its diagnostic detail.
func NewPrintDeliveryError(detail string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: "Print delivery failed: " + detail,
		Kind:    KindPrintDeliveryFailed,
	}
}

// NewTicketBuildError reports a document assembly failure.
func NewTicketBuildError(detail string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Ticket build failed: " + detail,
		Kind:    KindTicketBuildFailed,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
