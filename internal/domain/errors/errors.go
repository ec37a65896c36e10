package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")

	ErrSelfBooking         = errors.New("cannot book own service")
	ErrDuplicateBooking    = errors.New("active booking already exists for this service")
	ErrNotServiceOwner     = errors.New("booking does not belong to provider")
	ErrInvalidTransition   = errors.New("invalid booking status transition")
	ErrApplicationPending  = errors.New("application already pending")
	ErrAlreadyVerified     = errors.New("user already verified")
	ErrApplicationResolved = errors.New("application already reviewed")
	ErrProviderNotVerified = errors.New("provider not verified")
)

// Machine-readable codes carried in error responses.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeSelfBooking     = "SELF_BOOKING"
	CodeDuplicate       = "DUPLICATE_BOOKING"
	CodeAlreadyPending  = "APPLICATION_PENDING"
	CodeAlreadyVerified = "ALREADY_VERIFIED"
)

// AppError represents application error with HTTP status.
// Fields holds per-field validation messages for 422 responses.
type AppError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"errors,omitempty"`
	Err     error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrConflict)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidInput, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeForbidden, message, ErrForbidden)
}

// Validation builds a 422 carrying per-field messages.
func Validation(message string, fields map[string]string) *AppError {
	e := NewAppError(http.StatusUnprocessableEntity, CodeValidation, message, ErrValidation)
	e.Fields = fields
	return e
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "internal server error", err)
}

// InternalServerError is InternalError with a caller-chosen message.
func InternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, message, nil)
}

// NewError creates a new error with a custom message wrapping an existing error
func NewError(message string, err error) error {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidInput,
		Message: message,
		Err:     err,
	}
}

// FromSentinel maps a bare domain sentinel (possibly wrapped) to its AppError.
// It returns nil when err matches none of the known sentinels.
func FromSentinel(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	for _, m := range sentinelTable {
		if errors.Is(err, m.sentinel) {
			return NewAppError(m.status, m.code, m.sentinel.Error(), err)
		}
	}
	return nil
}

var sentinelTable = []struct {
	sentinel error
	status   int
	code     string
}{
	{ErrNotFound, http.StatusNotFound, CodeNotFound},
	{ErrSelfBooking, http.StatusForbidden, CodeSelfBooking},
	{ErrNotServiceOwner, http.StatusForbidden, CodeForbidden},
	{ErrProviderNotVerified, http.StatusForbidden, CodeForbidden},
	{ErrForbidden, http.StatusForbidden, CodeForbidden},
	{ErrDuplicateBooking, http.StatusConflict, CodeDuplicate},
	{ErrApplicationPending, http.StatusConflict, CodeAlreadyPending},
	{ErrAlreadyVerified, http.StatusConflict, CodeAlreadyVerified},
	{ErrApplicationResolved, http.StatusConflict, CodeConflict},
	{ErrInvalidTransition, http.StatusConflict, CodeConflict},
	{ErrAlreadyExists, http.StatusConflict, CodeConflict},
	{ErrConflict, http.StatusConflict, CodeConflict},
	{ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
	{ErrTokenExpired, http.StatusUnauthorized, CodeUnauthorized},
	{ErrTokenRevoked, http.StatusUnauthorized, CodeUnauthorized},
	{ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized},
	{ErrValidation, http.StatusUnprocessableEntity, CodeValidation},
	{ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
}
