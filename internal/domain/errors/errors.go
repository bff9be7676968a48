package errors

import (
	"net/http"

	"identity/internal/errors"
)

// Kind classifies an AppError so callers can branch without comparing codes.
type Kind string

const (
	KindAlreadyExists        Kind = "ALREADY_EXISTS"
	KindNotFound             Kind = "NOT_FOUND"
	KindAuthenticationFailed Kind = "AUTHENTICATION_FAILED"
	KindTokenInvalid         Kind = "TOKEN_INVALID"
	KindTokenExpired         Kind = "TOKEN_EXPIRED"
	KindTokenRevoked         Kind = "TOKEN_REVOKED"
	KindConfiguration        Kind = "CONFIGURATION_ERROR"
	KindPolicyViolation      Kind = "POLICY_VIOLATION"
	KindValidation           Kind = "VALIDATION"
	KindForbidden            Kind = "FORBIDDEN"
	KindInternal             Kind = "INTERNAL"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Stable classification
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error classification
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// KindOf returns the Kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// Predefined error types
var (
	// Uniqueness violations
	ErrUserAlreadyExists = NewBaseError(KindAlreadyExists, http.StatusConflict,
		"USER_ALREADY_EXISTS", "Username or email is already registered", "")

	ErrRoleAlreadyExists = NewBaseError(KindAlreadyExists, http.StatusConflict,
		"ROLE_ALREADY_EXISTS", "Role already exists", "")

	ErrPermissionAlreadyExists = NewBaseError(KindAlreadyExists, http.StatusConflict,
		"PERMISSION_ALREADY_EXISTS", "Permission already exists", "")

	// Missing records
	ErrUserNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"USER_NOT_FOUND", "User not found", "")

	ErrRoleNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"ROLE_NOT_FOUND", "Role not found", "")

	ErrPermissionNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"PERMISSION_NOT_FOUND", "Permission not found", "")

	ErrSessionNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"SESSION_NOT_FOUND", "Session not found", "")

	// Authentication and token errors
	ErrAuthenticationFailed = NewBaseError(KindAuthenticationFailed, http.StatusUnauthorized,
		"INVALID_CREDENTIALS", "Invalid username or password", "")

	ErrTokenInvalid = NewBaseError(KindTokenInvalid, http.StatusUnauthorized,
		"TOKEN_INVALID", "Token is invalid", "")

	ErrTokenExpired = NewBaseError(KindTokenExpired, http.StatusUnauthorized,
		"TOKEN_EXPIRED", "Token has expired", "")

	ErrTokenRevoked = NewBaseError(KindTokenRevoked, http.StatusUnauthorized,
		"TOKEN_REVOKED", "Token has been revoked", "")

	// Configuration
	ErrConfiguration = NewBaseError(KindConfiguration, http.StatusInternalServerError,
		"CONFIGURATION_ERROR", "Service is misconfigured", "")

	ErrDefaultRoleMissing = NewBaseError(KindConfiguration, http.StatusInternalServerError,
		"DEFAULT_ROLE_MISSING", "Default role is not configured in the store", "")

	// Policy
	ErrProtectedRole = NewBaseError(KindPolicyViolation, http.StatusConflict,
		"PROTECTED_ROLE", "The ADMIN role cannot be modified or deleted", "")

	ErrRoleInUse = NewBaseError(KindPolicyViolation, http.StatusConflict,
		"ROLE_IN_USE", "Role is assigned to users and cannot be deleted", "")

	ErrPermissionInUse = NewBaseError(KindPolicyViolation, http.StatusConflict,
		"PERMISSION_IN_USE", "Permission is assigned to roles and cannot be deleted", "")

	ErrSelfAdminRemoval = NewBaseError(KindPolicyViolation, http.StatusConflict,
		"SELF_ADMIN_REMOVAL", "You cannot remove your own ADMIN role", "")

	// Validation-related errors
	ErrValidationFailed = NewBaseError(KindValidation, http.StatusBadRequest,
		"VALIDATION_FAILED", "Input validation failed", "")

	ErrInvalidPermissionName = NewBaseError(KindValidation, http.StatusBadRequest,
		"INVALID_PERMISSION_NAME", "Permission name must follow the resource:action pattern", "")

	// General errors
	ErrPasswordHashFailed = NewBaseError(KindInternal, http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED", "Password processing failed", "")

	ErrInternalError = NewBaseError(KindInternal, http.StatusInternalServerError,
		"INTERNAL_ERROR", "Internal server error", "")

	ErrUnauthorized = NewBaseError(KindAuthenticationFailed, http.StatusUnauthorized,
		"UNAUTHORIZED", "Authentication required", "")

	ErrForbidden = NewBaseError(KindForbidden, http.StatusForbidden,
		"FORBIDDEN", "Access denied", "")
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns KindInternal
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
