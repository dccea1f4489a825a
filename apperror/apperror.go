// Package apperror defines a centralized system for application-specific errors.
// Every failure the blog can produce at request scope is expressed as an
// *AppError with a type drawn from a small taxonomy: validation problems,
// authentication failures, authorization rejections, missing resources,
// conflicts with existing state, and infrastructure faults. Handlers decide
// how each type is surfaced (inline form message, flash-and-redirect, hard
// status page); this package only classifies and carries the error.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ConfigError represents an error related to application configuration.
	ConfigError
	// AuthError represents an authentication failure (no such account, bad
	// password, missing or invalid session token).
	AuthError
	// ForbiddenError represents an authorization rejection: the caller may
	// even be known, it simply lacks the right to perform the operation.
	ForbiddenError
	// NotFoundError represents a resource not found error.
	NotFoundError
	// ValidationError represents malformed or incomplete form input.
	ValidationError
	// ConflictError represents a conflict with existing state, such as a
	// duplicate email or post title.
	ConflictError
	// InternalError represents a generic internal server error.
	InternalError
	// ExternalServiceError represents a failure in an external collaborator,
	// such as the outbound mail transport.
	ExternalServiceError
)

// AppError is the error type used throughout the application. It carries a
// category, a user-presentable message, and optionally the underlying error
// for debugging. The underlying error is never shown to the caller.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error, if any
}

// Error returns the string representation of the error, satisfying the error
// interface. The underlying error is appended when present.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so that errors.Is and errors.As can
// inspect the chain of wrapped errors.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
// Not every error reaches the caller as a bare status (auth failures are
// usually flashed and redirected), but when one does, this is the code.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError, ConfigError, InternalError:
		return http.StatusInternalServerError
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case ExternalServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is the generic constructor; the
// typed constructors below are preferred at call sites.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (authentication failure).
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewForbiddenError creates a new ForbiddenError (authorization rejection).
func NewForbiddenError(message string, underlyingError error) *AppError {
	return NewAppError(ForbiddenError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewInternalError creates a new InternalError.
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewExternalServiceError creates a new ExternalServiceError.
func NewExternalServiceError(message string, underlyingError error) *AppError {
	return NewAppError(ExternalServiceError, message, underlyingError)
}

// FromError attempts to convert a generic error to an *AppError.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// isType reports whether an error anywhere in the chain is an *AppError of
// the given type. Using errors.As keeps this robust against wrapping.
func isType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isType(err, NotFoundError) }

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool { return isType(err, AuthError) }

// IsForbidden checks if an error is an authorization rejection.
func IsForbidden(err error) bool { return isType(err, ForbiddenError) }

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool { return isType(err, ValidationError) }

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool { return isType(err, ConflictError) }

// IsExternalServiceError checks if an error is an external collaborator failure.
func IsExternalServiceError(err error) bool { return isType(err, ExternalServiceError) }
