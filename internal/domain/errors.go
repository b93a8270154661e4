package domain

// The error types below form the failure taxonomy services raise.
// The transport layer maps each type to an HTTP status; infrastructure
// failures are wrapped with %w and bubble up unchanged.

// ValidationError signals rejected input.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError signals a referenced entity that does not exist.
type NotFoundError struct {
	Message string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func (e *NotFoundError) Error() string { return e.Message }

// UnauthorizedError signals bad credentials or a missing/expired token.
type UnauthorizedError struct {
	Message string
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func (e *UnauthorizedError) Error() string { return e.Message }

// ConflictError signals an operation that would violate a referential
// invariant, such as deleting a category that still has products.
type ConflictError struct {
	Message string
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string { return e.Message }
