package apperrors

import "errors"

// Error kinds every public operation maps its failures to. Controllers
// translate these to HTTP statuses; raw store errors never reach a caller.
var (
	// ErrUnauthenticated means no valid principal could be resolved.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNotAuthorized means the principal is known but lacks the role,
	// ownership or assignment the operation requires.
	ErrNotAuthorized = errors.New("permission denied")

	// ErrNotFound covers absent entities and soft-deleted ones treated as
	// absent.
	ErrNotFound = errors.New("resource not found")

	// ErrValidationFailed is an input shape or range violation. The message
	// names the first offending rule.
	ErrValidationFailed = errors.New("validation failed")

	// ErrConflict is a uniqueness violation: duplicate join code after
	// exhausted retries, duplicate participation, duplicate interest triple.
	ErrConflict = errors.New("conflict")

	// ErrStateViolation means the entity's current state forbids the
	// requested operation, e.g. cancelling a non-pending request or
	// submitting past the window deadline.
	ErrStateViolation = errors.New("state violation")
)

// Token errors used by the auth stack.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// CustomError carries a sentinel plus a human-readable message key.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes the sentinel so errors.Is works on wrapped values.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewUnauthenticatedError creates an ErrUnauthenticated with a message.
func NewUnauthenticatedError(message string) error {
	return &CustomError{Err: ErrUnauthenticated, Message: message}
}

// NewNotAuthorizedError creates an ErrNotAuthorized with a message.
func NewNotAuthorizedError(message string) error {
	return &CustomError{Err: ErrNotAuthorized, Message: message}
}

// NewNotFoundError creates an ErrNotFound with a message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewValidationError creates an ErrValidationFailed naming the first
// violated rule.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewConflictError creates an ErrConflict with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewStateViolationError creates an ErrStateViolation with a message.
func NewStateViolationError(message string) error {
	return &CustomError{Err: ErrStateViolation, Message: message}
}
