package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a request is structurally
	// unusable (e.g. empty username or password on registration).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on every failed login, whether the
	// username is unknown or the password is wrong. The two cases are never
	// distinguished to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTokenExpired is returned when a presented token's embedded expiry
	// has elapsed.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid is returned when a presented token is malformed or its
	// signature does not verify.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenCreationFailed wraps low-level signing failures during token
	// issuance.
	ErrTokenCreationFailed = errors.New("token creation failed")
)

// Validation errors for task and profile payloads. All map to a 400 at the
// transport layer.
var (
	ErrValidationEmptyTitle    = errors.New("title must not be empty")
	ErrValidationTitleTooLong  = errors.New("title must be less than 200 characters")
	ErrValidationBadPriority   = errors.New("priority must be one of: low, medium, high, urgent")
	ErrValidationBadEmail      = errors.New("email must be a valid email address")
	ErrValidationBadPassword   = errors.New("password must be between 8 and 72 characters")
	ErrValidationBadAvatarType = errors.New("only JPEG and PNG images are allowed")
)
