package apperrors

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies application errors across the gateway and the
// identity service. Token-flow codes are returned in-band as data at the
// protocol boundary rather than as transport failures.
type ErrorCode string

const (
	ErrCodeValidation      ErrorCode = "VALIDATION"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeInvalidKey      ErrorCode = "INVALID_KEY"
	ErrCodeTokenExpired    ErrorCode = "TOKEN_EXPIRED"
	ErrCodeTokenMalformed  ErrorCode = "TOKEN_MALFORMED"
	ErrCodeNotAccessToken  ErrorCode = "NOT_ACCESS_TOKEN"
	ErrCodeNotRefreshToken ErrorCode = "NOT_REFRESH_TOKEN"
	ErrCodeRateLimited     ErrorCode = "RATE_LIMITED"
	ErrCodeUpstream        ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// AppError carries an error code, a user-facing message and the HTTP status
// the gateway should translate it to.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Status  int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsTokenFlow reports whether the error belongs to the token protocol and
// must be surfaced as {is_valid:false, message} instead of an HTTP failure.
func (e *AppError) IsTokenFlow() bool {
	switch e.Code {
	case ErrCodeTokenExpired, ErrCodeTokenMalformed, ErrCodeNotAccessToken, ErrCodeNotRefreshToken:
		return true
	}
	return false
}

// NewValidation creates a validation error (HTTP 400).
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewConflict creates a conflict error, e.g. duplicate email (HTTP 409).
func NewConflict(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  http.StatusConflict,
	}
}

// NewInvalidKey creates an invalid-verification-key error (HTTP 400).
func NewInvalidKey(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidKey,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewTokenExpired reports a cryptographically expired token.
func NewTokenExpired() *AppError {
	return &AppError{
		Code:    ErrCodeTokenExpired,
		Message: "Token expired",
		Status:  http.StatusUnauthorized,
	}
}

// NewTokenMalformed reports a token that failed to parse or verify.
func NewTokenMalformed() *AppError {
	return &AppError{
		Code:    ErrCodeTokenMalformed,
		Message: "Invalid token",
		Status:  http.StatusUnauthorized,
	}
}

// NewNotAccessToken reports a token that is valid but not the live access token.
func NewNotAccessToken() *AppError {
	return &AppError{
		Code:    ErrCodeNotAccessToken,
		Message: "Provided token is not an access token",
		Status:  http.StatusUnauthorized,
	}
}

// NewNotRefreshToken reports a token that is valid but not the live refresh token.
func NewNotRefreshToken() *AppError {
	return &AppError{
		Code:    ErrCodeNotRefreshToken,
		Message: "Provided token is not a refresh token",
		Status:  http.StatusUnauthorized,
	}
}

// NewRateLimited creates a rate-limit exhaustion error (HTTP 429).
func NewRateLimited(message string) *AppError {
	return &AppError{
		Code:    ErrCodeRateLimited,
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewUpstream creates a transient upstream-unavailable error (HTTP 503).
// The gateway does not retry; retries are the client's responsibility.
func NewUpstream(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: message,
		Status:  http.StatusServiceUnavailable,
	}
}

// NewInternal creates an internal server error (HTTP 500).
func NewInternal(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// FromCode reconstructs an AppError from its wire code and message, used by
// the gateway to translate broker replies back into HTTP statuses.
func FromCode(code ErrorCode, message string) *AppError {
	status := http.StatusInternalServerError
	switch code {
	case ErrCodeValidation, ErrCodeInvalidKey:
		status = http.StatusBadRequest
	case ErrCodeConflict:
		status = http.StatusConflict
	case ErrCodeTokenExpired, ErrCodeTokenMalformed, ErrCodeNotAccessToken, ErrCodeNotRefreshToken:
		status = http.StatusUnauthorized
	case ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	case ErrCodeUpstream:
		status = http.StatusServiceUnavailable
	}
	return &AppError{Code: code, Message: message, Status: status}
}

// Wrap attaches an underlying error to an AppError.
func Wrap(err error, code ErrorCode, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Status:  status,
	}
}
