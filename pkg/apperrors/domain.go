package apperrors

import (
	"net/http"
)

/*
Factories and predefined variables for common business-logic and
domain errors.
*/

// --- Factories wrapping repository errors ---

// ErrNotFound converts a repository "not found" into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic conflict factory (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the domain forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth & account ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already registered",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// --- Signup (OTP flow) ---

var ErrSignupSessionMissing = New(
	CodeInvalidOperation,
	"signup",
	"Signup session not found. Please start over.",
	http.StatusBadRequest,
)

var ErrOTPExpired = New(
	CodeTokenExpired,
	"signup",
	"Verification code expired. Please request a new one.",
	http.StatusBadRequest,
)

var ErrOTPMismatch = New(
	CodeValidationFailed,
	"signup",
	"Incorrect verification code",
	http.StatusBadRequest,
)

var ErrOTPResendLimit = New(
	CodeLimitExceeded,
	"signup",
	"Maximum resend attempts reached. Please start over.",
	http.StatusTooManyRequests,
)

var ErrEmailNotVerified = New(
	CodeInvalidOperation,
	"signup",
	"Email has not been verified",
	http.StatusBadRequest,
)

// --- Uploads & files ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- Jobs ---

// ErrJobUnauthorized covers both "not yours" and "does not exist": callers
// must not be able to distinguish the two.
var ErrJobUnauthorized = New(
	CodeForbidden,
	"jobs",
	"Unauthorized action or job not found",
	http.StatusForbidden,
)
