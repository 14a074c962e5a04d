package apperrors

import (
	"net/http"
)

// Factories and predefined variables for domain errors.

// ErrNotFound wraps a repository miss (e.g. gorm.ErrRecordNotFound) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists wraps a uniqueness violation into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrInvalidRefreshToken = New(
	CodeInvalidToken,
	"auth",
	"Refresh token is invalid or expired",
	http.StatusUnauthorized,
)

// --- Files ---

var ErrFileNotFound = New(
	CodeNotFound,
	"files",
	"File not found",
	http.StatusNotFound,
)

var ErrNotFileOwner = New(
	CodeForbidden,
	"files",
	"You do not have access to this file",
	http.StatusForbidden,
)

var ErrInvalidFileExtension = New(
	CodeValidationFailed,
	"files",
	"Only Python source files are accepted",
	http.StatusUnsupportedMediaType,
)

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"files",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)
