package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid credentials",
	)

	// Duplicate emails answer 400 rather than 409.
	ErrEmailTaken = commonerrors.NewDomainError(
		"EMAIL_TAKEN",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Email already in use",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"User not found",
	)

	ErrPasswordTooLong = commonerrors.NewDomainError(
		"PASSWORD_TOO_LONG",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Password must be at most 72 bytes",
	)
)
