package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
)

var (
	ErrContentRequired = commonerrors.NewDomainError(
		"CONTENT_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Content is required",
	)

	ErrContentTooLong = commonerrors.NewDomainError(
		"CONTENT_TOO_LONG",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Content must be at most 280 characters",
	)

	ErrTweetNotFound = commonerrors.NewDomainError(
		"TWEET_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"Tweet not found",
	)

	ErrUnsupportedImage = commonerrors.NewDomainError(
		"UNSUPPORTED_IMAGE",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Upload error: unsupported image format",
	)

	ErrUploadFailed = commonerrors.NewDomainError(
		"UPLOAD_FAILED",
		commonerrors.CategoryExternal,
		http.StatusInternalServerError,
		"Upload failed",
	)
)
