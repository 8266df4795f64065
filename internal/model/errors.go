package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Catalog related errors
	ErrMovieNotFound     = errors.New("movie not found")
	ErrClipSceneNotFound = errors.New("clip scene not found")
	ErrNoVideoAttached   = errors.New("no video attached")

	// Storage related errors
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrAuditWriteFailed = errors.New("audit write failed")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
