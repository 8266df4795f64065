package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go-media-api/internal/model"
	"go-media-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors onto stable machine-readable codes. Internal
// detail never reaches the caller; unclassified errors are logged instead.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Unexpected server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid email or password"
	case errors.Is(err, model.ErrTokenExpired):
		status = http.StatusUnauthorized
		body.Code = "TOKEN_EXPIRED"
		body.Message = "Token expired"
	case errors.Is(err, model.ErrInvalidToken):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Invalid token"
	case errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "User not found"
	case errors.Is(err, model.ErrUserAlreadyExists):
		status = http.StatusBadRequest
		body.Code = "ALREADY_EXISTS"
		body.Message = "Email already registered"
	case errors.Is(err, model.ErrMovieNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Movie not found"
	case errors.Is(err, model.ErrClipSceneNotFound):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "Clip scene not found"
	case errors.Is(err, model.ErrNoVideoAttached):
		status = http.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = "No video attached"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	case errors.Is(err, model.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
		body.Code = "STORE_UNAVAILABLE"
		body.Message = "Database unavailable"
	case errors.Is(err, model.ErrAuditWriteFailed):
		status = http.StatusInternalServerError
		body.Code = "AUDIT_WRITE_FAILED"
		body.Message = "Audit write failed"
	default:
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	writeJSON(w, status, model.ErrorResponse{Success: false, Error: body})
}

func parseIntOrDefault(raw string, fallback int) int {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}

	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return v
}
