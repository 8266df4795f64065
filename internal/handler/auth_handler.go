package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go-media-api/internal/middleware"
	"go-media-api/internal/model"
	"go-media-api/internal/service"
	"go-media-api/pkg/apierror"
)

type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	token, user, err := h.service.Authenticate(r.Context(), payload.Email, payload.Password, requestContext(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user.Public(),
		Log:         fmt.Sprintf("User %s authenticated successfully", user.Email),
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	user, err := h.service.Register(r.Context(), payload.Email, payload.Password, requestContext(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
		Email:   user.Email,
	})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.BadRequest("invalid JSON body", ""))
		return
	}

	err := h.service.ChangePassword(r.Context(), payload.Email, payload.CurrentPassword, payload.NewPassword, requestContext(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}

func requestContext(r *http.Request) model.RequestContext {
	return model.RequestContext{
		ClientIP:  middleware.ExtractClientIP(r),
		UserAgent: r.UserAgent(),
	}
}
