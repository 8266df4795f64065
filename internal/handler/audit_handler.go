package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"go-media-api/internal/model"
	"go-media-api/internal/service"
	"go-media-api/pkg/apierror"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if _, err := uuid.Parse(userID); err != nil {
		writeError(w, apierror.BadRequest("user_id must be a valid UUID", ""))
		return
	}

	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 0)
	logs, err := h.service.ListByUser(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.UserAuditLogsResponse{
		UserID: userID,
		Logs:   logs,
		Count:  len(logs),
		Log:    "Audit logs retrieved successfully",
	})
}

func (h *AuditHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 0)
	logs, err := h.service.ListAll(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.AuditLogsResponse{
		Logs:  logs,
		Count: len(logs),
		Log:   "All audit logs retrieved successfully",
	})
}
