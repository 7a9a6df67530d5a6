package handler

import (
	"errors"
	"net/http"
	"strconv"

	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/middleware"
)

// AnalyticsHandler handles analytics and insight endpoints
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
	auditSvc     *service.AuditService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService, auditSvc *service.AuditService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
		auditSvc:     auditSvc,
	}
}

func writeAnalyticsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserIDRequired):
		writeError(w, http.StatusUnauthorized, "user id required")
	case errors.Is(err, service.ErrFormNotFound):
		writeError(w, http.StatusNotFound, "form not found")
	case errors.Is(err, service.ErrNotFormOwner):
		writeError(w, http.StatusForbidden, "form not owned by user")
	default:
		writeError(w, http.StatusInternalServerError, "failed to compute analytics")
	}
}

// GetAnalytics handles GET /v1/analytics?formId=
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	snapshot, err := h.analyticsSvc.GetAnalytics(r.Context(), userID, r.URL.Query().Get("formId"))
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// GetInsights handles GET /v1/ai/insights?formId=
func (h *AnalyticsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	insights, distribution, err := h.analyticsSvc.GetInsights(r.Context(), userID, r.URL.Query().Get("formId"))
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"aiInsights":            insights,
		"sentimentDistribution": distribution,
	})
}

// GetAuditLog handles GET /v1/audit?limit=
func (h *AnalyticsHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	entries, err := h.auditSvc.Recent(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
