package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"feedbackpro/internal/model"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/middleware"
)

// FeedbackHandler handles feedback intake and listing
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// Submit handles POST /v1/feedback (public, rate limited)
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	meta := &model.FeedbackMetadata{
		IPAddress: r.Header.Get("X-Forwarded-For"),
		UserAgent: r.Header.Get("User-Agent"),
		Referrer:  r.Header.Get("Referer"),
	}
	if meta.IPAddress == "" {
		meta.IPAddress = r.RemoteAddr
	}

	record, err := h.feedbackSvc.Submit(r.Context(), req, meta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSubmission):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrFormNotFound):
			writeError(w, http.StatusNotFound, "form not found")
		case errors.Is(err, service.ErrFormInactive):
			writeError(w, http.StatusForbidden, "form is not accepting responses")
		default:
			writeError(w, http.StatusInternalServerError, "failed to submit feedback")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"feedbackId": record.ID,
	})
}

// List handles GET /v1/feedback?formId=
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.feedbackSvc.List(r.Context(), userID, r.URL.Query().Get("formId"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"feedback": records,
		"count":    len(records),
	})
}
