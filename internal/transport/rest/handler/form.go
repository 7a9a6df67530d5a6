package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"feedbackpro/internal/model"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/middleware"
)

// FormHandler handles form endpoints
type FormHandler struct {
	formSvc *service.FormService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService) *FormHandler {
	return &FormHandler{formSvc: formSvc}
}

func writeFormError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrFormNotFound):
		writeError(w, http.StatusNotFound, "form not found")
	case errors.Is(err, service.ErrNotFormOwner):
		writeError(w, http.StatusForbidden, "form not owned by user")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// Save handles POST /v1/forms (create or update)
func (h *FormHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var form model.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.formSvc.Save(r.Context(), userID, &form)
	if err != nil {
		writeFormError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

// Get handles GET /v1/forms/{formId}
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	form, err := h.formSvc.Get(r.Context(), userID, mux.Vars(r)["formId"])
	if err != nil {
		writeFormError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, form)
}

// List handles GET /v1/forms
func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	forms, err := h.formSvc.List(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
}

// Toggle handles POST /v1/forms/{formId}/toggle
func (h *FormHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	active, err := h.formSvc.Toggle(r.Context(), userID, mux.Vars(r)["formId"])
	if err != nil {
		writeFormError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"isActive": active})
}

// Delete handles DELETE /v1/forms/{formId}
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.formSvc.Delete(r.Context(), userID, mux.Vars(r)["formId"]); err != nil {
		writeFormError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
