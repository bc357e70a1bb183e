package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/veracify/credence/internal/service"
	"github.com/veracify/credence/internal/store"
)

type ExplanationHandler struct {
	svc *service.InferenceService
}

func NewExplanationHandler(svc *service.InferenceService) *ExplanationHandler {
	return &ExplanationHandler{svc: svc}
}

// GetExplanation returns the full drill-down for one (entity, role) pair.
// GET /v1/entities/{id}/roles/{roleType}/explanation?scope.<key>=<value>...
func (h *ExplanationHandler) GetExplanation(w http.ResponseWriter, r *http.Request) {
	entityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entity id")
		return
	}

	roleType := chi.URLParam(r, "roleType")
	if roleType == "" {
		writeError(w, http.StatusBadRequest, "role type is required")
		return
	}

	scope := scopeFromQuery(r.URL.Query())

	result, err := h.svc.ExplainRole(r.Context(), entityID, roleType, scope)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		writeError(w, http.StatusBadGateway, "evidence repository unavailable")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
