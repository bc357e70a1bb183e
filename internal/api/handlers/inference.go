package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/veracify/credence/internal/service"
	"github.com/veracify/credence/internal/store"
)

type InferenceHandler struct {
	svc *service.InferenceService
}

func NewInferenceHandler(svc *service.InferenceService) *InferenceHandler {
	return &InferenceHandler{svc: svc}
}

// GetInference returns the entity-level overview: relations grouped by kind
// and one inference per role type the entity occupies.
// GET /v1/entities/{id}/inference?scope.<key>=<value>...
func (h *InferenceHandler) GetInference(w http.ResponseWriter, r *http.Request) {
	entityID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entity id")
		return
	}

	scope := scopeFromQuery(r.URL.Query())

	result, err := h.svc.InferEntity(r.Context(), entityID, scope)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		// Repository failures propagate opaquely.
		writeError(w, http.StatusBadGateway, "evidence repository unavailable")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
