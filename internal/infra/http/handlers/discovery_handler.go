package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type LeadDiscoverer interface {
	Execute(ctx context.Context, input usecase.DiscoverLeadsInput) (*usecase.DiscoverLeadsOutput, error)
}

type DiscoveryHandler struct {
	Discoverer LeadDiscoverer
}

func NewDiscoveryHandler(discoverer LeadDiscoverer) *DiscoveryHandler {
	return &DiscoveryHandler{Discoverer: discoverer}
}

// Handle handles POST /leads/discover
func (h *DiscoveryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.DiscoverLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	out, err := h.Discoverer.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("places")
		}

		writeError(w, r, err)
		return
	}

	for range out.Imported {
		middleware.RecordDedupeOutcome("")
	}
	for _, d := range out.Duplicates {
		middleware.RecordDedupeOutcome(string(d.Reason))
	}

	writeJSON(w, http.StatusOK, out)
}
