package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type OutreachGenerator interface {
	Execute(ctx context.Context, input usecase.GenerateOutreachInput) (*entity.Outreach, error)
}

type OutreachHandler struct {
	Generator OutreachGenerator
}

func NewOutreachHandler(generator OutreachGenerator) *OutreachHandler {
	return &OutreachHandler{Generator: generator}
}

// Handle handles POST /leads/{id}/outreach. An empty body drafts without sending.
func (h *OutreachHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateOutreachInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}
	input.LeadID = chi.URLParam(r, "id")

	outreach, err := h.Generator.Execute(r.Context(), input)
	if err != nil {
		var te *usecase.TechnicalError
		if errors.As(err, &te) && te.Code == "MAIL_ERROR" {
			middleware.RecordIntegrationError("smtp")
		}

		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outreach)
}
