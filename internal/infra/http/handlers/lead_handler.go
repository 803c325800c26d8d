package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type LeadCreator interface {
	Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error)
}

type LeadHandler struct {
	Creator LeadCreator
	Repo    entity.LeadRepositoryInterface
}

func NewLeadHandler(creator LeadCreator, repo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{Creator: creator, Repo: repo}
}

type listLeadsResponse struct {
	Leads  []*entity.Lead `json:"leads"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// Create handles POST /leads
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body")
		return
	}

	lead, err := h.Creator.Execute(r.Context(), input)
	if err != nil {
		var dup *usecase.DuplicateError
		if errors.As(err, &dup) {
			middleware.RecordDedupeOutcome(string(dup.Outcome.Reason))
		}

		writeError(w, r, err)
		return
	}

	middleware.RecordDedupeOutcome("")
	writeJSON(w, http.StatusCreated, lead)
}

// List handles GET /leads?status=&source=&limit=&offset=
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := entity.LeadFilter{
		Status: entity.LeadStatus(q.Get("status")),
		Source: entity.LeadSource(q.Get("source")),
	}

	var err error
	if filter.Limit, err = queryInt(q.Get("limit")); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_QUERY", "limit must be a non-negative integer")
		return
	}
	if filter.Offset, err = queryInt(q.Get("offset")); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_QUERY", "offset must be a non-negative integer")
		return
	}

	leads, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, &usecase.TechnicalError{Code: "DB_ERROR", Message: "failed to list leads", Err: err})
		return
	}

	if leads == nil {
		leads = []*entity.Lead{}
	}

	writeJSON(w, http.StatusOK, listLeadsResponse{Leads: leads, Limit: filter.Limit, Offset: filter.Offset})
}

// Get handles GET /leads/{id}
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Repo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Delete handles DELETE /leads/{id}
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("invalid integer")
	}

	return n, nil
}
