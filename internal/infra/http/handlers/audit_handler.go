package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/infra/http/middleware"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type LeadAuditor interface {
	Execute(ctx context.Context, leadID string) (*entity.Audit, error)
	LatestAudit(ctx context.Context, leadID string) (*entity.Audit, error)
}

type AuditRequester interface {
	Execute(ctx context.Context, leadID string) error
}

type AuditHandler struct {
	Auditor   LeadAuditor
	Requester AuditRequester
}

func NewAuditHandler(auditor LeadAuditor, requester AuditRequester) *AuditHandler {
	return &AuditHandler{Auditor: auditor, Requester: requester}
}

type auditQueuedResponse struct {
	LeadID string `json:"lead_id"`
	Status string `json:"status"`
}

// Run handles POST /leads/{id}/audit and audits inline
func (h *AuditHandler) Run(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	audit, err := h.Auditor.Execute(r.Context(), leadID)
	if err != nil {
		recordAuditFailure(err)
		writeError(w, r, err)
		return
	}

	middleware.RecordAudit("success")
	writeJSON(w, http.StatusOK, audit)
}

// Enqueue handles POST /leads/{id}/audit/async
func (h *AuditHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	if err := h.Requester.Execute(r.Context(), leadID); err != nil {
		if errors.Is(err, usecase.ErrAuditInProgress) {
			middleware.RecordAuditLockContention()
		}

		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, auditQueuedResponse{LeadID: leadID, Status: "queued"})
}

// Latest handles GET /leads/{id}/audit
func (h *AuditHandler) Latest(w http.ResponseWriter, r *http.Request) {
	audit, err := h.Auditor.LatestAudit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, audit)
}

func recordAuditFailure(err error) {
	switch {
	case errors.Is(err, usecase.ErrAuditInProgress):
		middleware.RecordAuditLockContention()
	case errors.Is(err, entity.ErrLeadNotFound):
		// nothing was audited
	case usecase.IsDomainError(err):
		middleware.RecordAudit("unreachable")
	default:
		middleware.RecordAudit("failed")
	}
}
