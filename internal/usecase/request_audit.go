package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/infra/queue"
)

// RequestAuditUseCase queues an audit for the background worker
type RequestAuditUseCase struct {
	Leads entity.LeadRepositoryInterface
	Queue AuditPublisher
	Lock  LockState
}

func NewRequestAuditUseCase(leads entity.LeadRepositoryInterface, publisher AuditPublisher, lock LockState) *RequestAuditUseCase {
	return &RequestAuditUseCase{Leads: leads, Queue: publisher, Lock: lock}
}

// Execute rejects leads with a running audit up front. The worker still goes
// through the lock, so a job queued twice audits the lead once at a time.
func (uc *RequestAuditUseCase) Execute(ctx context.Context, leadID string) error {
	if uc.Queue == nil {
		return ErrQueueNotConfigured
	}

	if _, err := uc.Leads.FindByID(ctx, leadID); err != nil {
		return err
	}

	if uc.Lock != nil && uc.Lock.IsLocked(leadID) {
		return ErrAuditInProgress
	}

	payload := queue.AuditPayload{LeadID: leadID, RequestedAt: time.Now().UTC()}
	if err := uc.Queue.PublishAudit(ctx, payload); err != nil {
		return &TechnicalError{Code: "QUEUE_ERROR", Message: "failed to enqueue audit", Err: err}
	}

	log.Info().Str("lead_id", leadID).Msg("audit queued")

	return nil
}
