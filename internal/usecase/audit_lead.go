package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/auditlock"
	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/sitecheck"
)

type AuditLeadUseCase struct {
	Leads    entity.LeadRepositoryInterface
	Audits   entity.AuditRepositoryInterface
	Fetcher  SiteFetcher
	Scorer   SiteScorer
	Fallback SiteScorer
	Lock     auditlock.Locker
}

func NewAuditLeadUseCase(
	leads entity.LeadRepositoryInterface,
	audits entity.AuditRepositoryInterface,
	fetcher SiteFetcher,
	scorer SiteScorer,
	lock auditlock.Locker,
) *AuditLeadUseCase {
	return &AuditLeadUseCase{
		Leads:    leads,
		Audits:   audits,
		Fetcher:  fetcher,
		Scorer:   scorer,
		Fallback: sitecheck.HeuristicScorer{},
		Lock:     lock,
	}
}

// Execute audits the lead's website. At most one audit per lead runs at a
// time; a concurrent call gets ErrAuditInProgress and changes nothing.
func (uc *AuditLeadUseCase) Execute(ctx context.Context, leadID string) (*entity.Audit, error) {
	var audit *entity.Audit

	err := auditlock.Do(ctx, uc.Lock, leadID, func(ctx context.Context) error {
		var err error
		audit, err = uc.run(ctx, leadID)
		return err
	})
	if errors.Is(err, auditlock.ErrLocked) {
		log.Info().Str("lead_id", leadID).Msg("audit already running")
		return nil, ErrAuditInProgress
	}
	if err != nil {
		return nil, err
	}

	return audit, nil
}

func (uc *AuditLeadUseCase) run(ctx context.Context, leadID string) (*entity.Audit, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	target := lead.URLKey
	if target == "" {
		target = lead.WebsiteURL
	}

	page, err := uc.Fetcher.Fetch(ctx, target)
	if err != nil {
		log.Warn().Err(err).Str("lead_id", leadID).Str("url", target).Msg("website fetch failed")
		return nil, &DomainError{Code: "SITE_UNREACHABLE", Message: "could not load the lead's website: " + err.Error()}
	}

	checks := sitecheck.Analyze(page.URL, page.HTML)
	checks.StatusCode = page.StatusCode

	score, err := uc.score(ctx, lead, checks)
	if err != nil {
		return nil, &TechnicalError{Code: "SCORING_FAILED", Message: "failed to score website", Err: err}
	}

	audit := entity.NewAudit(lead.ID, score.Design, score.SEO, score.Summary, score.Issues, checks, score.Scorer)

	if err := uc.Audits.Create(ctx, audit); err != nil {
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to save audit", Err: err}
	}

	if err := uc.Leads.MarkAudited(ctx, lead.ID, audit.OverallScore); err != nil {
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to update lead status", Err: err}
	}

	log.Info().
		Str("lead_id", lead.ID).
		Int("overall", audit.OverallScore).
		Str("scorer", audit.Scorer).
		Msg("audit completed")

	return audit, nil
}

func (uc *AuditLeadUseCase) score(ctx context.Context, lead *entity.Lead, checks entity.SiteChecks) (*sitecheck.Score, error) {
	if uc.Scorer == nil {
		return uc.fallback(ctx, lead, checks)
	}

	score, err := uc.Scorer.Score(ctx, lead, checks)
	if err == nil {
		return score, nil
	}

	if uc.Fallback == nil || ctx.Err() != nil {
		return nil, err
	}

	log.Warn().Err(err).Str("lead_id", lead.ID).Msg("scorer failed, using heuristic fallback")

	return uc.fallback(ctx, lead, checks)
}

func (uc *AuditLeadUseCase) fallback(ctx context.Context, lead *entity.Lead, checks entity.SiteChecks) (*sitecheck.Score, error) {
	if uc.Fallback == nil {
		return sitecheck.HeuristicScorer{}.Score(ctx, lead, checks)
	}

	return uc.Fallback.Score(ctx, lead, checks)
}

// LatestAudit returns the most recent audit of a lead
func (uc *AuditLeadUseCase) LatestAudit(ctx context.Context, leadID string) (*entity.Audit, error) {
	if _, err := uc.Leads.FindByID(ctx, leadID); err != nil {
		return nil, err
	}

	return uc.Audits.FindLatestByLeadID(ctx, leadID)
}
