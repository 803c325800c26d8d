package usecase

import (
	"context"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/infra/integration/places"
	"github.com/xavierca1/leadpilot/internal/infra/queue"
	"github.com/xavierca1/leadpilot/internal/sitecheck"
)

type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]places.Place, error)
}

type SiteFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*sitecheck.Page, error)
}

type SiteScorer interface {
	Score(ctx context.Context, lead *entity.Lead, checks entity.SiteChecks) (*sitecheck.Score, error)
}

type AuditPublisher interface {
	PublishAudit(ctx context.Context, payload queue.AuditPayload) error
}

type EmailService interface {
	SendOutreach(to, subject, textBody, htmlBody string) error
}

// LockState reports whether an audit is in flight without taking the lock
type LockState interface {
	IsLocked(id string) bool
}
