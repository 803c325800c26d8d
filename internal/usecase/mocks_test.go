package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
	"github.com/xavierca1/leadpilot/internal/infra/integration/places"
	"github.com/xavierca1/leadpilot/internal/infra/queue"
	"github.com/xavierca1/leadpilot/internal/sitecheck"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) ListIdentities(ctx context.Context) ([]identity.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Record), args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockLeadRepository) MarkAudited(ctx context.Context, id string, score int) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, audit *entity.Audit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockAuditRepository) FindLatestByLeadID(ctx context.Context, leadID string) (*entity.Audit, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Audit), args.Error(1)
}

type MockSiteFetcher struct {
	mock.Mock
}

func (m *MockSiteFetcher) Fetch(ctx context.Context, pageURL string) (*sitecheck.Page, error) {
	args := m.Called(ctx, pageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sitecheck.Page), args.Error(1)
}

type MockSiteScorer struct {
	mock.Mock
}

func (m *MockSiteScorer) Score(ctx context.Context, lead *entity.Lead, checks entity.SiteChecks) (*sitecheck.Score, error) {
	args := m.Called(ctx, lead, checks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sitecheck.Score), args.Error(1)
}

type MockPlaceSearcher struct {
	mock.Mock
}

func (m *MockPlaceSearcher) SearchPlaces(ctx context.Context, query string, limit int) ([]places.Place, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]places.Place), args.Error(1)
}

type MockAuditPublisher struct {
	mock.Mock
}

func (m *MockAuditPublisher) PublishAudit(ctx context.Context, payload queue.AuditPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOutreach(to, subject, textBody, htmlBody string) error {
	args := m.Called(to, subject, textBody, htmlBody)
	return args.Error(0)
}
