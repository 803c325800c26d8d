package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

type MockLeadCreator struct{ mock.Mock }

func (m *MockLeadCreator) Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if l := args.Get(0); l != nil {
		return l.(*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLeadRepository struct{ mock.Mock }

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if l := args.Get(0); l != nil {
		return l.([]*entity.Lead), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLeadRepository) ListIdentities(ctx context.Context) ([]identity.Record, error) {
	args := m.Called(ctx)
	if r := args.Get(0); r != nil {
		return r.([]identity.Record), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockLeadRepository) MarkAudited(ctx context.Context, id string, score int) error {
	return m.Called(ctx, id, score).Error(0)
}

type MockLeadImporter struct{ mock.Mock }

func (m *MockLeadImporter) Execute(ctx context.Context, r io.Reader) (*usecase.ImportReport, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, string(body))
	if rep := args.Get(0); rep != nil {
		return rep.(*usecase.ImportReport), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadImporter) ExecuteRows(ctx context.Context, rows []map[string]string) (*usecase.ImportReport, error) {
	args := m.Called(ctx, rows)
	if rep := args.Get(0); rep != nil {
		return rep.(*usecase.ImportReport), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLeadDiscoverer struct{ mock.Mock }

func (m *MockLeadDiscoverer) Execute(ctx context.Context, input usecase.DiscoverLeadsInput) (*usecase.DiscoverLeadsOutput, error) {
	args := m.Called(ctx, input)
	if out := args.Get(0); out != nil {
		return out.(*usecase.DiscoverLeadsOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockLeadAuditor struct{ mock.Mock }

func (m *MockLeadAuditor) Execute(ctx context.Context, leadID string) (*entity.Audit, error) {
	args := m.Called(ctx, leadID)
	if a := args.Get(0); a != nil {
		return a.(*entity.Audit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLeadAuditor) LatestAudit(ctx context.Context, leadID string) (*entity.Audit, error) {
	args := m.Called(ctx, leadID)
	if a := args.Get(0); a != nil {
		return a.(*entity.Audit), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockAuditRequester struct{ mock.Mock }

func (m *MockAuditRequester) Execute(ctx context.Context, leadID string) error {
	return m.Called(ctx, leadID).Error(0)
}

type MockOutreachGenerator struct{ mock.Mock }

func (m *MockOutreachGenerator) Execute(ctx context.Context, input usecase.GenerateOutreachInput) (*entity.Outreach, error) {
	args := m.Called(ctx, input)
	if o := args.Get(0); o != nil {
		return o.(*entity.Outreach), args.Error(1)
	}
	return nil, args.Error(1)
}
