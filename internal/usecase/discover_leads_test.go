package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
	"github.com/xavierca1/leadpilot/internal/infra/integration/places"
)

func TestDiscoverLeads(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLeadRepository)
	searcher := new(MockPlaceSearcher)

	searcher.On("SearchPlaces", ctx, "plumbers in Austin", 20).Return([]places.Place{
		{Name: "Acme", WebsiteURL: "https://acme.com/", Phone: "(555) 111-2222"},
		{Name: "No Site", Phone: "(555) 999-0000"},
		{Name: "Acme Branch", WebsiteURL: "http://www.acme.com"},
		{Name: "Known", WebsiteURL: "known.com"},
	}, nil)
	repo.On("ListIdentities", ctx).Return([]identity.Record{{ID: "k1", WebsiteURL: "https://known.com"}}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Source == entity.SourceDiscovery && l.City == "Austin"
	})).Return(nil)

	out, err := NewDiscoverLeadsUseCase(repo, searcher).Execute(ctx, DiscoverLeadsInput{Query: "plumbers", City: "Austin"})
	require.NoError(t, err)

	require.Len(t, out.Imported, 1)
	assert.Equal(t, "Acme", out.Imported[0].Name)
	assert.Equal(t, []SkippedPlace{{Name: "No Site", Reason: "no_website"}}, out.Skipped)

	require.Len(t, out.Duplicates, 2)
	assert.Equal(t, identity.ReasonDuplicateInBatch, out.Duplicates[0].Reason)
	assert.Equal(t, 3, out.Duplicates[0].Row)
	assert.Equal(t, identity.ReasonDuplicateURL, out.Duplicates[1].Reason)
	assert.Equal(t, "k1", out.Duplicates[1].ConflictingID)
}

func TestDiscoverLeadsErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewDiscoverLeadsUseCase(new(MockLeadRepository), nil).Execute(ctx, DiscoverLeadsInput{Query: "x"})
	assert.ErrorIs(t, err, ErrDiscoveryNotConfigured)

	_, err = NewDiscoverLeadsUseCase(new(MockLeadRepository), new(MockPlaceSearcher)).Execute(ctx, DiscoverLeadsInput{})
	var verrs ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	searcher := new(MockPlaceSearcher)
	searcher.On("SearchPlaces", ctx, "x", 5).Return(nil, errors.New("quota"))

	_, err = NewDiscoverLeadsUseCase(new(MockLeadRepository), searcher).Execute(ctx, DiscoverLeadsInput{Query: "x", Limit: 5})
	assert.True(t, IsTechnicalError(err))
}
