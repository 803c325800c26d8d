package llm

import (
	"context"
	"errors"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadpilot/internal/entity"
)

type fakeMessager struct {
	text   string
	err    error
	params anthropic.MessageNewParams
}

func (f *fakeMessager) New(_ context.Context, params anthropic.MessageNewParams, _ ...option.RequestOption) (*anthropic.Message, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}

	return &anthropic.Message{Content: []anthropic.ContentBlockUnion{{Type: "text", Text: f.text}}}, nil
}

func TestScorerParsesFencedJSON(t *testing.T) {
	fake := &fakeMessager{text: "```json\n{\"design_score\": 40, \"seo_score\": 70, \"summary\": \"Dated layout\", \"issues\": [\"no viewport\"]}\n```"}
	scorer := NewScorerWithMessager(fake, "")

	lead := &entity.Lead{Name: "Acme", City: "Austin"}
	score, err := scorer.Score(context.Background(), lead, entity.SiteChecks{URL: "https://acme.com", Text: "Welcome to Acme"})
	require.NoError(t, err)

	assert.Equal(t, 40, score.Design)
	assert.Equal(t, 70, score.SEO)
	assert.Equal(t, "Dated layout", score.Summary)
	assert.Equal(t, []string{"no viewport"}, score.Issues)
	assert.Equal(t, DefaultModel, score.Scorer)

	assert.Equal(t, anthropic.Model(DefaultModel), fake.params.Model)
	require.Len(t, fake.params.Messages, 1)
}

func TestScorerErrors(t *testing.T) {
	ctx := context.Background()
	lead := &entity.Lead{Name: "Acme"}

	_, err := NewScorerWithMessager(&fakeMessager{err: errors.New("overloaded")}, "m").Score(ctx, lead, entity.SiteChecks{})
	assert.ErrorContains(t, err, "overloaded")

	_, err = NewScorerWithMessager(&fakeMessager{text: "  "}, "m").Score(ctx, lead, entity.SiteChecks{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = NewScorerWithMessager(&fakeMessager{text: "not json"}, "m").Score(ctx, lead, entity.SiteChecks{})
	assert.ErrorContains(t, err, "decode llm score")
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
}
