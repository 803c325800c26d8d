package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/sitecheck"
)

// DefaultModel is used when LLM_MODEL is not set
const DefaultModel = "claude-sonnet-4-20250514"

const systemPrompt = "You review small business websites for a web design agency. Score the site's visual design and SEO from 0 to 100 using only the facts given. Return strict JSON only: {\"design_score\": int, \"seo_score\": int, \"summary\": string, \"issues\": [string]}."

var ErrEmptyResponse = errors.New("llm returned no text")

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Scorer asks Claude to grade a site from its heuristic checks and text
type Scorer struct {
	messages  AnthropicMessager
	model     string
	maxTokens int64
}

func NewScorer(apiKey, model string) *Scorer {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))

	return NewScorerWithMessager(&c.Messages, model)
}

func NewScorerWithMessager(m AnthropicMessager, model string) *Scorer {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	return &Scorer{messages: m, model: model, maxTokens: 1024}
}

func (s *Scorer) ModelName() string { return s.model }

func (s *Scorer) Score(ctx context.Context, lead *entity.Lead, checks entity.SiteChecks) (*sitecheck.Score, error) {
	prompt, err := buildPrompt(lead, checks)
	if err != nil {
		return nil, err
	}

	resp, err := s.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.model),
		MaxTokens:   s.maxTokens,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic request: %w", err)
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}

	raw := strings.TrimSpace(sb.String())
	if raw == "" {
		return nil, ErrEmptyResponse
	}

	var score sitecheck.Score
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &score); err != nil {
		return nil, fmt.Errorf("decode llm score: %w", err)
	}

	score.Scorer = s.model

	return &score, nil
}

func buildPrompt(lead *entity.Lead, checks entity.SiteChecks) (string, error) {
	facts, err := json.MarshalIndent(checks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode site checks: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Business: %s\n", lead.Name)
	if lead.City != "" {
		fmt.Fprintf(&b, "City: %s\n", lead.City)
	}
	fmt.Fprintf(&b, "Website: %s\n\nAutomated checks:\n%s\n", checks.URL, facts)
	fmt.Fprintf(&b, "\nVisible homepage text:\n%s\n", checks.Text)

	return b.String(), nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
