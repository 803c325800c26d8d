package sitecheck

import (
	"context"
	"fmt"
	"time"

	"github.com/xavierca1/leadpilot/internal/entity"
)

// HeuristicScorerName identifies scores produced without a model
const HeuristicScorerName = "heuristic"

// Score is a scorer's verdict on a site
type Score struct {
	Design  int      `json:"design_score"`
	SEO     int      `json:"seo_score"`
	Summary string   `json:"summary"`
	Issues  []string `json:"issues"`
	Scorer  string   `json:"-"`
}

// HeuristicScorer scores a site from its checks alone. It is the fallback
// when no LLM is configured or the LLM call fails.
type HeuristicScorer struct {
	Now func() time.Time
}

func (h HeuristicScorer) Score(_ context.Context, lead *entity.Lead, c entity.SiteChecks) (*Score, error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	seo, design := 100, 100
	var issues []string

	penalize := func(score *int, points int, issue string) {
		*score -= points
		issues = append(issues, issue)
	}

	if !c.HTTPS {
		penalize(&seo, 20, "site is not served over HTTPS")
	}

	switch n := len(c.Title); {
	case n == 0:
		penalize(&seo, 25, "page has no title")
	case n < 10 || n > 60:
		penalize(&seo, 5, fmt.Sprintf("title length %d is outside 10-60 characters", n))
	}

	if c.MetaDescription == "" {
		penalize(&seo, 20, "missing meta description")
	}

	switch {
	case c.H1Count == 0:
		penalize(&seo, 10, "no h1 heading")
	case c.H1Count > 1:
		penalize(&seo, 5, fmt.Sprintf("%d h1 headings", c.H1Count))
	}

	if c.AltCoverage() < 0.8 {
		penalize(&seo, 10, fmt.Sprintf("only %d of %d images have alt text", c.ImagesWithAlt, c.ImageCount))
	}

	if c.WordCount < 300 {
		penalize(&seo, 10, fmt.Sprintf("thin content (%d words)", c.WordCount))
	}

	if !c.HasViewport {
		penalize(&design, 30, "no viewport meta tag, likely not mobile friendly")
	}

	if c.WordCount < 100 {
		penalize(&design, 15, "very little visible text")
	}

	if c.CopyrightYear > 0 && now().Year()-c.CopyrightYear >= 2 {
		penalize(&design, 20, fmt.Sprintf("copyright notice last updated %d", c.CopyrightYear))
	}

	if !c.HasPhone {
		penalize(&design, 10, "no phone number on the homepage")
	}

	switch {
	case !c.HasEmail:
		penalize(&design, 10, "no contact email on the homepage")
	case !c.EmailOnDomain:
		penalize(&design, 5, "contact email is not on the business domain")
	}

	name := "the site"
	if lead != nil && lead.Name != "" {
		name = lead.Name
	}

	return &Score{
		Design:  max(design, 0),
		SEO:     max(seo, 0),
		Summary: fmt.Sprintf("%s has %d issue(s) found by automated checks.", name, len(issues)),
		Issues:  issues,
		Scorer:  HeuristicScorerName,
	}, nil
}
