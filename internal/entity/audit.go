package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SiteChecks are the heuristic facts collected from a lead's homepage
type SiteChecks struct {
	URL             string `json:"url"`
	StatusCode      int    `json:"status_code,omitempty"`
	HTTPS           bool   `json:"https"`
	Title           string `json:"title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	HasViewport     bool   `json:"has_viewport"`
	H1Count         int    `json:"h1_count"`
	ImageCount      int    `json:"image_count"`
	ImagesWithAlt   int    `json:"images_with_alt"`
	WordCount       int    `json:"word_count"`
	HasPhone        bool   `json:"has_phone"`
	HasEmail        bool   `json:"has_email"`
	EmailOnDomain   bool   `json:"email_on_domain"`
	CopyrightYear   int    `json:"copyright_year,omitempty"`

	// Text is the visible page text, truncated. Not persisted.
	Text string `json:"-"`
}

// AltCoverage is the share of images carrying an alt attribute, 1 when there are none
func (c SiteChecks) AltCoverage() float64 {
	if c.ImageCount == 0 {
		return 1
	}

	return float64(c.ImagesWithAlt) / float64(c.ImageCount)
}

type Audit struct {
	ID           string     `json:"id"`
	LeadID       string     `json:"lead_id"`
	DesignScore  int        `json:"design_score"`
	SEOScore     int        `json:"seo_score"`
	OverallScore int        `json:"overall_score"`
	Summary      string     `json:"summary"`
	Issues       []string   `json:"issues"`
	Checks       SiteChecks `json:"checks"`
	Scorer       string     `json:"scorer"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewAudit clamps both scores to 0..100 and derives the overall score as their rounded mean
func NewAudit(leadID string, design, seo int, summary string, issues []string, checks SiteChecks, scorer string) *Audit {
	design = clampScore(design)
	seo = clampScore(seo)

	if issues == nil {
		issues = []string{}
	}

	return &Audit{
		ID:           uuid.New().String(),
		LeadID:       leadID,
		DesignScore:  design,
		SEOScore:     seo,
		OverallScore: (design + seo + 1) / 2,
		Summary:      summary,
		Issues:       issues,
		Checks:       checks,
		Scorer:       scorer,
		CreatedAt:    time.Now(),
	}
}

func clampScore(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

type AuditRepositoryInterface interface {
	Create(ctx context.Context, audit *Audit) error
	FindLatestByLeadID(ctx context.Context, leadID string) (*Audit, error)
}
