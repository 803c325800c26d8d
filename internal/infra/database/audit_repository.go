package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xavierca1/leadpilot/internal/entity"
)

type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Create(ctx context.Context, a *entity.Audit) error {
	issues, err := json.Marshal(a.Issues)
	if err != nil {
		return fmt.Errorf("encode audit issues: %w", err)
	}

	checks, err := json.Marshal(a.Checks)
	if err != nil {
		return fmt.Errorf("encode audit checks: %w", err)
	}

	query := `
		INSERT INTO audits (id, lead_id, design_score, seo_score, overall_score, summary, issues, checks, scorer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.DB.ExecContext(ctx, query,
		a.ID,
		a.LeadID,
		a.DesignScore,
		a.SEOScore,
		a.OverallScore,
		a.Summary,
		string(issues),
		string(checks),
		a.Scorer,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit: %w", err)
	}

	return nil
}

func (r *AuditRepository) FindLatestByLeadID(ctx context.Context, leadID string) (*entity.Audit, error) {
	query := `
		SELECT id, lead_id, design_score, seo_score, overall_score, summary, issues, checks, scorer, created_at
		FROM audits
		WHERE lead_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		a              entity.Audit
		issues, checks []byte
	)

	err := r.DB.QueryRowContext(ctx, query, leadID).Scan(
		&a.ID,
		&a.LeadID,
		&a.DesignScore,
		&a.SEOScore,
		&a.OverallScore,
		&a.Summary,
		&issues,
		&checks,
		&a.Scorer,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrAuditNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find latest audit: %w", err)
	}

	if err := json.Unmarshal(issues, &a.Issues); err != nil {
		return nil, fmt.Errorf("decode audit issues: %w", err)
	}
	if err := json.Unmarshal(checks, &a.Checks); err != nil {
		return nil, fmt.Errorf("decode audit checks: %w", err)
	}

	return &a, nil
}
