package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, website_url, url_key, phone, phone_key, email, city, address, source, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.WebsiteURL,
		lead.URLKey,
		lead.Phone,
		lead.PhoneKey,
		lead.Email,
		lead.City,
		lead.Address,
		lead.Source,
		lead.Status,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

const leadColumns = `id, name, website_url, url_key, phone, phone_key, email, city, address, source, status, score, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead  entity.Lead
		score sql.NullInt64
	)

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.WebsiteURL,
		&lead.URLKey,
		&lead.Phone,
		&lead.PhoneKey,
		&lead.Email,
		&lead.City,
		&lead.Address,
		&lead.Source,
		&lead.Status,
		&score,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if score.Valid {
		v := int(score.Int64)
		lead.Score = &v
	}

	return &lead, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead: %w", err)
	}

	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query, args := buildListQuery(filter)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

func buildListQuery(filter entity.LeadFilter) (string, []any) {
	var (
		where []string
		args  []any
	)

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	if filter.Source != "" {
		args = append(args, filter.Source)
		where = append(where, fmt.Sprintf("source = $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)

	var b strings.Builder
	b.WriteString(`SELECT ` + leadColumns + ` FROM leads`)

	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	args = append(args, limit, max(filter.Offset, 0))
	fmt.Fprintf(&b, " ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}

	return requireAffected(res)
}

func (r *LeadRepository) ListIdentities(ctx context.Context) ([]identity.Record, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, website_url, phone FROM leads ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list lead identities: %w", err)
	}
	defer rows.Close()

	var records []identity.Record
	for rows.Next() {
		var rec identity.Record
		if err := rows.Scan(&rec.ID, &rec.WebsiteURL, &rec.Phone); err != nil {
			return nil, fmt.Errorf("scan lead identity: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE leads SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}

	return requireAffected(res)
}

func (r *LeadRepository) MarkAudited(ctx context.Context, id string, score int) error {
	query := `UPDATE leads SET status = $2, score = $3, updated_at = NOW() WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query, id, entity.StatusAudited, score)
	if err != nil {
		return fmt.Errorf("mark lead audited: %w", err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

// mapUniqueViolation translates a 23505 on one of the identity indexes into
// the matching entity sentinel
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return fmt.Errorf("insert lead: %w", err)
	}

	switch pqErr.Constraint {
	case phoneKeyIndex:
		return entity.ErrDuplicatePhone
	case urlKeyIndex:
		return entity.ErrDuplicateURL
	default:
		return entity.ErrDuplicateLead
	}
}
