package database

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/leadpilot/internal/entity"
)

func TestMapUniqueViolation(t *testing.T) {
	assert.ErrorIs(t, mapUniqueViolation(&pq.Error{Code: "23505", Constraint: urlKeyIndex}), entity.ErrDuplicateURL)
	assert.ErrorIs(t, mapUniqueViolation(&pq.Error{Code: "23505", Constraint: phoneKeyIndex}), entity.ErrDuplicatePhone)
	assert.ErrorIs(t, mapUniqueViolation(&pq.Error{Code: "23505", Constraint: "leads_pkey"}), entity.ErrDuplicateLead)

	other := &pq.Error{Code: "23502"}
	err := mapUniqueViolation(other)
	assert.NotErrorIs(t, err, entity.ErrDuplicateLead)
	assert.ErrorIs(t, err, other)

	plain := errors.New("connection reset")
	assert.ErrorIs(t, mapUniqueViolation(plain), plain)
}

func TestBuildListQuery(t *testing.T) {
	query, args := buildListQuery(entity.LeadFilter{})
	assert.Equal(t, "SELECT "+leadColumns+" FROM leads ORDER BY created_at DESC, id LIMIT $1 OFFSET $2", query)
	assert.Equal(t, []any{defaultListLimit, 0}, args)

	query, args = buildListQuery(entity.LeadFilter{Status: entity.StatusAudited, Source: entity.SourceCSV, Limit: 10000, Offset: 20})
	assert.Contains(t, query, "WHERE status = $1 AND source = $2")
	assert.Contains(t, query, "LIMIT $3 OFFSET $4")
	assert.Equal(t, []any{entity.StatusAudited, entity.SourceCSV, maxListLimit, 20}, args)
}
