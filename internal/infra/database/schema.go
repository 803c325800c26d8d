package database

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	urlKeyIndex   = "leads_url_key_idx"
	phoneKeyIndex = "leads_phone_key_idx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		website_url TEXT NOT NULL,
		url_key     TEXT NOT NULL,
		phone       TEXT NOT NULL DEFAULT '',
		phone_key   TEXT NOT NULL DEFAULT '',
		email       TEXT NOT NULL DEFAULT '',
		city        TEXT NOT NULL DEFAULT '',
		address     TEXT NOT NULL DEFAULT '',
		source      TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'NEW',
		score       INTEGER,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + urlKeyIndex + ` ON leads (url_key)`,
	// invalid phones are stored with an empty key and never collide
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + phoneKeyIndex + ` ON leads (phone_key) WHERE phone_key <> ''`,
	`CREATE INDEX IF NOT EXISTS leads_status_idx ON leads (status)`,
	`CREATE TABLE IF NOT EXISTS audits (
		id            TEXT PRIMARY KEY,
		lead_id       TEXT NOT NULL REFERENCES leads (id) ON DELETE CASCADE,
		design_score  INTEGER NOT NULL,
		seo_score     INTEGER NOT NULL,
		overall_score INTEGER NOT NULL,
		summary       TEXT NOT NULL DEFAULT '',
		issues        JSONB NOT NULL DEFAULT '[]',
		checks        JSONB NOT NULL DEFAULT '{}',
		scorer        TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS audits_lead_created_idx ON audits (lead_id, created_at DESC)`,
}

// Migrate creates the tables and indexes in one transaction. Safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return tx.Commit()
}
