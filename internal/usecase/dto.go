package usecase

import (
	"github.com/xavierca1/leadpilot/internal/csvimport"
	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
)

type CreateLeadInput struct {
	Name       string `json:"name"`
	WebsiteURL string `json:"website_url"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	City       string `json:"city"`
	Address    string `json:"address"`
}

// ImportedRow is a row that became a lead
type ImportedRow struct {
	Row    int    `json:"row"`
	LeadID string `json:"lead_id"`
	Name   string `json:"name"`
}

// DuplicateRow is a row rejected by the duplicate resolver
type DuplicateRow struct {
	Row              int             `json:"row"`
	Name             string          `json:"name"`
	Reason           identity.Reason `json:"reason"`
	Field            identity.Field  `json:"field"`
	ConflictingValue string          `json:"conflicting_value"`
	ConflictingID    string          `json:"conflicting_id,omitempty"`
}

// ImportReport summarizes one CSV or JSON import. Every submitted row lands in
// exactly one of the three lists.
type ImportReport struct {
	Imported   []ImportedRow        `json:"imported"`
	Duplicates []DuplicateRow       `json:"duplicates"`
	Errors     []csvimport.RowError `json:"errors"`
}

type DiscoverLeadsInput struct {
	Query string `json:"query"`
	City  string `json:"city"`
	Limit int    `json:"limit"`
}

// SkippedPlace is a search result that could not become a lead
type SkippedPlace struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type DiscoverLeadsOutput struct {
	Query      string         `json:"query"`
	Imported   []*entity.Lead `json:"imported"`
	Duplicates []DuplicateRow `json:"duplicates"`
	Skipped    []SkippedPlace `json:"skipped"`
}

type GenerateOutreachInput struct {
	LeadID        string `json:"-"`
	SenderName    string `json:"sender_name"`
	SenderCompany string `json:"sender_company"`
	To            string `json:"to"`
	Send          bool   `json:"send"`
}

func newDuplicateRow(row int, name string, out identity.Outcome) DuplicateRow {
	return DuplicateRow{
		Row:              row,
		Name:             name,
		Reason:           out.Reason,
		Field:            out.Field,
		ConflictingValue: out.ConflictingValue,
		ConflictingID:    out.ConflictingID,
	}
}
