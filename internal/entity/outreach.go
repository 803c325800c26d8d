package entity

import "time"

// Outreach is a generated cold email for one lead
type Outreach struct {
	LeadID       string     `json:"lead_id"`
	To           string     `json:"to,omitempty"`
	Subject      string     `json:"subject"`
	BodyMarkdown string     `json:"body_markdown"`
	BodyHTML     string     `json:"body_html"`
	Sent         bool       `json:"sent"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
}
