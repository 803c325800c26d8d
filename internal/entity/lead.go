package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/leadpilot/internal/identity"
)

// LeadSource records how a lead entered the system
type LeadSource string

const (
	SourceManual    LeadSource = "manual"
	SourceCSV       LeadSource = "csv"
	SourceDiscovery LeadSource = "discovery"
)

// LeadStatus is the lead's position in the audit/outreach funnel
type LeadStatus string

const (
	StatusNew       LeadStatus = "NEW"
	StatusAudited   LeadStatus = "AUDITED"
	StatusContacted LeadStatus = "CONTACTED"
)

// Lead is a business prospect. URLKey and PhoneKey are the normalized identity
// keys; storage enforces uniqueness on them.
type Lead struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	WebsiteURL string     `json:"website_url"`
	URLKey     string     `json:"url_key"`
	Phone      string     `json:"phone,omitempty"`
	PhoneKey   string     `json:"phone_key,omitempty"`
	Email      string     `json:"email,omitempty"`
	City       string     `json:"city,omitempty"`
	Address    string     `json:"address,omitempty"`
	Source     LeadSource `json:"source"`
	Status     LeadStatus `json:"status"`
	Score      *int       `json:"score,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// LeadFields carries the user supplied part of a lead
type LeadFields struct {
	Name       string
	WebsiteURL string
	Phone      string
	Email      string
	City       string
	Address    string
}

// NewLead builds a lead in status NEW with its identity keys computed
func NewLead(f LeadFields, source LeadSource) (*Lead, error) {
	now := time.Now()

	lead := &Lead{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(f.Name),
		WebsiteURL: strings.TrimSpace(f.WebsiteURL),
		Phone:      strings.TrimSpace(f.Phone),
		Email:      strings.TrimSpace(f.Email),
		City:       strings.TrimSpace(f.City),
		Address:    strings.TrimSpace(f.Address),
		Source:     source,
		Status:     StatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	keys := identity.KeysOf(lead.WebsiteURL, lead.Phone)
	lead.URLKey = keys.URL
	lead.PhoneKey = keys.Phone

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.WebsiteURL == "" {
		return errors.New("website URL is required")
	}

	switch l.Source {
	case SourceManual, SourceCSV, SourceDiscovery:
	default:
		return errors.New("invalid lead source")
	}

	return nil
}

// Identity returns the view of the lead used for duplicate detection
func (l *Lead) Identity() identity.Record {
	return identity.Record{ID: l.ID, WebsiteURL: l.WebsiteURL, Phone: l.Phone}
}

// LeadFilter narrows List. Zero values mean no filter.
type LeadFilter struct {
	Status LeadStatus
	Source LeadSource
	Limit  int
	Offset int
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	Delete(ctx context.Context, id string) error

	// ListIdentities returns every persisted lead's identity fields, oldest first
	ListIdentities(ctx context.Context) ([]identity.Record, error)

	UpdateStatus(ctx context.Context, id string, status LeadStatus) error
	// MarkAudited sets status AUDITED and stores the overall score
	MarkAudited(ctx context.Context, id string, score int) error
}
