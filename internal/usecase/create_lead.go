package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
)

type CreateLeadUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewCreateLeadUseCase(repo entity.LeadRepositoryInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo}
}

// Execute adds one manually entered lead. A lead whose URL or phone matches
// an existing lead is rejected with a *DuplicateError.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
	if errs := ValidateCreateLeadInput(input); len(errs) > 0 {
		return nil, errs
	}

	lead, err := entity.NewLead(entity.LeadFields{
		Name:       input.Name,
		WebsiteURL: input.WebsiteURL,
		Phone:      input.Phone,
		Email:      input.Email,
		City:       input.City,
		Address:    input.Address,
	}, entity.SourceManual)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_LEAD", Message: err.Error()}
	}

	pool, err := loadSnapshot(ctx, uc.Repo)
	if err != nil {
		return nil, err
	}

	out := identity.Resolve(identity.Candidate{WebsiteURL: lead.WebsiteURL, Phone: lead.Phone}, pool, nil)
	if !out.Accepted {
		log.Info().Str("reason", string(out.Reason)).Str("conflicting_id", out.ConflictingID).Msg("manual lead rejected as duplicate")
		return nil, &DuplicateError{Outcome: out}
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		if dup := duplicateFromStorage(err, lead); dup != nil {
			return nil, dup
		}

		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to save lead", Err: err}
	}

	log.Info().Str("lead_id", lead.ID).Str("url_key", lead.URLKey).Msg("lead created")

	return lead, nil
}

func loadSnapshot(ctx context.Context, repo entity.LeadRepositoryInterface) (*identity.Snapshot, error) {
	records, err := repo.ListIdentities(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to load existing leads", Err: err}
	}

	return identity.NewSnapshot(records), nil
}

// duplicateFromStorage turns a unique index violation, raised when another
// request saved the same identity after our snapshot was taken, into the
// same rejection the resolver would have produced.
func duplicateFromStorage(err error, lead *entity.Lead) *DuplicateError {
	switch {
	case errors.Is(err, entity.ErrDuplicatePhone):
		return &DuplicateError{Outcome: identity.Outcome{
			Reason:           identity.ReasonDuplicatePhone,
			Field:            identity.FieldPhone,
			ConflictingValue: lead.PhoneKey,
			URLKey:           lead.URLKey,
			PhoneKey:         lead.PhoneKey,
		}}
	case errors.Is(err, entity.ErrDuplicateLead):
		return &DuplicateError{Outcome: identity.Outcome{
			Reason:           identity.ReasonDuplicateURL,
			Field:            identity.FieldURL,
			ConflictingValue: lead.URLKey,
			URLKey:           lead.URLKey,
			PhoneKey:         lead.PhoneKey,
		}}
	default:
		return nil
	}
}
