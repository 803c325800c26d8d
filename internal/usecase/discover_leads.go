package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
)

const defaultDiscoverLimit = 20

type DiscoverLeadsUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Searcher PlaceSearcher
}

func NewDiscoverLeadsUseCase(repo entity.LeadRepositoryInterface, searcher PlaceSearcher) *DiscoverLeadsUseCase {
	return &DiscoverLeadsUseCase{Repo: repo, Searcher: searcher}
}

// Execute searches for businesses and saves the ones that have a website and
// are not already known. Results are resolved in search order as one batch.
func (uc *DiscoverLeadsUseCase) Execute(ctx context.Context, input DiscoverLeadsInput) (*DiscoverLeadsOutput, error) {
	if errs := ValidateDiscoverInput(input); len(errs) > 0 {
		return nil, errs
	}

	if uc.Searcher == nil {
		return nil, ErrDiscoveryNotConfigured
	}

	query := strings.TrimSpace(input.Query)
	if city := strings.TrimSpace(input.City); city != "" {
		query = fmt.Sprintf("%s in %s", query, city)
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultDiscoverLimit
	}

	found, err := uc.Searcher.SearchPlaces(ctx, query, limit)
	if err != nil {
		return nil, &TechnicalError{Code: "DISCOVERY_FAILED", Message: "place search failed", Err: err}
	}

	output := &DiscoverLeadsOutput{
		Query:      query,
		Imported:   []*entity.Lead{},
		Duplicates: []DuplicateRow{},
		Skipped:    []SkippedPlace{},
	}

	pool, err := loadSnapshot(ctx, uc.Repo)
	if err != nil {
		return nil, err
	}

	seen := identity.NewBatchSeen()

	for i, place := range found {
		if strings.TrimSpace(place.WebsiteURL) == "" {
			output.Skipped = append(output.Skipped, SkippedPlace{Name: place.Name, Reason: "no_website"})
			continue
		}

		lead, err := entity.NewLead(entity.LeadFields{
			Name:       place.Name,
			WebsiteURL: place.WebsiteURL,
			Phone:      place.Phone,
			City:       input.City,
			Address:    place.Address,
		}, entity.SourceDiscovery)
		if err != nil {
			output.Skipped = append(output.Skipped, SkippedPlace{Name: place.Name, Reason: err.Error()})
			continue
		}

		out := identity.Resolve(identity.Candidate{WebsiteURL: lead.WebsiteURL, Phone: lead.Phone}, pool, seen)
		if !out.Accepted {
			output.Duplicates = append(output.Duplicates, newDuplicateRow(i+1, place.Name, out))
			continue
		}

		if err := uc.Repo.Create(ctx, lead); err != nil {
			if dup := duplicateFromStorage(err, lead); dup != nil {
				output.Duplicates = append(output.Duplicates, newDuplicateRow(i+1, place.Name, dup.Outcome))
				continue
			}

			return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to save discovered lead", Err: err}
		}

		output.Imported = append(output.Imported, lead)
	}

	log.Info().
		Str("query", query).
		Int("found", len(found)).
		Int("imported", len(output.Imported)).
		Int("duplicates", len(output.Duplicates)).
		Msg("lead discovery finished")

	return output, nil
}
