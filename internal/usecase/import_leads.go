package usecase

import (
	"cmp"
	"context"
	"io"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/xavierca1/leadpilot/internal/csvimport"
	"github.com/xavierca1/leadpilot/internal/entity"
	"github.com/xavierca1/leadpilot/internal/identity"
)

type ImportLeadsUseCase struct {
	Repo    entity.LeadRepositoryInterface
	MaxRows int
}

func NewImportLeadsUseCase(repo entity.LeadRepositoryInterface, maxRows int) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Repo: repo, MaxRows: maxRows}
}

// Execute imports a CSV upload. Only an unreadable file fails the call; bad
// or duplicate rows are reported and the rest are saved.
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, r io.Reader) (*ImportReport, error) {
	batch, err := csvimport.Parse(r, csvimport.WithMaxRows(uc.MaxRows))
	if err != nil {
		return nil, err
	}

	return uc.importBatch(ctx, batch)
}

// ExecuteRows imports rows already decoded from JSON
func (uc *ImportLeadsUseCase) ExecuteRows(ctx context.Context, rows []map[string]string) (*ImportReport, error) {
	return uc.importBatch(ctx, csvimport.Validate(rows, csvimport.WithMaxRows(uc.MaxRows)))
}

func (uc *ImportLeadsUseCase) importBatch(ctx context.Context, batch *csvimport.Batch) (*ImportReport, error) {
	report := &ImportReport{
		Imported:   []ImportedRow{},
		Duplicates: []DuplicateRow{},
		Errors:     append([]csvimport.RowError{}, batch.Errors...),
	}

	if len(batch.Rows) == 0 {
		return report, nil
	}

	pool, err := loadSnapshot(ctx, uc.Repo)
	if err != nil {
		return nil, err
	}

	seen := identity.NewBatchSeen()

	for _, row := range batch.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lead, err := entity.NewLead(entity.LeadFields{
			Name:       row.Name,
			WebsiteURL: row.WebsiteURL,
			Phone:      row.Phone,
			Email:      row.Email,
			City:       row.City,
			Address:    row.Address,
		}, entity.SourceCSV)
		if err != nil {
			report.Errors = append(report.Errors, csvimport.RowError{Row: row.Number, Message: err.Error()})
			continue
		}

		out := identity.Resolve(identity.Candidate{WebsiteURL: row.WebsiteURL, Phone: row.Phone}, pool, seen)
		if !out.Accepted {
			report.Duplicates = append(report.Duplicates, newDuplicateRow(row.Number, row.Name, out))
			continue
		}

		if err := uc.Repo.Create(ctx, lead); err != nil {
			if dup := duplicateFromStorage(err, lead); dup != nil {
				report.Duplicates = append(report.Duplicates, newDuplicateRow(row.Number, row.Name, dup.Outcome))
				continue
			}

			log.Error().Err(err).Int("row", row.Number).Msg("failed to save imported lead")
			report.Errors = append(report.Errors, csvimport.RowError{Row: row.Number, Message: "failed to save lead"})

			continue
		}

		report.Imported = append(report.Imported, ImportedRow{Row: row.Number, LeadID: lead.ID, Name: lead.Name})
	}

	slices.SortStableFunc(report.Errors, func(a, b csvimport.RowError) int {
		return cmp.Compare(a.Row, b.Row)
	})

	log.Info().
		Int("imported", len(report.Imported)).
		Int("duplicates", len(report.Duplicates)).
		Int("errors", len(report.Errors)).
		Msg("lead import finished")

	return report, nil
}
