package app

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"syncolow/internal/core"
	"syncolow/internal/spreadsheet"
)

type appService struct {
	pool     *pgxpool.Pool
	synonyms core.SynonymTable
}

// NewAppService wires the facade. The synonym table is built once at startup
// (defaults plus any configured overrides) and shared read-only across runs.
func NewAppService(pool *pgxpool.Pool, synonyms core.SynonymTable) ApplicationService {
	if synonyms == nil {
		synonyms = core.DefaultSynonyms()
	}
	return &appService{pool: pool, synonyms: synonyms}
}

func (s *appService) ImportFile(ctx context.Context, req ImportFileRequest) (*core.ImportReport, error) {
	companyID, err := core.ResolveCompanyID(ctx, s.pool, req.CompanyCode)
	if err != nil {
		return nil, err
	}

	sheet, err := spreadsheet.Read(req.Filename, req.Data)
	if err != nil {
		return core.FailedReport(req.Filename, req.CompanyCode, err.Error()), nil
	}

	svc := core.NewImportService(
		core.NewDirectory(s.pool, companyID),
		core.NewImportStore(s.pool, companyID),
		s.synonyms,
	)
	return svc.Run(ctx, sheet, core.ImportOptions{CompanyCode: req.CompanyCode, DryRun: req.DryRun})
}

func (s *appService) ListFields() []core.FieldDef {
	return core.OrderFields
}
