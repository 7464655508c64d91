package app

import (
	"context"
	"io"

	"syncolow/internal/core"
)

// ImportFileRequest is one uploaded spreadsheet to run through the engine.
type ImportFileRequest struct {
	CompanyCode string
	Filename    string
	Data        io.Reader
	DryRun      bool
}

// ApplicationService is the single interface all adapters (CLI, Web) call.
// It decouples presentation from the import engine. Implementations must
// contain no fmt.Println and no display logic of any kind.
type ApplicationService interface {
	// ImportFile decodes the upload and runs it through the import pipeline.
	// An undecodable file comes back as a report with a single critical
	// finding, not an error; errors mean infrastructure failed.
	ImportFile(ctx context.Context, req ImportFileRequest) (*core.ImportReport, error)

	// ListFields returns the canonical schema contract, letting clients
	// preview what columns the importer expects.
	ListFields() []core.FieldDef
}
