package core

import (
	"context"
	"fmt"
)

// ImportOptions configures one import run.
type ImportOptions struct {
	CompanyCode string
	// DryRun drives the full pipeline, dedup checks included, but persists
	// nothing. The report comes out identical to a real run.
	DryRun bool
}

// ImportService drives rows through the pipeline: header mapping, auto-fix,
// normalization, validation, entity resolution, hashing, dedup, persistence.
type ImportService interface {
	// Run processes the sheet sequentially and returns the aggregated report.
	// Rows are strictly ordered because in-run duplicate detection depends on
	// the hashes of earlier rows in the same file. An error return means an
	// infrastructure failure (directory or store); the report still reflects
	// all rows processed before it. Cancellation is honored between rows.
	Run(ctx context.Context, sheet *Sheet, opts ImportOptions) (*ImportReport, error)
}

type importService struct {
	directory Directory
	store     ImportStore
	synonyms  SynonymTable
}

// NewImportService wires the engine to its collaborators. The synonym table
// is read-only from here on; each Run owns its report and seen-set, so
// independent runs may execute concurrently against the same service.
func NewImportService(directory Directory, store ImportStore, synonyms SynonymTable) ImportService {
	return &importService{directory: directory, store: store, synonyms: synonyms}
}

func (s *importService) Run(ctx context.Context, sheet *Sheet, opts ImportOptions) (*ImportReport, error) {
	report := NewImportReport(sheet.Source, opts.CompanyCode)
	report.DryRun = opts.DryRun
	report.RowCount = len(sheet.Rows)

	if len(sheet.Rows) == 0 {
		report.Errors = append(report.Errors, NewImportError(ErrFileEmpty, "", 0,
			"file contains no data rows"))
		report.finalize()
		return report, nil
	}

	mapping, headerErrs := AutoMapHeaders(sheet.Headers, s.synonyms)
	if len(headerErrs) > 0 {
		// A required column missing from the header row fails every row the
		// same way; surface it once per import instead of once per row.
		report.Errors = append(report.Errors, headerErrs...)
		report.finalize()
		return report, nil
	}

	seen := make(map[string]int, len(sheet.Rows))

	for i, raw := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			report.finalize()
			return report, err
		}
		rowIndex := i + 1

		fixed, fixes := ApplyAutoFixes(rowIndex, ProjectRow(raw, mapping))
		report.Fixes = append(report.Fixes, fixes...)

		row, findings := ValidateRow(rowIndex, fixed)
		if row == nil {
			report.Rejected = append(report.Rejected, RejectedRow{RowIndex: rowIndex, Row: fixed, Errors: findings})
			continue
		}

		rejected, err := s.resolveEntities(ctx, row)
		if err != nil {
			report.finalize()
			return report, err
		}
		if rejected != nil {
			report.Rejected = append(report.Rejected, RejectedRow{
				RowIndex: rowIndex, Row: fixed, Errors: append(row.Warnings, *rejected),
			})
			continue
		}

		row.Hash = ComputeImportHash(row.HashIdentity())

		if firstRow, ok := seen[row.Hash]; ok {
			s.flagDuplicate(report, row, NewImportError(ErrDuplicateInFile, "", rowIndex,
				fmt.Sprintf("same order as row %d", firstRow)))
			continue
		}
		seen[row.Hash] = rowIndex

		exists, err := s.store.HashExists(ctx, row.Hash)
		if err != nil {
			report.finalize()
			return report, err
		}
		if exists {
			s.flagDuplicate(report, row, NewImportError(ErrDuplicateStored, "", rowIndex,
				"order was imported previously"))
			continue
		}

		if !opts.DryRun {
			inserted, err := s.store.InsertOrder(ctx, row)
			if err != nil {
				report.finalize()
				return report, err
			}
			if !inserted {
				// Lost the hash claim to a concurrent run after our existence
				// check. Same outcome as a stored duplicate.
				s.flagDuplicate(report, row, NewImportError(ErrDuplicateStored, "", rowIndex,
					"order was imported concurrently"))
				continue
			}
		}

		report.Accepted = append(report.Accepted, *row)
	}

	report.finalize()
	return report, nil
}

// flagDuplicate records a duplicate-flagged row. The row's collected warnings
// ride into the report alongside the duplicate finding so the review screen
// still sees them; the row itself is neither accepted nor re-inserted.
func (s *importService) flagDuplicate(report *ImportReport, row *NormalizedRow, finding ImportError) {
	report.Duplicates = append(report.Duplicates, row.Hash)
	report.Errors = append(report.Errors, row.Warnings...)
	report.Errors = append(report.Errors, finding)
}

// resolveEntities resolves the customer and product against the directory.
// A non-nil finding means the row must be rejected; an error means the
// lookup infrastructure failed.
func (s *importService) resolveEntities(ctx context.Context, row *NormalizedRow) (*ImportError, error) {
	companyID, ok, err := s.directory.ResolveCompany(ctx, row.CustomerName)
	if err != nil {
		return nil, err
	}
	if !ok {
		e := NewImportError(ErrUnknownCustomer, FieldCustomerName, row.RowIndex,
			fmt.Sprintf("customer %q not found in directory", row.CustomerName))
		return &e, nil
	}
	row.CompanyID = companyID

	productID, ok, err := s.directory.ResolveProduct(ctx, row.ItemName)
	if err != nil {
		return nil, err
	}
	if !ok {
		e := NewImportError(ErrUnknownItem, FieldItemName, row.RowIndex,
			fmt.Sprintf("item %q not found in directory", row.ItemName))
		return &e, nil
	}
	row.ProductID = productID
	return nil, nil
}
