package core

import (
	"time"

	"github.com/google/uuid"
)

// ImportReport aggregates one import run: accepted canonical rows, rejected
// rows with their findings, the auto-fix ledger, duplicate hashes, and the
// file/run-level findings. Created when a run starts, finalized when it ends,
// never persisted by the engine itself.
type ImportReport struct {
	RunID       string        `json:"run_id"`
	Source      string        `json:"source"`
	CompanyCode string        `json:"company_code"`
	DryRun      bool          `json:"dry_run,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`
	RowCount    int           `json:"row_count"`

	Accepted   []NormalizedRow `json:"accepted"`
	Rejected   []RejectedRow   `json:"rejected"`
	Fixes      []AutoFix       `json:"fixes"`
	Duplicates []string        `json:"duplicates"`
	Errors     []ImportError   `json:"errors"`
}

// NewImportReport starts an empty report for one run.
func NewImportReport(source, companyCode string) *ImportReport {
	return &ImportReport{
		RunID:       uuid.NewString(),
		Source:      source,
		CompanyCode: companyCode,
		StartedAt:   time.Now().UTC(),
		Accepted:    []NormalizedRow{},
		Rejected:    []RejectedRow{},
		Fixes:       []AutoFix{},
		Duplicates:  []string{},
		Errors:      []ImportError{},
	}
}

// FailedReport is the short-circuit report for a file that could not be
// decoded at all: a single critical finding and nothing else. The engine
// never partially reports on an undecodable file.
func FailedReport(source, companyCode, detail string) *ImportReport {
	r := NewImportReport(source, companyCode)
	r.Errors = append(r.Errors, NewImportError(ErrFileUndecodable, "", 0, detail))
	r.FinishedAt = time.Now().UTC()
	return r
}

// finalize stamps the end time and appends the summary markers.
func (r *ImportReport) finalize() {
	if len(r.Rejected) > 0 {
		r.Errors = append(r.Errors, NewImportError(ErrPartialImport, "", 0,
			"import completed with some rows rejected"))
	}
	r.FinishedAt = time.Now().UTC()
}

// CleanForAutoApply reports whether the run can be applied unattended: no
// critical or warning finding anywhere, on any row or at file level.
func (r *ImportReport) CleanForAutoApply() bool {
	check := func(errs []ImportError) bool {
		for _, e := range errs {
			if e.Severity == SeverityCritical || e.Severity == SeverityWarning {
				return false
			}
		}
		return true
	}
	if !check(r.Errors) {
		return false
	}
	for _, row := range r.Accepted {
		if !check(row.Warnings) {
			return false
		}
	}
	return len(r.Rejected) == 0 && len(r.Duplicates) == 0
}
