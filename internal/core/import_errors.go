package core

import "fmt"

// Severity controls what an import finding does to its row: critical rejects
// the row, warning flags it but lets it through, info is summary-level only.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ErrorCode is one of the closed set of machine-actionable import findings.
// New codes are a schema change, not a runtime decision.
type ErrorCode string

const (
	// File-level
	ErrFileUndecodable ErrorCode = "ERR_PARSE_001" // critical: file cannot be decoded at all
	ErrFileEmpty       ErrorCode = "ERR_PARSE_002" // warning: decodes but has zero data rows

	// Row validation
	ErrRequiredMissing ErrorCode = "ERR_VAL_001" // critical: required canonical field missing
	ErrBadFormat       ErrorCode = "ERR_VAL_002" // warning: value present but fails its type's format
	ErrOutOfRange      ErrorCode = "ERR_VAL_003" // warning: parses but outside declared min/max

	// Entity resolution
	ErrUnknownCustomer ErrorCode = "ERR_ENT_001" // critical: customer name does not resolve
	ErrUnknownItem     ErrorCode = "ERR_ENT_002" // critical: item name/code does not resolve

	// Duplicate detection
	ErrDuplicateStored ErrorCode = "ERR_DUP_001" // warning: hash already persisted
	ErrDuplicateInFile ErrorCode = "ERR_DUP_002" // warning: hash already seen in this file

	// Reconciliation
	ErrTotalMismatch ErrorCode = "ERR_TOT_001" // warning: stated total != quantity * price

	// Run summary
	ErrPartialImport ErrorCode = "ERR_PAR_001" // info: run completed with some rows rejected
)

// severityOf fixes the severity per code. Codes never change severity at
// runtime; callers cannot escalate or downgrade a finding.
var severityOf = map[ErrorCode]Severity{
	ErrFileUndecodable: SeverityCritical,
	ErrFileEmpty:       SeverityWarning,
	ErrRequiredMissing: SeverityCritical,
	ErrBadFormat:       SeverityWarning,
	ErrOutOfRange:      SeverityWarning,
	ErrUnknownCustomer: SeverityCritical,
	ErrUnknownItem:     SeverityCritical,
	ErrDuplicateStored: SeverityWarning,
	ErrDuplicateInFile: SeverityWarning,
	ErrTotalMismatch:   SeverityWarning,
	ErrPartialImport:   SeverityInfo,
}

// ImportError is a single machine-actionable finding. It is report data, not
// a Go error that propagates; one malformed row never aborts a batch.
type ImportError struct {
	Code     ErrorCode `json:"code"`
	Severity Severity  `json:"severity"`
	Field    string    `json:"field,omitempty"`
	RowIndex int       `json:"row_index"`
	Detail   string    `json:"detail,omitempty"`
}

// NewImportError builds a finding with the severity fixed by its code.
func NewImportError(code ErrorCode, field string, rowIndex int, detail string) ImportError {
	return ImportError{
		Code:     code,
		Severity: severityOf[code],
		Field:    field,
		RowIndex: rowIndex,
		Detail:   detail,
	}
}

// IsCritical reports whether this finding rejects its row.
func (e ImportError) IsCritical() bool { return e.Severity == SeverityCritical }

func (e ImportError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] row %d, field %s: %s (%s)", e.Severity, e.RowIndex, e.Field, e.Code, e.Detail)
	}
	return fmt.Sprintf("[%s] row %d: %s (%s)", e.Severity, e.RowIndex, e.Code, e.Detail)
}

// HasCritical reports whether any finding in the list is row-fatal.
func HasCritical(errs []ImportError) bool {
	for _, e := range errs {
		if e.IsCritical() {
			return true
		}
	}
	return false
}
