package core

import (
	"regexp"
	"strings"
)

// Auto-fix rule IDs. Fixed so downstream reporting can group fixes by kind.
const (
	FixTrimWhitespace  = "trim_whitespace"
	FixNormalizeUnit   = "normalize_unit"
	FixFlattenNewlines = "flatten_newlines"
)

// AutoFix records one automatic field-level correction. The fix ledger is
// append-only: entries are never mutated or discarded.
type AutoFix struct {
	RuleID   string `json:"rule_id"`
	Field    string `json:"field"`
	Before   string `json:"before"`
	After    string `json:"after"`
	RowIndex int    `json:"row_index"`
}

var multiSpace = regexp.MustCompile(` {2,}`)

// ApplyAutoFixes runs the safe correction rules over a canonical-keyed row
// and returns the corrected row plus one AutoFix per change. Rules apply in
// a fixed order:
//
//  1. trim leading/trailing whitespace on string-typed fields
//  2. normalize the unit field against the unit synonym table
//  3. flatten embedded newlines in free-text fields to ", " and collapse
//     the resulting multi-space runs
//
// Numeric and date fields are never touched here; their cleanup is a parse
// outcome reported by the validator, not a fix.
func ApplyAutoFixes(rowIndex int, row map[string]Cell) (map[string]Cell, []AutoFix) {
	fixed := make(map[string]Cell, len(row))
	for k, v := range row {
		fixed[k] = v
	}
	var fixes []AutoFix

	record := func(rule, field, before, after string) {
		fixed[field] = after
		fixes = append(fixes, AutoFix{RuleID: rule, Field: field, Before: before, After: after, RowIndex: rowIndex})
	}

	for _, def := range OrderFields {
		if def.Type != TypeString {
			continue
		}
		s, ok := fixed[def.Key].(string)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(s); trimmed != s {
			record(FixTrimWhitespace, def.Key, s, trimmed)
		}
	}

	if s, ok := fixed[FieldUnit].(string); ok {
		if normalized, changed := NormalizeUnit(s); changed {
			record(FixNormalizeUnit, FieldUnit, s, normalized)
		}
	}

	for _, def := range OrderFields {
		if !freeTextFields[def.Key] {
			continue
		}
		s, ok := fixed[def.Key].(string)
		if !ok || !strings.ContainsAny(s, "\r\n") {
			continue
		}
		flat := strings.NewReplacer("\r\n", ", ", "\n", ", ", "\r", ", ").Replace(s)
		flat = multiSpace.ReplaceAllString(flat, " ")
		if flat != s {
			record(FixFlattenNewlines, def.Key, s, flat)
		}
	}

	return fixed, fixes
}
