package core_test

import (
	"testing"

	"syncolow/internal/core"
)

func TestApplyAutoFixes(t *testing.T) {
	row := map[string]core.Cell{
		core.FieldCustomerName: "  Acme GmbH ",
		core.FieldItemName:     "Widget",
		core.FieldUnit:         "Pieces",
		core.FieldNotes:        "deliver to gate 4\nring twice",
		core.FieldQuantity:     "  5  ", // numeric field, must stay untouched
	}

	fixed, fixes := core.ApplyAutoFixes(3, row)

	if got := fixed[core.FieldCustomerName]; got != "Acme GmbH" {
		t.Errorf("customerName = %q, want trimmed", got)
	}
	if got := fixed[core.FieldUnit]; got != "pcs" {
		t.Errorf("unit = %q, want pcs", got)
	}
	if got := fixed[core.FieldNotes]; got != "deliver to gate 4, ring twice" {
		t.Errorf("notes = %q, want flattened", got)
	}
	if got := fixed[core.FieldQuantity]; got != "  5  " {
		t.Errorf("quantity = %q, numeric fields must not be auto-fixed", got)
	}
	if row[core.FieldCustomerName] != "  Acme GmbH " {
		t.Error("input row was mutated")
	}

	byRule := map[string]int{}
	for _, f := range fixes {
		byRule[f.RuleID]++
		if f.RowIndex != 3 {
			t.Errorf("fix %s has row index %d, want 3", f.RuleID, f.RowIndex)
		}
	}
	if byRule[core.FixTrimWhitespace] != 1 || byRule[core.FixNormalizeUnit] != 1 || byRule[core.FixFlattenNewlines] != 1 {
		t.Errorf("fix counts by rule = %v", byRule)
	}
}

func TestApplyAutoFixesLedgerRecordsBeforeAfter(t *testing.T) {
	_, fixes := core.ApplyAutoFixes(1, map[string]core.Cell{
		core.FieldItemName: " Bolt M6 ",
	})
	if len(fixes) != 1 {
		t.Fatalf("got %d fixes, want 1", len(fixes))
	}
	f := fixes[0]
	if f.Before != " Bolt M6 " || f.After != "Bolt M6" || f.Field != core.FieldItemName {
		t.Errorf("fix = %+v", f)
	}
}

func TestApplyAutoFixesCleanRowProducesNoFixes(t *testing.T) {
	_, fixes := core.ApplyAutoFixes(1, map[string]core.Cell{
		core.FieldCustomerName: "Acme GmbH",
		core.FieldItemName:     "Widget",
		core.FieldUnit:         "pcs",
		core.FieldQuantity:     float64(5),
	})
	if len(fixes) != 0 {
		t.Errorf("clean row produced fixes: %v", fixes)
	}
}

func TestApplyAutoFixesUnknownUnitUntouched(t *testing.T) {
	fixed, fixes := core.ApplyAutoFixes(1, map[string]core.Cell{
		core.FieldUnit: "fathoms",
	})
	if fixed[core.FieldUnit] != "fathoms" || len(fixes) != 0 {
		t.Errorf("unknown unit changed: %v / %v", fixed[core.FieldUnit], fixes)
	}
}

func TestApplyAutoFixesCRLFNotes(t *testing.T) {
	fixed, _ := core.ApplyAutoFixes(1, map[string]core.Cell{
		core.FieldNotes: "line one\r\nline two\rline three",
	})
	if got := fixed[core.FieldNotes]; got != "line one, line two, line three" {
		t.Errorf("notes = %q", got)
	}
}
