package core_test

import (
	"strings"
	"testing"

	"syncolow/internal/core"
)

func validRow() map[string]core.Cell {
	return map[string]core.Cell{
		core.FieldInvoiceNumber: "INV-100",
		core.FieldOrderDate:     "2024-03-15",
		core.FieldCustomerName:  "Acme GmbH",
		core.FieldItemName:      "Widget",
		core.FieldQuantity:      "5",
		core.FieldUnit:          "pcs",
		core.FieldPrice:         "10,50",
		core.FieldLineTotal:     "52,50",
	}
}

func TestValidateRowAccepts(t *testing.T) {
	row, findings := core.ValidateRow(1, validRow())
	if row == nil {
		t.Fatalf("row rejected: %v", findings)
	}
	if len(findings) != 0 {
		t.Errorf("unexpected findings: %v", findings)
	}
	if row.Quantity.String() != "5" || row.Price.String() != "10.5" {
		t.Errorf("quantity/price = %s/%s", row.Quantity, row.Price)
	}
	if row.OrderDate == nil || row.OrderDate.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("orderDate = %v", row.OrderDate)
	}
	if row.LineTotal.String() != "52.5" {
		t.Errorf("lineTotal = %s", row.LineTotal)
	}
}

func TestValidateRowMissingRequired(t *testing.T) {
	r := validRow()
	r[core.FieldItemName] = "   "

	row, findings := core.ValidateRow(4, r)
	if row != nil {
		t.Fatal("row with missing item accepted")
	}
	if len(findings) != 1 {
		t.Fatalf("got %d findings, want exactly 1: %v", len(findings), findings)
	}
	f := findings[0]
	if f.Code != core.ErrRequiredMissing || f.Field != core.FieldItemName || f.RowIndex != 4 {
		t.Errorf("finding = %+v", f)
	}
	if !core.HasCritical(findings) {
		t.Error("missing required field should be critical")
	}
}

func TestValidateRowUnparseableDate(t *testing.T) {
	r := validRow()
	r[core.FieldOrderDate] = "soonish"

	row, findings := core.ValidateRow(2, r)
	if row != nil {
		t.Fatal("row with unparseable required date accepted")
	}
	var codes []string
	for _, f := range findings {
		codes = append(codes, string(f.Code))
	}
	joined := strings.Join(codes, ",")
	if !strings.Contains(joined, string(core.ErrBadFormat)) || !strings.Contains(joined, string(core.ErrRequiredMissing)) {
		t.Errorf("findings = %v, want both format warning and required-missing", codes)
	}
}

func TestValidateRowGarbledNumberDegrades(t *testing.T) {
	r := validRow()
	r[core.FieldPrice] = "call for pricing"
	delete(r, core.FieldLineTotal)

	row, findings := core.ValidateRow(1, r)
	if row == nil {
		t.Fatalf("garbled optional-format value rejected the row: %v", findings)
	}
	if !row.Price.IsZero() {
		t.Errorf("price = %s, want 0", row.Price)
	}
	found := false
	for _, f := range findings {
		if f.Code == core.ErrBadFormat && f.Field == core.FieldPrice {
			found = true
			if f.IsCritical() {
				t.Error("format warning must not be critical")
			}
		}
	}
	if !found {
		t.Errorf("no ERR_VAL_002 for price in %v", findings)
	}
}

func TestValidateRowOutOfRange(t *testing.T) {
	r := validRow()
	r[core.FieldQuantity] = "2000000"
	delete(r, core.FieldLineTotal)

	row, findings := core.ValidateRow(1, r)
	if row == nil {
		t.Fatalf("out-of-range value rejected the row: %v", findings)
	}
	found := false
	for _, f := range findings {
		if f.Code == core.ErrOutOfRange && f.Field == core.FieldQuantity {
			found = true
		}
	}
	if !found {
		t.Errorf("no ERR_VAL_003 for quantity in %v", findings)
	}
}

func TestValidateRowTotalMismatch(t *testing.T) {
	r := validRow()
	r[core.FieldLineTotal] = "99.99"

	row, findings := core.ValidateRow(1, r)
	if row == nil {
		t.Fatalf("total mismatch rejected the row: %v", findings)
	}
	found := false
	for _, f := range findings {
		if f.Code == core.ErrTotalMismatch {
			found = true
			if f.IsCritical() {
				t.Error("total mismatch must be a warning, not critical")
			}
		}
	}
	if !found {
		t.Errorf("no ERR_TOT_001 in %v", findings)
	}
	// The stated total stands; reconciliation flags, it does not overwrite.
	if row.LineTotal.StringFixed(2) != "99.99" {
		t.Errorf("lineTotal = %s, want the stated 99.99", row.LineTotal)
	}
}

func TestValidateRowBlankTotalComputed(t *testing.T) {
	r := validRow()
	delete(r, core.FieldLineTotal)

	row, findings := core.ValidateRow(1, r)
	if row == nil {
		t.Fatalf("rejected: %v", findings)
	}
	if row.LineTotal.StringFixed(2) != "52.50" {
		t.Errorf("lineTotal = %s, want computed 52.50", row.LineTotal)
	}
	for _, f := range findings {
		if f.Code == core.ErrTotalMismatch {
			t.Error("blank total must not raise a mismatch")
		}
	}
}

func TestValidateRowOverlongString(t *testing.T) {
	r := validRow()
	r[core.FieldInvoiceNumber] = strings.Repeat("x", 65)

	row, findings := core.ValidateRow(1, r)
	if row == nil {
		t.Fatalf("rejected: %v", findings)
	}
	found := false
	for _, f := range findings {
		if f.Code == core.ErrOutOfRange && f.Field == core.FieldInvoiceNumber {
			found = true
		}
	}
	if !found {
		t.Errorf("no length finding in %v", findings)
	}
}

func TestValidateRowXLSXNumericCells(t *testing.T) {
	r := map[string]core.Cell{
		core.FieldOrderDate:    float64(45366),
		core.FieldCustomerName: "Acme GmbH",
		core.FieldItemName:     "Widget",
		core.FieldQuantity:     float64(5),
		core.FieldPrice:        float64(10.5),
	}
	row, findings := core.ValidateRow(1, r)
	if row == nil {
		t.Fatalf("rejected: %v", findings)
	}
	if row.OrderDate == nil || row.OrderDate.Format("2006-01-02") != "2024-03-15" {
		t.Errorf("orderDate = %v, want serial 45366 converted", row.OrderDate)
	}
	if row.LineTotal.StringFixed(2) != "52.50" {
		t.Errorf("lineTotal = %s", row.LineTotal)
	}
}
