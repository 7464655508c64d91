package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ValidateRow runs one auto-fixed, canonical-keyed row through the staged
// checks: required-field presence, then type format, then declared ranges,
// then the line-total reconciliation. The first critical finding rejects the
// row and halts further checks; warnings attach to the row and ride along
// into the report without preventing acceptance.
//
// On rejection the returned row is nil and the findings explain why. On
// acceptance the NormalizedRow carries its warnings; entity resolution and
// hashing happen downstream.
func ValidateRow(rowIndex int, row map[string]Cell) (*NormalizedRow, []ImportError) {
	// Stage 1: required presence. Optional fields default to their type's
	// neutral value later, so only required blanks are findings.
	for _, def := range OrderFields {
		if def.Required && cellBlank(row[def.Key]) {
			err := NewImportError(ErrRequiredMissing, def.Key, rowIndex,
				fmt.Sprintf("required field %s is empty", def.Key))
			return nil, []ImportError{err}
		}
	}

	var warnings []ImportError
	warn := func(code ErrorCode, field, detail string) {
		warnings = append(warnings, NewImportError(code, field, rowIndex, detail))
	}

	out := &NormalizedRow{RowIndex: rowIndex}

	// Stage 2: type format. Numbers degrade to zero and dates to nil with a
	// format warning; the parse never throws.
	parseAmount := func(field string) decimal.Decimal {
		cell := row[field]
		if cellBlank(cell) {
			return decimal.Zero
		}
		v := CellToDecimal(cell)
		if s, ok := cell.(string); ok && !looksNumeric(s) {
			warn(ErrBadFormat, field, fmt.Sprintf("%q is not a number, defaulted to 0", s))
		}
		return v
	}

	out.InvoiceNumber = strings.TrimSpace(CellString(row[FieldInvoiceNumber]))
	out.CustomerName = CellString(row[FieldCustomerName])
	out.ItemName = CellString(row[FieldItemName])
	out.Unit = CellString(row[FieldUnit])
	out.Area = CellString(row[FieldArea])
	out.Notes = CellString(row[FieldNotes])
	out.Quantity = parseAmount(FieldQuantity)
	out.Price = parseAmount(FieldPrice)
	out.LineTotal = parseAmount(FieldLineTotal)

	out.OrderDate = ParseFlexibleDate(row[FieldOrderDate])
	if out.OrderDate == nil {
		// The raw value was present (stage 1 passed) but unusable. The date
		// field is required, so a nil date is fatal for the row.
		warn(ErrBadFormat, FieldOrderDate,
			fmt.Sprintf("%q is not a recognizable date", CellString(row[FieldOrderDate])))
		err := NewImportError(ErrRequiredMissing, FieldOrderDate, rowIndex,
			"order date could not be parsed")
		return nil, append(warnings, err)
	}

	// Stage 3: declared ranges.
	for _, def := range OrderFields {
		switch def.Type {
		case TypeDecimal, TypeNumber:
			if !def.HasRange {
				continue
			}
			v := amountForField(out, def.Key)
			if v.LessThan(def.Min) || v.GreaterThan(def.Max) {
				warn(ErrOutOfRange, def.Key,
					fmt.Sprintf("%s outside [%s, %s]", v, def.Min, def.Max))
			}
		case TypeString:
			if def.MaxLength > 0 {
				if s := stringForField(out, def.Key); utf8.RuneCountInString(s) > def.MaxLength {
					warn(ErrOutOfRange, def.Key,
						fmt.Sprintf("length %d exceeds %d", utf8.RuneCountInString(s), def.MaxLength))
				}
			}
		}
	}

	// Stage 4: line-total reconciliation. A stated total that disagrees with
	// quantity times price flags the row but never blocks it.
	computed := out.Quantity.Mul(out.Price).Round(2)
	if !cellBlank(row[FieldLineTotal]) && !out.LineTotal.Round(2).Equal(computed) {
		warn(ErrTotalMismatch, FieldLineTotal,
			fmt.Sprintf("stated total %s, computed %s", out.LineTotal.Round(2), computed))
	}
	if cellBlank(row[FieldLineTotal]) {
		out.LineTotal = computed
	}

	out.Warnings = warnings
	return out, warnings
}

// amountForField maps a decimal canonical key to its normalized value.
func amountForField(r *NormalizedRow, key string) decimal.Decimal {
	switch key {
	case FieldQuantity:
		return r.Quantity
	case FieldPrice:
		return r.Price
	case FieldLineTotal:
		return r.LineTotal
	}
	return decimal.Zero
}

// stringForField maps a string canonical key to its normalized value.
func stringForField(r *NormalizedRow, key string) string {
	switch key {
	case FieldInvoiceNumber:
		return r.InvoiceNumber
	case FieldCustomerName:
		return r.CustomerName
	case FieldItemName:
		return r.ItemName
	case FieldUnit:
		return r.Unit
	case FieldArea:
		return r.Area
	case FieldNotes:
		return r.Notes
	}
	return ""
}

// looksNumeric reports whether a string has any digits to parse at all.
// "Not a number" degrades to zero silently otherwise.
func looksNumeric(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}
