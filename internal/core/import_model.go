package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// NormalizedRow is one validated, canonical order record. It is only built
// once every required field is present and type/range-valid; rows with any
// critical finding never become a NormalizedRow and never reach hashing.
// Immutable once built.
type NormalizedRow struct {
	RowIndex      int             `json:"row_index"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	OrderDate     *time.Time      `json:"order_date"`
	CustomerName  string          `json:"customer_name"`
	CompanyID     int             `json:"company_id"`
	ItemName      string          `json:"item_name"`
	ProductID     int             `json:"product_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit,omitempty"`
	Price         decimal.Decimal `json:"price"`
	LineTotal     decimal.Decimal `json:"line_total"`
	Area          string          `json:"area,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Hash          string          `json:"hash,omitempty"`
	Warnings      []ImportError   `json:"warnings,omitempty"`
}

// HashIdentity renders the row as hash input. The product reference is the
// raw imported item name, deliberately not the resolved ProductID.
func (r *NormalizedRow) HashIdentity() HashInput {
	return HashInput{
		InvoiceNumber: r.InvoiceNumber,
		CompanyID:     r.CompanyID,
		OrderDate:     r.OrderDate,
		Lines: []HashLine{
			{ProductRef: r.ItemName, Quantity: r.Quantity, Price: r.Price},
		},
	}
}

// RejectedRow carries a rejected source row together with its findings, for
// the human review screen.
type RejectedRow struct {
	RowIndex int             `json:"row_index"`
	Row      map[string]Cell `json:"row"`
	Errors   []ImportError   `json:"errors"`
}
