package core

import "github.com/shopspring/decimal"

// FieldType is the declared data type of a canonical order field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeDecimal FieldType = "decimal"
	TypeDate    FieldType = "date"
)

// Canonical field keys. Every raw column header a source file carries must
// resolve to one of these before a row can be normalized.
const (
	FieldInvoiceNumber = "invoiceNumber"
	FieldOrderDate     = "orderDate"
	FieldCustomerName  = "customerName"
	FieldItemName      = "itemName"
	FieldQuantity      = "quantity"
	FieldUnit          = "unit"
	FieldPrice         = "price"
	FieldLineTotal     = "lineTotal"
	FieldArea          = "area"
	FieldNotes         = "notes"
)

// FieldDef describes one canonical order field: its type, whether a row can
// be accepted without it, and the declared range limits the validator
// enforces. The set of defs is the schema contract the rest of the engine is
// built against and is never mutated at runtime.
type FieldDef struct {
	Key       string          `json:"key"`
	Label     string          `json:"label"`
	Type      FieldType       `json:"type"`
	Required  bool            `json:"required"`
	MaxLength int             `json:"max_length,omitempty"`
	Min       decimal.Decimal `json:"min,omitempty"`
	Max       decimal.Decimal `json:"max,omitempty"`
	HasRange  bool            `json:"has_range,omitempty"`
}

// OrderFields is the canonical schema in declaration order. The order is
// load-bearing: the header mapper claims raw headers for earlier fields
// first, so an ambiguous header like "Amount" lands on price, not lineTotal.
var OrderFields = []FieldDef{
	{Key: FieldInvoiceNumber, Label: "Invoice Number", Type: TypeString, MaxLength: 64},
	{Key: FieldOrderDate, Label: "Order Date", Type: TypeDate, Required: true},
	{Key: FieldCustomerName, Label: "Customer", Type: TypeString, Required: true, MaxLength: 255},
	{Key: FieldItemName, Label: "Item", Type: TypeString, Required: true, MaxLength: 255},
	{Key: FieldQuantity, Label: "Quantity", Type: TypeDecimal, Required: true, Min: decimal.Zero, Max: decimal.NewFromInt(1_000_000), HasRange: true},
	{Key: FieldUnit, Label: "Unit", Type: TypeString, MaxLength: 32},
	{Key: FieldPrice, Label: "Unit Price", Type: TypeDecimal, Required: true, Min: decimal.Zero, Max: decimal.NewFromInt(100_000_000), HasRange: true},
	{Key: FieldLineTotal, Label: "Line Total", Type: TypeDecimal},
	{Key: FieldArea, Label: "Area", Type: TypeString, MaxLength: 128},
	{Key: FieldNotes, Label: "Notes", Type: TypeString, MaxLength: 1024},
}

// FieldByKey returns the schema definition for a canonical key.
func FieldByKey(key string) (FieldDef, bool) {
	for _, def := range OrderFields {
		if def.Key == key {
			return def, true
		}
	}
	return FieldDef{}, false
}

// freeTextFields are the fields the auto-fix engine may flatten embedded
// newlines in. Numeric and date fields are never auto-fixed.
var freeTextFields = map[string]bool{
	FieldCustomerName: true,
	FieldItemName:     true,
	FieldArea:         true,
	FieldNotes:        true,
}

// SynonymTable maps a canonical field key to its known header spellings,
// in match-priority order. Built once at startup; read-only afterwards.
type SynonymTable map[string][]string

// defaultSynonyms lists every header spelling seen across the export formats
// we ingest, including the German variants the legacy POS emits. Order within
// a list matters: earlier entries are the more trusted spellings.
var defaultSynonyms = SynonymTable{
	FieldInvoiceNumber: {"invoice number", "invoice no", "invoice #", "invoice", "inv no", "bill number", "bill no", "receipt no", "rechnungsnummer", "rechnungs-nr", "beleg-nr"},
	FieldOrderDate:     {"order date", "date", "invoice date", "doc date", "document date", "datum", "bestelldatum", "rechnungsdatum"},
	FieldCustomerName:  {"customer", "customer name", "client", "client name", "company", "buyer", "account name", "kunde", "kundenname"},
	FieldItemName:      {"item", "item name", "product", "product name", "description", "article", "sku description", "artikel", "artikelname", "bezeichnung"},
	FieldQuantity:      {"quantity", "qty", "qty.", "amount ordered", "units", "count", "menge", "anzahl"},
	FieldUnit:          {"unit", "uom", "unit of measure", "measure", "einheit", "mengeneinheit"},
	FieldPrice:         {"price", "unit price", "price per unit", "rate", "unit cost", "amount", "preis", "einzelpreis", "stückpreis"},
	FieldLineTotal:     {"total", "line total", "total price", "total amount", "sum", "gesamt", "gesamtbetrag", "summe"},
	FieldArea:          {"area", "region", "zone", "territory", "district", "gebiet", "region/gebiet"},
	FieldNotes:         {"notes", "note", "comment", "comments", "remark", "remarks", "memo", "bemerkung", "anmerkung"},
}

// DefaultSynonyms returns a copy of the built-in synonym table so callers can
// extend it without mutating shared state.
func DefaultSynonyms() SynonymTable {
	t := make(SynonymTable, len(defaultSynonyms))
	for key, list := range defaultSynonyms {
		t[key] = append([]string(nil), list...)
	}
	return t
}

// Extend appends extra spellings per canonical key, returning the receiver.
// Unknown keys are ignored rather than invented; the schema is closed.
func (t SynonymTable) Extend(extra map[string][]string) SynonymTable {
	for key, list := range extra {
		if _, ok := FieldByKey(key); !ok {
			continue
		}
		t[key] = append(t[key], list...)
	}
	return t
}
