package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// importHashLen is the stored digest width in hex characters. Collisions at
// this width are acceptable because hashes are only ever compared within one
// company's order history, not a global namespace.
const importHashLen = 16

// HashLine is one order line as it participates in identity hashing. The
// product reference is the raw imported identifier, not the resolved product
// ID. Renaming or merging a product must not change historical identity.
type HashLine struct {
	ProductRef string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
}

// HashInput is the identity of one logical order submission.
type HashInput struct {
	InvoiceNumber string
	CompanyID     int
	OrderDate     *time.Time
	Lines         []HashLine
}

// ComputeImportHash derives the deterministic identity digest for an order.
// Two logically identical submissions must hash the same even when the source
// file reorders line items or the export adds a time-of-day to the date, so:
//
//   - the invoice number is trimmed and lower-cased (empty is fine, dedup
//     does not rely on invoices being present or unique)
//   - the order date is truncated to the day
//   - each line renders as productRef:quantity:price with the price fixed to
//     two decimals, and the rendered lines are sorted before joining
//
// The composite is SHA-256 hashed and truncated to 16 hex characters.
func ComputeImportHash(in HashInput) string {
	date := ""
	if in.OrderDate != nil {
		date = in.OrderDate.Format("2006-01-02")
	}

	lines := make([]string, len(in.Lines))
	for i, l := range in.Lines {
		lines[i] = strings.Join([]string{
			strings.ToLower(strings.TrimSpace(l.ProductRef)),
			l.Quantity.String(),
			l.Price.StringFixed(2),
		}, ":")
	}
	sort.Strings(lines)

	composite := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(in.InvoiceNumber)),
		strconv.Itoa(in.CompanyID),
		date,
		strings.Join(lines, ";"),
	}, "|")

	sum := sha256.Sum256([]byte(composite))
	return hex.EncodeToString(sum[:])[:importHashLen]
}
