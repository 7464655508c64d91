package core

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// ── Locale-ambiguous number parsing ──────────────────────────────────────────

// ParseLocalizedNumber parses a numeric cell that may use either European
// ("1.234,56") or US ("1,234.56") separators, with or without a currency
// symbol. The decimal separator is decided by whichever of the last ',' and
// last '.' comes later. A lone comma is a decimal separator when at most two
// digits follow it, a thousands separator otherwise.
//
// Unparseable input yields zero, never an error; the validator reports the
// garbled value.
func ParseLocalizedNumber(s string) decimal.Decimal {
	cleaned := stripNonNumeric(s)
	if cleaned == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		// European: dots are thousands, the final comma is the decimal mark.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		i := strings.LastIndex(cleaned, ",")
		cleaned = strings.ReplaceAll(cleaned[:i], ",", "") + "." + cleaned[i+1:]
	case lastComma >= 0 && lastDot >= 0:
		// US: commas are thousands.
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case lastComma >= 0:
		if len(cleaned)-lastComma-1 <= 2 {
			cleaned = strings.ReplaceAll(cleaned[:lastComma], ",", "") + "." + cleaned[lastComma+1:]
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// stripNonNumeric drops currency symbols, spaces, and any other character
// that cannot be part of a number, keeping digits, separators, and a leading
// minus sign.
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r), r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CellToDecimal normalizes a raw cell to a decimal: XLSX numeric cells pass
// straight through, strings go through the locale parser.
func CellToDecimal(c Cell) decimal.Decimal {
	switch v := c.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		return ParseLocalizedNumber(v)
	default:
		return decimal.Zero
	}
}

// ── Date parsing ─────────────────────────────────────────────────────────────

// serialEpoch is day zero of the spreadsheet serial date system. 1899-12-30
// rather than -31 preserves the historical Lotus leap-year-bug convention.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// Serial values outside these exclusive bounds are not treated as dates:
// below is plain small numbers, above is past year 2100 anyway.
const (
	serialLowerBound = 1000
	serialUpperBound = 100000
)

// Accepted years for imported order dates. Anything else is treated as a
// failed parse, not an exotic historical order.
const (
	minOrderYear = 2000
	maxOrderYear = 2100
)

// dateLayouts are tried in order for string-valued date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
	time.RFC3339,
}

// SerialToDate converts a spreadsheet serial day number to a date. It is the
// raw epoch conversion with no range policy applied.
func SerialToDate(serial float64) time.Time {
	return serialEpoch.AddDate(0, 0, int(serial))
}

// ParseFlexibleDate resolves a raw cell to a day-precision date. Integer-
// looking values in the plausible serial range convert via the spreadsheet
// epoch; everything else goes through the layout list. Values that fail to
// parse or land outside [2000, 2100] resolve to nil; the validator decides
// whether a missing date is fatal.
func ParseFlexibleDate(c Cell) *time.Time {
	switch v := c.(type) {
	case float64:
		return serialInRange(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		// Integer-looking strings in the serial range are serial dates;
		// outside it they may still be a compact layout like 20060102.
		if d, err := decimal.NewFromString(s); err == nil && d.IsInteger() {
			if t := serialInRange(float64(d.IntPart())); t != nil {
				return t
			}
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return yearInRange(t)
			}
		}
	}
	return nil
}

func serialInRange(serial float64) *time.Time {
	if serial <= serialLowerBound || serial >= serialUpperBound {
		return nil
	}
	return yearInRange(SerialToDate(serial))
}

func yearInRange(t time.Time) *time.Time {
	if t.Year() < minOrderYear || t.Year() > maxOrderYear {
		return nil
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

// ── Unit normalization ───────────────────────────────────────────────────────

// unitSynonyms maps the spellings seen in source files to canonical units.
// Unknown units pass through unchanged rather than erroring.
var unitSynonyms = map[string]string{
	"kg.": "kg", "kgs": "kg", "kgs.": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg",
	"g.": "g", "gr": "g", "gram": "g", "grams": "g",
	"l.": "l", "lt": "l", "ltr": "l", "liter": "l", "liters": "l", "litre": "l", "litres": "l",
	"ml.": "ml", "milliliter": "ml", "millilitre": "ml",
	"pc": "pcs", "pc.": "pcs", "pcs.": "pcs", "piece": "pcs", "pieces": "pcs", "stk": "pcs", "stück": "pcs", "unit": "pcs", "units": "pcs", "ea": "pcs", "each": "pcs",
	"bx": "box", "boxes": "box", "karton": "box", "ctn": "box", "carton": "box", "cartons": "box",
	"pk": "pack", "pk.": "pack", "packs": "pack", "package": "pack", "packet": "pack",
	"doz": "dozen", "dz": "dozen",
	"m.": "m", "mtr": "m", "meter": "m", "meters": "m", "metre": "m", "metres": "m",
}

// NormalizeUnit folds known unit spellings to their canonical form, matching
// case-insensitively. Unknown units pass through unchanged. The bool reports
// whether normalization altered the value, which is what the auto-fix ledger
// records.
func NormalizeUnit(s string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(s))
	if canonical, ok := unitSynonyms[lowered]; ok {
		return canonical, canonical != s
	}
	if lowered != "" && isCanonicalUnit(lowered) {
		return lowered, lowered != s
	}
	return s, false
}

// isCanonicalUnit reports whether the value is already one of the canonical
// unit spellings, in which case only its casing is normalized.
func isCanonicalUnit(lowered string) bool {
	for _, canonical := range unitSynonyms {
		if lowered == canonical {
			return true
		}
	}
	return false
}
