package core

import (
	"strconv"
	"strings"
)

// Cell is one raw spreadsheet cell as read from the source: a string, a
// float64 (XLSX numeric cells), or nil for an empty cell.
type Cell any

// RawRow maps a raw header string to its cell value for one source row.
// It exists only while the row moves through the pipeline.
type RawRow map[string]Cell

// Sheet is what the spreadsheet readers hand to the import engine: the header
// row in source order plus the data rows keyed by those headers.
type Sheet struct {
	Source  string
	Headers []string
	Rows    []RawRow
}

// CellString renders a cell for display and string-field use. Numbers are
// formatted without an exponent so "10000" never becomes "1e+04".
func CellString(c Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

// cellBlank reports whether a cell carries no usable value.
func cellBlank(c Cell) bool {
	return strings.TrimSpace(CellString(c)) == ""
}
