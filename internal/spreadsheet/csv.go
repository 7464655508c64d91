package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"syncolow/internal/core"
)

// ReadCSV decodes a CSV export. Exports from the legacy systems disagree on
// delimiters, so the delimiter is sniffed from the first line; quoting is
// lax because hand-edited files rarely follow strict CSV rules.
func ReadCSV(source string, r io.Reader) (*core.Sheet, error) {
	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}
	return buildSheet(source, rows)
}

// sniffDelimiter picks the delimiter that appears most in the first line.
// Comma wins ties, matching the most common export format.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, cand := range []byte{';', '\t', '|'} {
		if n := bytes.Count(line, []byte{cand}); n > bestCount {
			best, bestCount = rune(cand), n
		}
	}
	return best
}
