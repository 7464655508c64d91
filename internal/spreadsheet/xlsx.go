package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"syncolow/internal/core"
)

// ReadXLSX decodes the first sheet of an XLSX workbook. Cells come back as
// raw values, so serial dates arrive as their day numbers and the engine's
// date parser handles the epoch conversion.
func ReadXLSX(source string, r io.Reader) (*core.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return buildSheet(source, rows)
}
