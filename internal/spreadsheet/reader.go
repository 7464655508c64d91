// Package spreadsheet decodes CSV and XLSX uploads into the engine's sheet
// model. It is deliberately dumb: headers and cells come out as read, and all
// interpretation (mapping, normalization, validation) happens in core.
package spreadsheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"syncolow/internal/core"
)

// Read decodes a spreadsheet by file extension. The first non-empty row is
// the header row; everything after it is data. A decode failure here is what
// the engine reports as an undecodable file.
func Read(name string, r io.Reader) (*core.Sheet, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", "":
		return ReadCSV(name, r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(name, r)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(name))
	}
}

// buildSheet converts raw string rows into the sheet model, skipping rows
// that are entirely blank.
func buildSheet(source string, rows [][]string) (*core.Sheet, error) {
	headerIdx := -1
	for i, row := range rows {
		if !rowEmpty(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = strings.TrimSpace(h)
	}

	sheet := &core.Sheet{Source: source, Headers: headers}
	for _, row := range rows[headerIdx+1:] {
		if rowEmpty(row) {
			continue
		}
		raw := make(core.RawRow, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(row) {
				raw[h] = row[i]
			} else {
				raw[h] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, raw)
	}
	return sheet, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
