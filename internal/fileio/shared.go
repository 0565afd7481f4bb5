package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrNoSheets    = errors.New("workbook has no sheets")
)

// Table is a header row plus data rows, every row padded to the header width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ReadWorkbook returns the raw cells of every sheet, in sheet order.
func ReadWorkbook(r io.Reader, filename string) ([][][]string, error) {
	var (
		sheets [][][]string
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		sheets, err = readXLSX(r)
	case ".xls":
		sheets, err = readXLS(r)
	case ".csv":
		var rows [][]string
		rows, err = readCSV(r)
		sheets = [][][]string{rows}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("read %s: %w", filename, ErrNoSheets)
	}
	return sheets, nil
}

// ReadTable picks the parser by extension and returns the first sheet as a
// table. headerRow is 1-based.
func ReadTable(r io.Reader, filename string, headerRow int) (*Table, error) {
	sheets, err := ReadWorkbook(r, filename)
	if err != nil {
		return nil, err
	}
	return NewTable(sheets[0], headerRow), nil
}

// NewTable splits raw cells at headerRow (1-based).
func NewTable(rows [][]string, headerRow int) *Table {
	if len(rows) == 0 {
		return &Table{}
	}
	if headerRow < 1 || headerRow > len(rows) {
		headerRow = 1
	}
	h := pickHeader(rows, headerRow)
	return &Table{Headers: h, Rows: bodyRows(rows, len(h), headerRow)}
}

// pickHeader takes the header row and names empty cells "Column N".
func pickHeader(rows [][]string, headerRow int) []string {
	h := rows[headerRow-1]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// bodyRows returns the rows after the header, padded/cut to width, skipping
// rows that are entirely empty.
func bodyRows(rows [][]string, width, headerRow int) [][]string {
	var out [][]string
	for _, rec := range rows[headerRow:] {
		row := make([]string, width)
		empty := true
		for c := 0; c < width && c < len(rec); c++ {
			row[c] = rec[c]
			if strings.TrimSpace(rec[c]) != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

// normalizeCell trims and replaces NBSP/NNBSP with plain spaces.
func normalizeCell(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s))
}
