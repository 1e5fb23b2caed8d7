package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is a read-only view of a worksheet addressed by 1-based row and column.
type Grid interface {
	// Cell returns the trimmed text at (row, col), or "" when the cell is
	// blank or outside the populated area.
	Cell(row, col int) string
	// RowCount returns the index of the last populated row, 0 for an empty sheet.
	RowCount() int
}

// Rows is a Grid backed by row-major cell text, as returned by excelize GetRows.
type Rows [][]string

var _ Grid = Rows(nil) // Compile-time check

// Cell implements Grid.
func (r Rows) Cell(row, col int) string {
	if row < 1 || row > len(r) {
		return ""
	}
	cells := r[row-1]
	if col < 1 || col > len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col-1])
}

// RowCount implements Grid.
func (r Rows) RowCount() int {
	ext := DataExtent(r)
	if ext.Empty() {
		return 0
	}
	return ext.MaxRow
}

// LoadGrid reads a sheet into memory. Values are read raw, without number
// formats applied, and numeric cells are rewritten in their shortest decimal
// form, so a stored 33.299999999999997 reads as 33.3.
func LoadGrid(f *excelize.File, sheetName string) (Rows, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j, value := range row {
			if value == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheetName, ref)
			if err != nil {
				return nil, err
			}
			if typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber {
				row[j] = CanonicalNumber(value)
			}
		}
	}
	return Rows(rows), nil
}

// CanonicalNumber returns the shortest decimal form of a finite number and
// leaves any other text unchanged.
func CanonicalNumber(s string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
