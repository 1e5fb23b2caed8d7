package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// Extent is the 1-based bounding box of the non-blank cells of a sheet.
type Extent struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Empty reports whether the sheet had no non-blank cell.
func (e Extent) Empty() bool {
	return e.MaxRow == 0
}

// Ref returns the extent in A1 range notation, or "" when empty.
func (e Extent) Ref() string {
	if e.Empty() {
		return ""
	}
	start, err := excelize.CoordinatesToCellName(e.MinCol, e.MinRow)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(e.MaxCol, e.MaxRow)
	if err != nil {
		return ""
	}
	return start + ":" + end
}

// DataExtent finds the populated extent of rows. It bounds every downward
// scan so a sheet without a sentinel row cannot be walked forever.
func DataExtent(rows [][]string) Extent {
	var ext Extent
	for i, row := range rows {
		for j, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			r, c := i+1, j+1
			if ext.Empty() {
				ext = Extent{MinRow: r, MaxRow: r, MinCol: c, MaxCol: c}
				continue
			}
			ext.MaxRow = r
			ext.MinCol = min(ext.MinCol, c)
			ext.MaxCol = max(ext.MaxCol, c)
		}
	}
	return ext
}
