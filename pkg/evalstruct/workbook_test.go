package evalstruct

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheetSpec describes the cells of one test sheet, row by row from A1.
type sheetSpec struct {
	name string
	rows [][]any
}

// writeWorkbook saves a workbook made of the given sheets into dir.
func writeWorkbook(t *testing.T, dir, file string, sheets ...sheetSpec) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			for c, val := range row {
				if val == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(s.name, cell, val))
			}
		}
	}

	path := filepath.Join(dir, file)
	require.NoError(t, f.SaveAs(path))
	return path
}

func julySpec() sheetSpec {
	return sheetSpec{
		name: "July",
		rows: [][]any{
			{"Name", "Sprint Commitments", "Mini Quizzes", "Monthly Evaluation", "Total Score", "Remarks"},
			{"Alice", 80, 90, 70, 240, "good"},
			{"Bob", 60, 40, 50, 150, nil},
			{nil},
			{"Sprint No.", "URL", "Sprint Name"},
			{1, "https://example.com/1", "Data Structures"},
			{2, "https://example.com/2", "Networks"},
			{"Bonus", nil, "Hackathon"},
		},
	}
}
