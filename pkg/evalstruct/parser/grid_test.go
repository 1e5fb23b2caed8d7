package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRowsCell(t *testing.T) {
	g := Rows{
		{"a", " b "},
		{},
		{"", "", "c"},
	}

	assert.Equal(t, "a", g.Cell(1, 1))
	assert.Equal(t, "b", g.Cell(1, 2))
	assert.Equal(t, "", g.Cell(1, 3))
	assert.Equal(t, "", g.Cell(2, 1))
	assert.Equal(t, "c", g.Cell(3, 3))
	assert.Equal(t, "", g.Cell(0, 1))
	assert.Equal(t, "", g.Cell(4, 1))
	assert.Equal(t, 3, g.RowCount())
}

func TestRowsRowCountIgnoresTrailingBlanks(t *testing.T) {
	g := Rows{{"a"}, {"b"}, {"  "}, {}}
	assert.Equal(t, 2, g.RowCount())
	assert.Equal(t, 0, Rows(nil).RowCount())
}

func TestLoadGrid(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "Sheet1"
	require.NoError(t, f.SetCellValue(sheetName, "A1", "Name"))
	require.NoError(t, f.SetCellValue(sheetName, "B1", "Total Score"))
	require.NoError(t, f.SetCellValue(sheetName, "A2", "Alice"))
	require.NoError(t, f.SetCellValue(sheetName, "B2", 95))
	require.NoError(t, f.SetCellValue(sheetName, "A4", "Sprint No."))

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	defer func() { _ = f2.Close() }()

	g, err := LoadGrid(f2, sheetName)
	require.NoError(t, err)
	assert.Equal(t, "Name", g.Cell(1, 1))
	assert.Equal(t, "95", g.Cell(2, 2))
	assert.Equal(t, "", g.Cell(3, 1))
	assert.Equal(t, "Sprint No.", g.Cell(4, 1))
	assert.Equal(t, 4, g.RowCount())

	_, err = LoadGrid(f2, "Missing")
	assert.Error(t, err)
}

func TestLoadGridNumericCells(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheetName := "Sheet1"
	require.NoError(t, f.SetCellValue(sheetName, "A1", "Name"))
	require.NoError(t, f.SetCellValue(sheetName, "B1", "Total Score"))
	require.NoError(t, f.SetCellValue(sheetName, "C1", "Mini Quizzes"))
	require.NoError(t, f.SetCellValue(sheetName, "A2", "Alice"))
	require.NoError(t, f.SetCellDefault(sheetName, "B2", "33.299999999999997"))
	require.NoError(t, f.SetCellDefault(sheetName, "C2", "80"))
	require.NoError(t, f.SetCellValue(sheetName, "A3", "Sprint No."))
	require.NoError(t, f.SetCellStr(sheetName, "A4", "01"))
	require.NoError(t, f.SetCellStr(sheetName, "B4", "1.50"))

	tmpFile := filepath.Join(t.TempDir(), "numbers.xlsx")
	require.NoError(t, f.SaveAs(tmpFile))

	f2, err := excelize.OpenFile(tmpFile)
	require.NoError(t, err)
	defer func() { _ = f2.Close() }()

	g, err := LoadGrid(f2, sheetName)
	require.NoError(t, err)
	assert.Equal(t, "33.3", g.Cell(2, 2))
	assert.Equal(t, "80", g.Cell(2, 3))
	// Text cells keep their spelling.
	assert.Equal(t, "01", g.Cell(4, 1))
	assert.Equal(t, "1.50", g.Cell(4, 2))

	fields := ExtractRowFields(g, 2, DefaultRules())
	require.Len(t, fields, 2)
	assert.Equal(t, "Total Score", fields[0].Header)
	assert.Equal(t, "33.3", fields[0].Value)
}

func TestCanonicalNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"33.299999999999997", "33.3"},
		{"95", "95"},
		{"0.1", "0.1"},
		{"-2.50", "-2.5"},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CanonicalNumber(tt.input), "CanonicalNumber(%q)", tt.input)
	}
}
