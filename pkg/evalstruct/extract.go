package evalstruct

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/parser"
	"github.com/xuri/excelize/v2"
)

// Extract extracts the monthly evaluation data of one workbook file.
func Extract(path string, opts Options) (*models.WorkbookResult, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	defer func() { _ = f.Close() }()

	return Transform(f, filepath.Base(path), opts), nil
}

// Transform builds the workbook result of an open workbook. Only sheets whose
// name carries a month token are processed. A sheet that cannot be read or
// has no recognizable structure yields an empty result instead of an error.
func Transform(f *excelize.File, bookName string, opts Options) *models.WorkbookResult {
	log := opts.logger().With(slog.String("file", bookName))
	result := models.NewWorkbookResult(bookName)

	for _, sheetName := range parser.SelectSheets(f.GetSheetList(), opts.Rules) {
		sheetLog := log.With(slog.String("sheet", sheetName))

		grid, err := parser.LoadGrid(f, sheetName)
		if err != nil {
			// Log warning and continue with an empty grid
			sheetLog.Warn("Could not read sheet",
				slog.Any("error", NewExtractionError(bookName, sheetName, "grid", err)))
			grid = nil
		} else {
			sheetLog.Debug("Sheet loaded", slog.String("range", parser.DataExtent(grid).Ref()))
		}

		result.SetSheet(sheetName, TransformSheet(grid, opts.Rules, sheetLog))
	}

	return result
}

// TransformSheet extracts the members, their recognized fields and the sprint
// table of one sheet.
func TransformSheet(g parser.Grid, rules parser.Rules, log *slog.Logger) *models.SheetResult {
	if log == nil {
		log = slog.Default()
	}
	sheet := models.NewSheetResult()

	if parser.HeaderWidth(g) == 0 {
		log.Warn("Header row missing, sheet skipped")
		return sheet
	}

	block := parser.ExtractMembers(g, rules)
	if !block.HasSentinel() {
		log.Warn("Sentinel row not found, sprint table skipped",
			slog.Int("members", len(block.Members)))
	}

	for _, member := range block.Members {
		if _, seen := sheet.Member(member.Name); seen {
			log.Warn("Duplicate member name, later row wins",
				slog.String("member", member.Name), slog.Int("row", member.Row))
		}
		record := parser.ExtractRowFields(g, member.Row, rules)
		if err := sheet.SetMember(member.Name, record); err != nil {
			log.Warn("Member skipped", slog.Int("row", member.Row), slog.Any("error", err))
			continue
		}
		log.Debug("Member extracted",
			slog.String("member", member.Name),
			slog.Int("row", member.Row),
			slog.Int("fields", len(record)))
	}

	sprints, replaced := parser.ExtractSprints(g, block.SentinelRow)
	for _, key := range replaced {
		log.Warn("Duplicate sprint key, later row wins", slog.String("sprint", key))
	}
	sheet.Sprints = sprints

	return sheet
}
