package parser

import (
	"unicode"

	"github.com/ukaji3/evalstruct-go/pkg/evalstruct/models"
)

// Sprint table columns.
const (
	sprintIDCol   = 1
	sprintURLCol  = 2
	sprintNameCol = 3
)

// SprintKey derives the table key of a sprint identifier: purely numeric
// identifiers become "sprint_<n>", anything else is kept verbatim.
func SprintKey(id string) string {
	if isDigits(id) {
		return "sprint_" + id
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ExtractSprints reads the sprint table below the sentinel row until the first
// blank identifier. A later row with the same key replaces the earlier one;
// the replaced keys are returned so callers can report them. A sentinel of 0
// yields an empty table.
func ExtractSprints(g Grid, sentinelRow int) (*models.SprintTable, []string) {
	table := models.NewSprintTable()
	if sentinelRow <= 0 {
		return table, nil
	}

	var replaced []string
	for row := sentinelRow + 1; ; row++ {
		id := g.Cell(row, sprintIDCol)
		if id == "" {
			break
		}
		key := SprintKey(id)
		entry := models.SprintEntry{
			NameOfSprint: g.Cell(row, sprintNameCol),
			URL:          g.Cell(row, sprintURLCol),
		}
		if table.Set(key, entry) {
			replaced = append(replaced, key)
		}
	}

	return table, replaced
}
